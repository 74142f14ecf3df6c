package handlers

import (
	"net/http"
	"strconv"

	"github.com/michalkopec1981/saper/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) List(c *gin.Context) {
	eventID := c.GetUint("event_id")
	questions, err := h.questions.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questions.Create(eventID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	eventID := c.GetUint("event_id")
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questions.Update(eventID, uint(questionID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	eventID := c.GetUint("event_id")
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questions.Delete(eventID, uint(questionID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

func (h *QuestionHandler) Categories(c *gin.Context) {
	categories, err := h.questions.Categories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type ImportQuestionsRequest struct {
	Questions []services.QuestionInput `json:"questions" binding:"required"`
}

// Import bulk-loads a question bank, e.g. an AI-generated JSON file.
func (h *QuestionHandler) Import(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req ImportQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	imported, err := h.questions.Import(eventID, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (h *QuestionHandler) Export(c *gin.Context) {
	eventID := c.GetUint("event_id")
	questions, err := h.questions.Export(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}
