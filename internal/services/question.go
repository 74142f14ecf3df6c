package services

import (
	"fmt"
	"strings"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	Category      string `json:"category,omitempty"`
	Source        string `json:"source,omitempty"`
}

func (s *QuestionService) Create(eventID uint, in QuestionInput) (*models.Question, error) {
	question, err := s.fromInput(eventID, in)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(question).Error; err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

func (s *QuestionService) Update(eventID, questionID uint, in QuestionInput) (*models.Question, error) {
	var existing models.Question
	if err := s.db.Where("id = ? AND event_id = ?", questionID, eventID).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("%w: question not found", apperr.ErrNotFound)
	}
	question, err := s.fromInput(eventID, in)
	if err != nil {
		return nil, err
	}
	question.ID = existing.ID
	if err := s.db.Save(question).Error; err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return question, nil
}

func (s *QuestionService) Delete(eventID, questionID uint) error {
	res := s.db.Where("id = ? AND event_id = ?", questionID, eventID).Delete(&models.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: question not found", apperr.ErrNotFound)
	}
	return nil
}

func (s *QuestionService) List(eventID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("event_id = ?", eventID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("order_num ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Import bulk-loads questions, typically an AI-generated bank. Existing
// questions are kept; duplicates are the caller's problem.
func (s *QuestionService) Import(eventID uint, inputs []QuestionInput) (int, error) {
	imported := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			question, err := s.fromInput(eventID, in)
			if err != nil {
				return err
			}
			if err := tx.Create(question).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import questions: %w", err)
	}
	return imported, nil
}

// Export returns the event's full bank in the import format.
func (s *QuestionService) Export(eventID uint) ([]QuestionInput, error) {
	questions, err := s.List(eventID)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}
	titles := make(map[uint]string, len(categories))
	for _, c := range categories {
		titles[c.ID] = c.Title
	}

	out := make([]QuestionInput, len(questions))
	for i, q := range questions {
		category := ""
		if q.CategoryID != nil {
			category = titles[*q.CategoryID]
		}
		out[i] = QuestionInput{
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			CorrectAnswer: q.CorrectAnswer,
			Category:      category,
			Source:        q.Source,
		}
	}
	return out, nil
}

func (s *QuestionService) fromInput(eventID uint, in QuestionInput) (*models.Question, error) {
	answer := strings.ToUpper(strings.TrimSpace(in.CorrectAnswer))
	if answer != "A" && answer != "B" && answer != "C" {
		return nil, fmt.Errorf("%w: correct answer must be A, B or C", apperr.ErrInvalidArgument)
	}

	source := in.Source
	switch source {
	case "":
		source = models.QuestionSourceManual
	case models.QuestionSourceManual, models.QuestionSourceAI:
	default:
		return nil, fmt.Errorf("%w: unknown question source %q", apperr.ErrInvalidArgument, in.Source)
	}

	question := &models.Question{
		EventID:       eventID,
		Text:          in.Text,
		OptionA:       in.OptionA,
		OptionB:       in.OptionB,
		OptionC:       in.OptionC,
		CorrectAnswer: answer,
		Source:        source,
	}

	if in.Category != "" {
		var category models.Category
		if err := s.db.Where("title = ?", in.Category).First(&category).Error; err != nil {
			return nil, fmt.Errorf("%w: unknown category %q", apperr.ErrInvalidArgument, in.Category)
		}
		question.CategoryID = &category.ID
	}
	return question, nil
}
