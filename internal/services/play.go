package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/store"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// whiteScanCooldown limits how often one player can re-scan the same white
// code.
const whiteScanCooldown = 5 * time.Minute

// maxMinigameDelta bounds the score a single minigame completion can claim.
const maxMinigameDelta = 200

// PlayService handles the player-facing actions: scanning codes, answering
// questions and finishing minigames. Every scoring path feeds the reveal
// engine so the password keeps pace with the scores.
type PlayService struct {
	db       *gorm.DB
	states   store.StateRepository
	revealer *game.Revealer
	players  *PlayerService
	clock    clockwork.Clock
}

func NewPlayService(db *gorm.DB, states store.StateRepository, revealer *game.Revealer, players *PlayerService, clock clockwork.Clock) *PlayService {
	return &PlayService{db: db, states: states, revealer: revealer, players: players, clock: clock}
}

type ScanResult struct {
	Status         string           `json:"status"` // info | wait | minigame | question
	Message        string           `json:"message,omitempty"`
	WaitSeconds    int              `json:"wait_seconds,omitempty"`
	Game           string           `json:"game,omitempty"`
	Question       *QuestionPayload `json:"question,omitempty"`
	ScoreDelta     int              `json:"score_delta,omitempty"`
	TotalScore     int              `json:"total_score,omitempty"`
	RevealChanged  bool             `json:"-"`
	ScoreChanged   bool             `json:"-"`
}

type QuestionPayload struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
}

// ScanQR resolves a scanned code for a player. Red codes are a one-time
// claim worth points; white codes lead to a minigame when one is toggled on
// for the first three codes, otherwise to a random unanswered question.
func (s *PlayService) ScanQR(eventID, playerID uint, codeIdentifier string) (*ScanResult, error) {
	player, err := s.players.Get(eventID, playerID)
	if err != nil {
		return nil, err
	}

	var code models.QRCode
	if err := s.db.Where("event_id = ? AND code_identifier = ?", eventID, codeIdentifier).
		First(&code).Error; err != nil {
		return nil, fmt.Errorf("%w: unknown QR code", apperr.ErrNotFound)
	}

	if err := s.requireActiveGame(eventID); err != nil {
		return nil, err
	}

	if code.IsRed {
		return s.claimRedCode(player, &code)
	}
	return s.scanWhiteCode(player, &code)
}

func (s *PlayService) claimRedCode(player *models.Player, code *models.QRCode) (*ScanResult, error) {
	if code.ClaimedByPlayerID != nil {
		return nil, fmt.Errorf("%w: this code has already been claimed", apperr.ErrForbidden)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(code).Update("claimed_by_player_id", player.ID).Error; err != nil {
			return err
		}
		player.Score += game.PointsRedCode
		return tx.Save(player).Error
	})
	if err != nil {
		return nil, fmt.Errorf("claim red code: %w", err)
	}
	changed, err := s.revealer.AutoReveal(player.EventID, player.Score)
	if err != nil {
		return nil, err
	}
	return &ScanResult{
		Status:        "info",
		Message:       fmt.Sprintf("You earned %d points for a red code!", game.PointsRedCode),
		ScoreDelta:    game.PointsRedCode,
		TotalScore:    player.Score,
		ScoreChanged:  true,
		RevealChanged: changed,
	}, nil
}

func (s *PlayService) scanWhiteCode(player *models.Player, code *models.QRCode) (*ScanResult, error) {
	now := s.clock.Now()

	var lastScan models.PlayerScan
	err := s.db.Where("player_id = ? AND qr_code_id = ?", player.ID, code.ID).
		Order("scan_time DESC").
		First(&lastScan).Error
	if err == nil {
		if wait := lastScan.ScanTime.Add(whiteScanCooldown).Sub(now); wait > 0 {
			secs := int(wait.Seconds())
			return &ScanResult{
				Status:      "wait",
				Message:     fmt.Sprintf("Wait another %d min %d s before scanning this code again.", secs/60, secs%60),
				WaitSeconds: secs,
			}, nil
		}
	}

	scan := models.PlayerScan{
		EventID:  player.EventID,
		PlayerID: player.ID,
		QRCodeID: code.ID,
		ScanTime: now,
	}
	if err := s.db.Create(&scan).Error; err != nil {
		return nil, fmt.Errorf("record scan: %w", err)
	}

	minigame, err := s.activeMinigameFor(player.EventID, code.CodeIdentifier)
	if err != nil {
		return nil, err
	}
	if minigame != "" {
		return &ScanResult{Status: "minigame", Game: minigame}, nil
	}

	question, err := s.randomUnansweredQuestion(player.EventID, player.ID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return &ScanResult{Status: "info", Message: "You have answered all the questions!"}, nil
	}
	return &ScanResult{
		Status: "question",
		Question: &QuestionPayload{
			ID:      question.ID,
			Text:    question.Text,
			OptionA: question.OptionA,
			OptionB: question.OptionB,
			OptionC: question.OptionC,
		},
	}, nil
}

// activeMinigameFor returns the first toggled-on minigame type, but only for
// the first three white codes; the rest always serve questions.
func (s *PlayService) activeMinigameFor(eventID uint, codeIdentifier string) (string, error) {
	switch codeIdentifier {
	case "bialy1", "bialy2", "bialy3":
	default:
		return "", nil
	}
	for _, gameType := range models.MinigameTypes {
		on, err := s.states.Flag(eventID, "minigame_"+gameType)
		if err != nil {
			return "", fmt.Errorf("read minigame flag: %w", err)
		}
		if on {
			return gameType, nil
		}
	}
	return "", nil
}

func (s *PlayService) randomUnansweredQuestion(eventID, playerID uint) (*models.Question, error) {
	var answered []uint
	if err := s.db.Model(&models.PlayerAnswer{}).
		Where("player_id = ? AND event_id = ?", playerID, eventID).
		Pluck("question_id", &answered).Error; err != nil {
		return nil, err
	}

	query := s.db.Where("event_id = ?", eventID)
	if len(answered) > 0 {
		query = query.Where("id NOT IN ?", answered)
	}
	var question models.Question
	if err := query.Order("RANDOM()").First(&question).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

type AnswerResult struct {
	Correct       bool `json:"correct"`
	ScoreDelta    int  `json:"score_delta"`
	TotalScore    int  `json:"total_score"`
	RevealChanged bool `json:"-"`
}

// SubmitAnswer scores one answer. The answer record is immutable and unique
// per (player, question): a second submission is rejected.
func (s *PlayService) SubmitAnswer(eventID, playerID, questionID uint, answer string) (*AnswerResult, error) {
	player, err := s.players.Get(eventID, playerID)
	if err != nil {
		return nil, err
	}

	var question models.Question
	if err := s.db.Where("id = ? AND event_id = ?", questionID, eventID).First(&question).Error; err != nil {
		return nil, fmt.Errorf("%w: question not found", apperr.ErrNotFound)
	}

	if err := s.requireActiveGame(eventID); err != nil {
		return nil, err
	}

	var existing models.PlayerAnswer
	if err := s.db.Where("player_id = ? AND question_id = ?", playerID, questionID).
		First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: question already answered", apperr.ErrConflict)
	}

	correct := strings.EqualFold(answer, question.CorrectAnswer)

	st, err := s.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	delta := game.AnswerDelta(correct, question.Source == models.QuestionSourceAI, st.Bonus)
	newScore := game.ApplyDelta(player.Score, delta)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		record := models.PlayerAnswer{
			EventID:    eventID,
			PlayerID:   playerID,
			QuestionID: questionID,
			Correct:    correct,
			AnsweredAt: s.clock.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(player).Update("score", newScore).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}
	player.Score = newScore

	revealChanged := false
	if correct {
		revealChanged, err = s.revealer.AutoReveal(eventID, player.Score)
		if err != nil {
			return nil, err
		}
	}
	return &AnswerResult{
		Correct:       correct,
		ScoreDelta:    delta,
		TotalScore:    player.Score,
		RevealChanged: revealChanged,
	}, nil
}

type MinigameOutcome struct {
	ScoreDelta    int  `json:"score_delta"`
	TotalScore    int  `json:"total_score"`
	RevealChanged bool `json:"-"`
}

// CompleteMinigame awards a bounded score for finishing an active minigame.
func (s *PlayService) CompleteMinigame(eventID, playerID uint, gameType string, scoreDelta int) (*MinigameOutcome, error) {
	if !models.IsMinigameType(gameType) {
		return nil, fmt.Errorf("%w: unknown minigame %q", apperr.ErrInvalidArgument, gameType)
	}
	if scoreDelta < 0 || scoreDelta > maxMinigameDelta {
		return nil, fmt.Errorf("%w: score delta out of range", apperr.ErrInvalidArgument)
	}
	player, err := s.players.Get(eventID, playerID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveGame(eventID); err != nil {
		return nil, err
	}
	on, err := s.states.Flag(eventID, "minigame_"+gameType)
	if err != nil {
		return nil, err
	}
	if !on {
		return nil, fmt.Errorf("%w: minigame %s is not active", apperr.ErrForbidden, gameType)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := models.MinigameResult{
			EventID:  eventID,
			PlayerID: playerID,
			GameType: gameType,
			Score:    scoreDelta,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		player.Score += scoreDelta
		return tx.Save(player).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record minigame result: %w", err)
	}

	changed, err := s.revealer.AutoReveal(eventID, player.Score)
	if err != nil {
		return nil, err
	}
	return &MinigameOutcome{
		ScoreDelta:    scoreDelta,
		TotalScore:    player.Score,
		RevealChanged: changed,
	}, nil
}

func (s *PlayService) requireActiveGame(eventID uint) error {
	st, err := s.states.Load(eventID)
	if err != nil {
		return err
	}
	if !st.Active {
		return fmt.Errorf("%w: game is not active", apperr.ErrForbidden)
	}
	return nil
}
