package services

import (
	"fmt"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/store"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type QRCodeService struct {
	db      *gorm.DB
	states  store.StateRepository
	baseURL string
}

func NewQRCodeService(db *gorm.DB, states store.StateRepository, baseURL string) *QRCodeService {
	return &QRCodeService{db: db, states: states, baseURL: baseURL}
}

// Generate replaces the event's code definitions. Red codes are named
// czerwony1..N, white codes bialy1..N, matching the printed sheets.
// Regeneration is blocked while a game runs so codes in the field stay
// valid.
func (s *QRCodeService) Generate(eventID uint, whiteCount, redCount int) ([]models.QRCode, error) {
	if whiteCount < 0 || redCount < 0 {
		return nil, fmt.Errorf("%w: code counts must not be negative", apperr.ErrInvalidArgument)
	}
	st, err := s.states.Load(eventID)
	if err != nil {
		return nil, err
	}
	if st.Active {
		return nil, fmt.Errorf("%w: cannot regenerate codes during an active game", apperr.ErrForbidden)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.QRCode{}).Error; err != nil {
			return err
		}
		for i := 1; i <= redCount; i++ {
			code := models.QRCode{EventID: eventID, CodeIdentifier: fmt.Sprintf("czerwony%d", i), IsRed: true}
			if err := tx.Create(&code).Error; err != nil {
				return err
			}
		}
		for i := 1; i <= whiteCount; i++ {
			code := models.QRCode{EventID: eventID, CodeIdentifier: fmt.Sprintf("bialy%d", i)}
			if err := tx.Create(&code).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generate codes: %w", err)
	}
	return s.List(eventID)
}

func (s *QRCodeService) List(eventID uint) ([]models.QRCode, error) {
	var codes []models.QRCode
	if err := s.db.Where("event_id = ?", eventID).Order("is_red DESC, id ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// PNG renders a printable QR image pointing at the player page for the code.
func (s *QRCodeService) PNG(eventID uint, codeIdentifier string, size int) ([]byte, error) {
	var code models.QRCode
	if err := s.db.Where("event_id = ? AND code_identifier = ?", eventID, codeIdentifier).
		First(&code).Error; err != nil {
		return nil, fmt.Errorf("%w: unknown QR code", apperr.ErrNotFound)
	}
	if size <= 0 {
		size = 256
	}
	url := fmt.Sprintf("%s/player/%d/%s", s.baseURL, eventID, code.CodeIdentifier)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr image: %w", err)
	}
	return png, nil
}
