package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/michalkopec1981/saper/internal/apperr"
	"github.com/michalkopec1981/saper/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

type LoginResult struct {
	Token     string `json:"token"`
	EventID   uint   `json:"event_id"`
	EventName string `json:"event_name"`
}

func (s *AuthService) Login(login, password string) (*LoginResult, error) {
	var event models.Event
	if err := s.db.Where("login = ?", login).First(&event).Error; err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(event.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	token, err := s.GenerateToken(event.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, EventID: event.ID, EventName: event.Name}, nil
}

func (s *AuthService) GenerateToken(eventID uint) (string, error) {
	claims := jwt.MapClaims{
		"event_id": eventID,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	eventIDFloat, ok := claims["event_id"].(float64)
	if !ok {
		return 0, errors.New("invalid event_id in token")
	}

	return uint(eventIDFloat), nil
}
