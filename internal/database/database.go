package database

import (
	"fmt"

	"github.com/michalkopec1981/saper/internal/config"
	"github.com/michalkopec1981/saper/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Event{},
		&models.Category{},
		&models.Question{},
		&models.Player{},
		&models.QRCode{},
		&models.PlayerScan{},
		&models.PlayerAnswer{},
		&models.RevealedPosition{},
		&models.MinigameResult{},
		&models.Photo{},
		&models.PhotoVote{},
		&models.StateEntry{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	log.Info().Msg("database migrated")
}

// defaultEventCount is how many pre-provisioned event hosts exist.
const defaultEventCount = 5

// DefaultCategories is the stock question-category list.
var DefaultCategories = []string{
	"Historia powszechna",
	"Historia Polski",
	"Geografia świata",
	"Geografia Polski",
	"Gry Komputery i sprzęt",
	"Muzyka",
	"Kuchnia",
	"Film",
	"Sport",
	"Nauki ścisłe",
}

// SeedDefaults provisions the default event hosts and the category list.
// Idempotent: existing rows are left untouched.
func SeedDefaults(db *gorm.DB) error {
	for i := 1; i <= defaultEventCount; i++ {
		var existing models.Event
		if err := db.First(&existing, i).Error; err == nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(fmt.Sprintf("password%d", i)), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		event := models.Event{
			ID:           uint(i),
			Name:         fmt.Sprintf("Event #%d", i),
			Login:        fmt.Sprintf("host%d", i),
			PasswordHash: string(hash),
			RevealMode:   models.RevealModeAuto,
		}
		if err := db.Create(&event).Error; err != nil {
			return fmt.Errorf("seed event %d: %w", i, err)
		}
	}
	return SeedCategories(db)
}

// SeedCategories ensures every default category exists.
func SeedCategories(db *gorm.DB) error {
	for i, title := range DefaultCategories {
		cat := models.Category{Title: title, OrderNum: i + 1}
		if err := db.Where(models.Category{Title: title}).FirstOrCreate(&cat).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", title, err)
		}
	}
	return nil
}
