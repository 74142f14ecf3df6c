package main

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/michalkopec1981/saper/internal/config"
	"github.com/michalkopec1981/saper/internal/database"
	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/handlers"
	"github.com/michalkopec1981/saper/internal/middleware"
	"github.com/michalkopec1981/saper/internal/services"
	"github.com/michalkopec1981/saper/internal/store"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("LOG_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	if err := database.SeedDefaults(db); err != nil {
		log.Fatal().Err(err).Msg("seeding default hosts failed")
	}

	hub := ws.NewHub()
	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	states := store.NewGormStateRepository(db)
	revealer := game.NewRevealer(db, states, rng)
	ctrl := game.NewController(db, states, revealer, clock)

	tickSec, _ := strconv.Atoi(cfg.TickInterval)
	if tickSec <= 0 {
		tickSec = 1
	}
	scheduler := game.NewScheduler(ctrl, states, hub, clock, time.Duration(tickSec)*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	playerService := services.NewPlayerService(db)
	playService := services.NewPlayService(db, states, revealer, playerService, clock)
	questionService := services.NewQuestionService(db)
	qrService := services.NewQRCodeService(db, states, cfg.PublicBaseURL)
	minigameService := services.NewMinigameService(db, states)
	photoService := services.NewPhotoService(db, playerService)

	authHandler := handlers.NewAuthHandler(authService)
	gameHandler := handlers.NewGameHandler(ctrl, revealer, hub)
	playerHandler := handlers.NewPlayerHandler(playerService, hub)
	playHandler := handlers.NewPlayHandler(playService, ctrl, hub)
	questionHandler := handlers.NewQuestionHandler(questionService)
	qrHandler := handlers.NewQRCodeHandler(qrService)
	minigameHandler := handlers.NewMinigameHandler(minigameService, hub)
	photoHandler := handlers.NewPhotoHandler(photoService)
	settingsHandler := handlers.NewSettingsHandler(db)
	superhostHandler := handlers.NewSuperhostHandler(db, ctrl, hub)
	wsHandler := handlers.NewWSHandler(hub, ctrl)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Superhost-Key"},
		AllowCredentials: true,
	}))

	r.GET("/ws/event/:id", wsHandler.HandleConnection)

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		// player-facing endpoints, authenticated per request by player token
		api.POST("/register", playerHandler.Register)
		api.POST("/scan", playHandler.Scan)
		api.POST("/answer", playHandler.Answer)
		api.POST("/minigame/complete", playHandler.CompleteMinigame)
		api.POST("/photos", photoHandler.Submit)
		api.POST("/photos/vote", photoHandler.Vote)
		api.GET("/event/:id/leaderboard", playHandler.Leaderboard)
		api.GET("/event/:id/qrcodes", qrHandler.ListPublic)
		api.GET("/event/:id/qrcodes/:code/image", qrHandler.Image)

		host := api.Group("/host")
		host.Use(middleware.HostAuth(authService))
		{
			host.GET("/state", gameHandler.GetState)
			host.POST("/game/start", gameHandler.Start)
			host.POST("/game/stop", gameHandler.Stop)
			host.POST("/game/pause", gameHandler.PauseToggle)
			host.POST("/game/speed", gameHandler.AdjustSpeed)
			host.POST("/game/bonus", gameHandler.AdjustBonus)
			host.POST("/game/duration", gameHandler.AdjustDuration)
			host.POST("/game/reveal", gameHandler.RevealManual)

			host.GET("/players", playerHandler.List)
			host.DELETE("/players/:id", playerHandler.Delete)
			host.POST("/players/:id/warn", playerHandler.Warn)

			host.GET("/questions", questionHandler.List)
			host.POST("/questions", questionHandler.Create)
			host.PUT("/questions/:id", questionHandler.Update)
			host.DELETE("/questions/:id", questionHandler.Delete)
			host.GET("/categories", questionHandler.Categories)
			host.POST("/questions/import", questionHandler.Import)
			host.GET("/questions/export", questionHandler.Export)

			host.GET("/qrcodes", qrHandler.List)
			host.POST("/qrcodes/generate", qrHandler.Generate)

			host.GET("/minigames", minigameHandler.GetActive)
			host.POST("/minigames", minigameHandler.SetActive)
			host.GET("/minigames/results", minigameHandler.Results)

			host.GET("/photos", photoHandler.List)

			host.GET("/settings", settingsHandler.GetSettings)
			host.PUT("/settings", settingsHandler.UpdateSettings)
		}

		super := api.Group("/superhost")
		super.Use(middleware.SuperhostAuth(cfg.SuperhostKey))
		{
			super.GET("/hosts", superhostHandler.ListHosts)
			super.POST("/hosts/update", superhostHandler.UpdateHost)
			super.POST("/event/:id/reset", superhostHandler.ResetEvent)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
