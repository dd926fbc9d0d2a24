package main

import (
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/config"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/database"
	"github.com/yukikurage/qa-forum/internal/handlers"
	"github.com/yukikurage/qa-forum/internal/logging"
	"github.com/yukikurage/qa-forum/internal/session"
	"github.com/yukikurage/qa-forum/internal/storage"
	"github.com/yukikurage/qa-forum/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogFormat)
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Session store: redis when REDIS_HOST is set, signed cookies otherwise
	store, err := session.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	avatars := storage.NewAvatarStorage(cfg.MediaRoot)
	if !avatars.Exists(constants.DefaultAvatar) {
		slog.Warn("Default avatar is missing", "media_root", cfg.MediaRoot)
	}

	r := handlers.NewRouter(handlers.Dependencies{
		DB:           database.GetDB(),
		SessionStore: store,
		Avatars:      avatars,
		Templates:    web.MustTemplates(),
		Logger:       logger,
	})

	// Start server
	slog.Info("Server starting", "port", cfg.Port, "mail_enabled", cfg.MailEnabled)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
