package main

import (
	"context"
	"flag"
	"log"

	"crossfit-api/cmd"
	"crossfit-api/internal/data/migrations"
	"crossfit-api/internal/data/repository"
	"crossfit-api/internal/notifier"
	"crossfit-api/internal/usecase"
	"crossfit-api/internal/wire"
	"crossfit-api/pkg/database"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	cleanupOnly := flag.Bool("cleanup-sessions", false, "delete expired sessions and exit")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("mail_driver", config.Mail.Driver),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx := context.Background()

	if config.Database.Migrate {
		if err := database.RunMigrations(ctx, db, migrations.FS); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	repos := repository.NewRepository(db, logger)

	if *cleanupOnly {
		if err := cmd.CleanupSessions(ctx, repos.Session, logger); err != nil {
			logger.Fatal("Cleanup failed", zap.Error(err))
		}
		return
	}

	if config.Seed.Enabled {
		created, err := usecase.SeedDefaultUsers(ctx, repos.User, config.Seed.Password, logger)
		if err != nil {
			logger.Fatal("Failed to seed users", zap.Error(err))
		}
		logger.Info("Seed finished", zap.Int("created", created))
	}

	inner, err := notifier.New(config, logger)
	if err != nil {
		logger.Fatal("Failed to build notifier", zap.Error(err))
	}
	notify := notifier.NewAsync(inner, logger)
	defer func() {
		if err := notify.Close(); err != nil {
			logger.Warn("Failed to close notifier", zap.Error(err))
		}
	}()

	app := wire.Wiring(repos, config, notify, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
