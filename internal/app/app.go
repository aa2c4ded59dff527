package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/studybuddy/internal/config"
	"github.com/studybuddy/studybuddy/internal/db"
	"github.com/studybuddy/studybuddy/internal/repository"
	"github.com/studybuddy/studybuddy/internal/service"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	TokenService  *service.TokenService
	StreakService *service.StreakService
	FocusService  *service.FocusService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	activityRepository := repository.NewActivityRepository(database)
	forgivenessRepository := repository.NewForgivenessRepository(database)
	focusSessionRepository := repository.NewFocusSessionRepository(database)

	// Services
	tokenService := service.NewTokenService(cfg.JWTSecret)
	streakService := service.NewStreakService(activityRepository, forgivenessRepository, cfg.Location)
	focusService := service.NewFocusService(focusSessionRepository, cfg.Location)

	return &App{
		Cfg:           cfg,
		DB:            database,
		TokenService:  tokenService,
		StreakService: streakService,
		FocusService:  focusService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
