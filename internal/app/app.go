// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт хранилища, репозитории, сервисы,
// обработчики и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	"lifesim/internal/catalog"
	"lifesim/internal/config"
	"lifesim/internal/features/auth"
	"lifesim/internal/features/battle"
	"lifesim/internal/features/collection"
	"lifesim/internal/features/player"
	"lifesim/internal/features/progression"
	"lifesim/internal/features/skills"
	"lifesim/internal/jobs"
	"lifesim/internal/server"
	"lifesim/internal/storage/playerfile"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *server.Server
	Scheduler *jobs.Scheduler
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Баланс и справочники ===
	balance, err := config.LoadBalance(cfg.BalancePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки баланса: %w", err)
	}
	cat, err := catalog.Load(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки справочников: %w", err)
	}

	// === 2. Хранилища ===
	store, err := playerfile.New(cfg.SavesDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка хранилища сохранений: %w", err)
	}
	authRepo, err := auth.NewRepository(cfg.SavesDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка хранилища учётных записей: %w", err)
	}
	sessions := battle.NewSessionStore()

	// === 3. Репозитории ===
	playerRepo := player.NewRepository(store)

	// === 4. Сервисы ===
	playerService := player.NewService(playerRepo, cat, authRepo)
	progressionService := progression.NewService(playerRepo, balance)
	skillsService := skills.NewService(playerRepo, cat)
	collectionService := collection.NewService(playerRepo, cat, balance)
	battleEngine := battle.NewEngine(sessions, playerRepo, cat, balance, progressionService, skillsService)
	authService := auth.NewService(authRepo, playerService, cfg)

	// === 5. Обработчики ===
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(cat)
	playerHandler := player.NewHandler(playerService, progression.NextThreshold)
	progressionHandler := progression.NewHandler(progressionService)
	battleHandler := battle.NewHandler(battleEngine)
	collectionHandler := collection.NewHandler(collectionService)
	skillsHandler := skills.NewHandler(skillsService)

	// === 6. HTTP-сервер ===
	srv := server.New(cfg,
		authHandler, catalogHandler, playerHandler, progressionHandler,
		battleHandler, collectionHandler, skillsHandler,
	)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(store, sessions, cfg.BackupDir)

	return &App{
		Server:    srv,
		Scheduler: scheduler,
	}, nil
}
