// Package player — repository.go выполняет операции с хранилищем сохранений.
package player

import (
	"context"
	"fmt"
	"time"
)

// Store — контракт хранилища сохранений.
// Реализация — файловое хранилище (internal/storage/playerfile):
// один JSON-документ на игрока, запись всегда целиком.
type Store interface {
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, rec *Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// Repository предоставляет доступ к сохранениям игроков.
type Repository struct {
	store Store
}

// NewRepository создаёт новый репозиторий игроков.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Get загружает сохранение игрока.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save записывает сохранение целиком, обновляя UpdatedAt.
func (r *Repository) Save(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now()
	if err := r.store.Save(ctx, rec.ID, rec); err != nil {
		return fmt.Errorf("ошибка записи сохранения %s: %w", rec.ID, err)
	}
	return nil
}

// Delete удаляет сохранение игрока безвозвратно.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// List возвращает id всех игроков.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}
