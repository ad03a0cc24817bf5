// Package auth — repository.go хранит учётные данные игроков.
// Один JSON-файл credentials.json рядом с сохранениями: логин →
// bcrypt-хеш пароля и id игрока. Паролей в открытом виде нет нигде.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lifesim/internal/common"
)

// Credential — учётная запись одного игрока.
type Credential struct {
	PlayerID     string    `json:"player_id"`
	PasswordHash string    `json:"password_hash"` // bcrypt
	CreatedAt    time.Time `json:"created_at"`
}

// Repository читает и пишет файл учётных записей целиком, под мьютексом:
// регистрации редки, гонка на файле нам не нужна.
type Repository struct {
	mu   sync.Mutex
	path string
}

// NewRepository создаёт репозиторий учётных записей в каталоге dir.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога учётных записей: %w", err)
	}
	return &Repository{path: filepath.Join(dir, "credentials.json")}, nil
}

// Get возвращает учётную запись по логину.
func (r *Repository) Get(ctx context.Context, login string) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.readAll()
	if err != nil {
		return nil, err
	}
	cred, ok := creds[login]
	if !ok {
		return nil, common.ErrWrongPassword // Не раскрываем, существует ли логин
	}
	return &cred, nil
}

// Create добавляет новую учётную запись. Логин занят — отказ.
func (r *Repository) Create(ctx context.Context, login string, cred Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.readAll()
	if err != nil {
		return err
	}
	if _, exists := creds[login]; exists {
		return common.ErrLoginTaken
	}
	creds[login] = cred
	return r.writeAll(creds)
}

// DeleteByPlayerID убирает учётную запись по id игрока — логин
// удалённого игрока снова становится свободным, а старые токены
// перестают вести к живой учётной записи. Отсутствие записи — не
// ошибка: регистрация могла оборваться до создания логина.
func (r *Repository) DeleteByPlayerID(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.readAll()
	if err != nil {
		return err
	}
	for login, cred := range creds {
		if cred.PlayerID == playerID {
			delete(creds, login)
			return r.writeAll(creds)
		}
	}
	return nil
}

func (r *Repository) readAll() (map[string]Credential, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Credential{}, nil
		}
		return nil, fmt.Errorf("чтение учётных записей: %w", err)
	}

	var creds map[string]Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("разбор учётных записей: %w", err)
	}
	if creds == nil {
		creds = map[string]Credential{}
	}
	return creds, nil
}

func (r *Repository) writeAll(creds map[string]Credential) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация учётных записей: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("запись учётных записей: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("замена учётных записей: %w", err)
	}
	return nil
}
