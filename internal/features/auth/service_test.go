package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/player"
)

// memStore — хранилище в памяти для тестов. Реализует player.Store.
type memStore struct {
	recs map[string]*player.Record
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]*player.Record)}
}

func (m *memStore) Load(ctx context.Context, id string) (*player.Record, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, common.ErrPlayerNotFound
	}
	return rec, nil
}

func (m *memStore) Save(ctx context.Context, id string, rec *player.Record) error {
	m.recs[id] = rec
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	delete(m.recs, id)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.recs))
	for id := range m.recs {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()

	repo, err := NewRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}

	cat, err := catalog.Load(t.TempDir()) // Пустой каталог: стартового навыка не будет
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}

	store := newMemStore()
	players := player.NewService(player.NewRepository(store), cat, repo)

	cfg := &config.Config{
		JWTSecret:  "секретный-ключ-для-тестов",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost, // Тестам незачем жечь процессор
	}
	return NewService(repo, players, cfg), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("создаёт игру и выдаёт рабочий токен", func(t *testing.T) {
		svc, store := newTestService(t)

		token, rec, err := svc.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if token == "" {
			t.Fatal("токен пустой")
		}
		if _, ok := store.recs[rec.ID]; !ok {
			t.Error("сохранение не создано")
		}

		playerID, err := svc.VerifyToken(token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if playerID != rec.ID {
			t.Errorf("из токена извлечён id %q; ожидался %q", playerID, rec.ID)
		}
	})

	t.Run("короткие логин или пароль", func(t *testing.T) {
		svc, _ := newTestService(t)

		cases := []struct {
			name     string
			login    string
			password string
		}{
			{"короткий логин", "ab", "secret99"},
			{"короткий пароль", "hero", "12345"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, _, err := svc.Register(ctx, tc.login, tc.password); !errors.Is(err, common.ErrShortCredentials) {
					t.Fatalf("ошибка %v; ожидалась ErrShortCredentials", err)
				}
			})
		}
	})

	t.Run("занятый логин не оставляет сирот", func(t *testing.T) {
		svc, store := newTestService(t)

		if _, _, err := svc.Register(ctx, "hero", "secret99"); err != nil {
			t.Fatalf("первая регистрация: %v", err)
		}
		_, _, err := svc.Register(ctx, "hero", "another99")
		if !errors.Is(err, common.ErrLoginTaken) {
			t.Fatalf("ошибка %v; ожидалась ErrLoginTaken", err)
		}
		// Сохранение от второй попытки должно быть убрано
		if len(store.recs) != 1 {
			t.Errorf("сохранений %d; осиротевшие должны удаляться", len(store.recs))
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("верный пароль выдаёт токен", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, rec, err := svc.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		token, err := svc.Login(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		playerID, err := svc.VerifyToken(token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if playerID != rec.ID {
			t.Errorf("id из токена %q; ожидался %q", playerID, rec.ID)
		}
	})

	t.Run("неверный пароль", func(t *testing.T) {
		svc, _ := newTestService(t)
		if _, _, err := svc.Register(ctx, "hero", "secret99"); err != nil {
			t.Fatalf("Register: %v", err)
		}

		if _, err := svc.Login(ctx, "hero", "wrong99"); !errors.Is(err, common.ErrWrongPassword) {
			t.Fatalf("ошибка %v; ожидалась ErrWrongPassword", err)
		}
	})

	t.Run("удалённый игрок не может войти, логин освобождается", func(t *testing.T) {
		svc, store := newTestService(t)
		_, rec, err := svc.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		if err := svc.players.Delete(ctx, rec.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		// Учётная запись удалена вместе с сохранением
		if _, err := svc.Login(ctx, "hero", "secret99"); !errors.Is(err, common.ErrWrongPassword) {
			t.Fatalf("ошибка %v; ожидалась ErrWrongPassword", err)
		}

		// Логин снова свободен — это новая игра, не воскрешение старой
		_, again, err := svc.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("повторная регистрация: %v", err)
		}
		if again.ID == rec.ID {
			t.Error("повторная регистрация вернула id удалённого игрока")
		}
		if _, ok := store.recs[rec.ID]; ok {
			t.Error("сохранение удалённого игрока уцелело")
		}
	})

	t.Run("несуществующий логин выглядит как неверный пароль", func(t *testing.T) {
		svc, _ := newTestService(t)

		if _, err := svc.Login(ctx, "ghost", "secret99"); !errors.Is(err, common.ErrWrongPassword) {
			t.Fatalf("ошибка %v; ожидалась ErrWrongPassword", err)
		}
	})
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("мусор вместо токена", func(t *testing.T) {
		if _, err := svc.VerifyToken("не.токен.вовсе"); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("ошибка %v; ожидалась ErrInvalidToken", err)
		}
	})

	t.Run("чужая подпись", func(t *testing.T) {
		other, _ := newTestService(t)
		other.cfg.JWTSecret = "совсем-другой-секрет-тут"

		ctx := context.Background()
		token, _, err := other.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		if _, err := svc.VerifyToken(token); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("ошибка %v; ожидалась ErrInvalidToken", err)
		}
	})

	t.Run("просроченный токен", func(t *testing.T) {
		expired, _ := newTestService(t)
		expired.cfg.TokenTTL = -time.Hour

		ctx := context.Background()
		token, _, err := expired.Register(ctx, "hero", "secret99")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		if _, err := expired.VerifyToken(token); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("ошибка %v; ожидалась ErrInvalidToken", err)
		}
	})
}
