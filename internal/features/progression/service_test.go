package progression

import (
	"context"
	"errors"
	"testing"
	"time"

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
	store := newMemStore()
	return NewService(player.NewRepository(store), config.DefaultBalance()), store
}

func seedPlayer(store *memStore, id string) *player.Record {
	rec := player.NewRecord(id, time.Now())
	store.recs[id] = rec
	return rec
}

func TestApplyLevelUp(t *testing.T) {
	svc, store := newTestService(t)

	t.Run("начисляет очки за каждый уровень", func(t *testing.T) {
		rec := seedPlayer(store, "p1")
		rec.Exp = 314 // Ровно до третьего уровня

		gained := svc.ApplyLevelUp(rec)
		if gained != 2 {
			t.Fatalf("набрано уровней %d; ожидалось 2", gained)
		}
		if rec.Level != 3 {
			t.Errorf("уровень %d; ожидался 3", rec.Level)
		}
		if rec.StatPoints != 10 {
			t.Errorf("очков характеристик %d; ожидалось 10", rec.StatPoints)
		}
	})

	t.Run("повторный вызов ничего не меняет", func(t *testing.T) {
		rec := seedPlayer(store, "p2")
		rec.Exp = 314
		svc.ApplyLevelUp(rec)

		if gained := svc.ApplyLevelUp(rec); gained != 0 {
			t.Errorf("повторный вызов набрал %d уровней; ожидалось 0", gained)
		}
	})

	t.Run("уровень не понижается", func(t *testing.T) {
		rec := seedPlayer(store, "p3")
		rec.Level = 10
		rec.Exp = 0

		if gained := svc.ApplyLevelUp(rec); gained != 0 {
			t.Errorf("набрано %d; ожидалось 0", gained)
		}
		if rec.Level != 10 {
			t.Errorf("уровень упал до %d", rec.Level)
		}
	})
}

func TestAllocateStat(t *testing.T) {
	ctx := context.Background()

	t.Run("вкладывает очки в силу", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.StatPoints = 10

		got, err := svc.AllocateStat(ctx, "p1", "strength", 3)
		if err != nil {
			t.Fatalf("AllocateStat: %v", err)
		}
		if got.Stats.Strength != 8 { // 5 стартовых + 3
			t.Errorf("сила %d; ожидалось 8", got.Stats.Strength)
		}
		if got.StatPoints != 7 {
			t.Errorf("осталось очков %d; ожидалось 7", got.StatPoints)
		}
	})

	t.Run("отказы не меняют сохранение", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.StatPoints = 2

		cases := []struct {
			name    string
			stat    string
			points  int
			wantErr error
		}{
			{"ноль очков", "strength", 0, common.ErrInvalidPoints},
			{"отрицательные очки", "strength", -5, common.ErrInvalidPoints},
			{"больше чем есть", "strength", 3, common.ErrNotEnoughStatPoints},
			{"неизвестная характеристика", "dexterity", 1, common.ErrUnknownStat},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.AllocateStat(ctx, "p1", tc.stat, tc.points)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ошибка %v; ожидалась %v", err, tc.wantErr)
				}
				if rec.StatPoints != 2 || rec.Stats.Strength != 5 {
					t.Errorf("отказ изменил сохранение: очки=%d, сила=%d", rec.StatPoints, rec.Stats.Strength)
				}
			})
		}
	})

	t.Run("неизвестный игрок", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AllocateStat(ctx, "ghost", "strength", 1)
		if !errors.Is(err, common.ErrPlayerNotFound) {
			t.Fatalf("ошибка %v; ожидалась ErrPlayerNotFound", err)
		}
	})
}

func TestSleep(t *testing.T) {
	ctx := context.Background()

	t.Run("восстанавливает энергию без перехода через полночь", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Hour = 8
		rec.Energy = 2

		got, summary, err := svc.Sleep(ctx, "p1")
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if got.Hour != 16 || got.Day != 1 {
			t.Errorf("время день=%d час=%d; ожидалось день=1 час=16", got.Day, got.Hour)
		}
		if got.Energy != 7 {
			t.Errorf("энергия %d; ожидалось 7", got.Energy)
		}
		if len(summary.RentEvents) != 0 {
			t.Errorf("аренда начислена без смены дня: %+v", summary.RentEvents)
		}
	})

	t.Run("переход через полночь наступает новый день", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Day = 3
		rec.Hour = 20

		got, _, err := svc.Sleep(ctx, "p1")
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if got.Day != 4 || got.Hour != 4 {
			t.Errorf("время день=%d час=%d; ожидалось день=4 час=4", got.Day, got.Hour)
		}
	})

	t.Run("энергия не превышает максимум", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Hour = 8
		rec.Energy = 8 // Максимум 10, восстановление 5

		got, _, err := svc.Sleep(ctx, "p1")
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if got.Energy != got.MaxEnergy {
			t.Errorf("энергия %d; ожидался максимум %d", got.Energy, got.MaxEnergy)
		}
	})
}

func TestAccrueRent(t *testing.T) {
	ctx := context.Background()

	prop := player.OwnedProperty{
		ID:   "flat",
		Name: "Квартира",
		Rent: 1200,
	}

	t.Run("аренды нет до полного цикла", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Day = 29
		rec.Hour = 20
		p := prop
		p.LastRentDay = 1
		rec.Properties = []player.OwnedProperty{p}
		money := rec.Money

		_, summary, err := svc.Sleep(ctx, "p1") // День станет 30-м, прошло 29 дней
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if len(summary.RentEvents) != 0 {
			t.Fatalf("аренда начислена раньше цикла: %+v", summary.RentEvents)
		}
		if summary.Money != money {
			t.Errorf("деньги изменились: %d -> %d", money, summary.Money)
		}
	})

	t.Run("полный цикл выплачивается", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Day = 30
		rec.Hour = 20
		p := prop
		p.LastRentDay = 1
		rec.Properties = []player.OwnedProperty{p}
		money := rec.Money

		got, summary, err := svc.Sleep(ctx, "p1") // День станет 31-м, прошло 30 дней
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if len(summary.RentEvents) != 1 {
			t.Fatalf("событий аренды %d; ожидалось 1", len(summary.RentEvents))
		}
		e := summary.RentEvents[0]
		if e.Cycles != 1 || e.Amount != 1200 {
			t.Errorf("событие %+v; ожидался 1 цикл на 1200", e)
		}
		if got.Money != money+1200 {
			t.Errorf("деньги %d; ожидалось %d", got.Money, money+1200)
		}
		// Остаток неполного цикла сгорает: точка отсчёта — текущий день.
		if got.Properties[0].LastRentDay != got.Day {
			t.Errorf("LastRentDay=%d; ожидался текущий день %d", got.Properties[0].LastRentDay, got.Day)
		}
	})

	t.Run("несколько пропущенных циклов разом", func(t *testing.T) {
		svc, store := newTestService(t)
		rec := seedPlayer(store, "p1")
		rec.Day = 65
		rec.Hour = 20
		p := prop
		p.LastRentDay = 1
		rec.Properties = []player.OwnedProperty{p}

		_, summary, err := svc.Sleep(ctx, "p1") // День 66, прошло 65 дней = 2 цикла
		if err != nil {
			t.Fatalf("Sleep: %v", err)
		}
		if len(summary.RentEvents) != 1 {
			t.Fatalf("событий аренды %d; ожидалось 1", len(summary.RentEvents))
		}
		e := summary.RentEvents[0]
		if e.Cycles != 2 || e.Amount != 2400 {
			t.Errorf("событие %+v; ожидалось 2 цикла на 2400", e)
		}
	})
}
