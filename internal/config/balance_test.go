package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBalanceIsValid(t *testing.T) {
	if err := DefaultBalance().Validate(); err != nil {
		t.Fatalf("дефолтный баланс не проходит собственную проверку: %v", err)
	}
}

func TestLoadBalance(t *testing.T) {
	t.Run("пустой путь возвращает дефолты", func(t *testing.T) {
		b, err := LoadBalance("")
		if err != nil {
			t.Fatalf("LoadBalance: %v", err)
		}
		if b.SleepHours != 8 || b.RentCycleDays != 30 {
			t.Errorf("дефолты не совпали: %+v", b)
		}
	})

	t.Run("файл перекрывает только указанные поля", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "balance.yaml")
		yaml := "sleep_hours: 6\ndrop_rate_cap: 0.05\n"
		if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
			t.Fatalf("запись файла баланса: %v", err)
		}

		b, err := LoadBalance(path)
		if err != nil {
			t.Fatalf("LoadBalance: %v", err)
		}
		if b.SleepHours != 6 {
			t.Errorf("sleep_hours = %d; ожидалось 6", b.SleepHours)
		}
		if b.DropRateCap != 0.05 {
			t.Errorf("drop_rate_cap = %v; ожидалось 0.05", b.DropRateCap)
		}
		// Неуказанные поля остаются дефолтными
		if b.RentCycleDays != 30 || b.StatPointsPerLevel != 5 {
			t.Errorf("неуказанные поля перетёрты: %+v", b)
		}
	})

	t.Run("некорректные значения отклоняются", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "balance.yaml")
		if err := os.WriteFile(path, []byte("sleep_hours: 25\n"), 0o644); err != nil {
			t.Fatalf("запись файла баланса: %v", err)
		}

		if _, err := LoadBalance(path); err == nil {
			t.Fatal("sleep_hours=25 должен отклоняться")
		}
	})

	t.Run("несуществующий файл", func(t *testing.T) {
		if _, err := LoadBalance("/нет/такого/файла.yaml"); err == nil {
			t.Fatal("несуществующий путь должен быть ошибкой")
		}
	})
}

func TestBalanceValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Balance)
	}{
		{"нулевой цикл аренды", func(b *Balance) { b.RentCycleDays = 0 }},
		{"потолок дропа ниже базы", func(b *Balance) { b.DropRateCap = 0.0001 }},
		{"множитель наград меньше единицы", func(b *Balance) { b.AdvancedRewardMult = 0.5 }},
		{"доля наград за пределами единицы", func(b *Balance) { b.DefeatRewardRatio = 1.5 }},
		{"шанс слияния больше единицы", func(b *Balance) { b.FusionUpgradeChance["rare"] = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := DefaultBalance()
			tc.mutate(b)
			if err := b.Validate(); err == nil {
				t.Error("ожидалась ошибка валидации")
			}
		})
	}
}
