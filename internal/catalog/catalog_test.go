package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("загружает и индексирует справочники", func(t *testing.T) {
		dir := t.TempDir()
		files := map[string]string{
			"monsters.json":   `[{"id": "slime", "name": "Слизень", "rarity": "rare", "min_hp": 20, "max_hp": 40, "min_attack": 3, "max_attack": 6}]`,
			"skills.json":     `[{"name": "Удар", "min_mult": 1.0, "max_mult": 2.0, "max_uses": 10}]`,
			"dungeons.json":   `[{"id": "cellar", "name": "Подвал", "word_count": 5, "question_count": 3, "reward_min": 50, "reward_max": 150}]`,
			"properties.json": `[{"id": "room", "name": "Комната", "price": 500, "rent": 50}]`,
		}
		for name, body := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
				t.Fatalf("запись %s: %v", name, err)
			}
		}

		cat, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if m, ok := cat.Monster("slime"); !ok || m.Name != "Слизень" {
			t.Errorf("монстр slime не проиндексирован: %v, %v", m, ok)
		}
		if s, ok := cat.Skill("Удар"); !ok || s.MaxUses != 10 {
			t.Errorf("навык «Удар» не проиндексирован: %v, %v", s, ok)
		}
		if d, ok := cat.Dungeon("cellar"); !ok || d.RewardMax != 150 {
			t.Errorf("подземелье cellar не проиндексировано: %v, %v", d, ok)
		}
		if p, ok := cat.Property("room"); !ok || p.Rent != 50 {
			t.Errorf("недвижимость room не проиндексирована: %v, %v", p, ok)
		}
	})

	t.Run("отсутствующий файл даёт пустой список, а не ошибку", func(t *testing.T) {
		cat, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load на пустом каталоге: %v", err)
		}
		if len(cat.Monsters()) != 0 || len(cat.Skills()) != 0 {
			t.Error("пустой каталог данных должен давать пустые списки")
		}
		if _, ok := cat.Monster("slime"); ok {
			t.Error("индекс пустого каталога что-то нашёл")
		}
	})

	t.Run("битый JSON — ошибка", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "monsters.json"), []byte("{не json"), 0o644); err != nil {
			t.Fatalf("запись: %v", err)
		}
		if _, err := Load(dir); err == nil {
			t.Fatal("битый файл должен быть ошибкой")
		}
	})

	t.Run("выборка по редкости", func(t *testing.T) {
		dir := t.TempDir()
		monsters := `[
			{"id": "a", "rarity": "rare"},
			{"id": "b", "rarity": "epic"},
			{"id": "c", "rarity": "rare"}
		]`
		if err := os.WriteFile(filepath.Join(dir, "monsters.json"), []byte(monsters), 0o644); err != nil {
			t.Fatalf("запись: %v", err)
		}
		cat, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := cat.MonstersByRarity("rare"); len(got) != 2 {
			t.Errorf("rare-монстров %d; ожидалось 2", len(got))
		}
		if got := cat.MonstersByRarity("mythic"); len(got) != 0 {
			t.Errorf("mythic-монстров %d; ожидалось 0", len(got))
		}
	})
}
