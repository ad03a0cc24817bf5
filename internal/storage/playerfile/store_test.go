package playerfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lifesim/internal/common"
	"lifesim/internal/features/player"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := player.NewRecord("p1", time.Now())
	rec.Money = 5000
	rec.Level = 7
	rec.CurrentSkills = []string{"Огненный шар"}
	rec.SkillUsage["Огненный шар"] = 3

	if err := store.Save(ctx, "p1", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Money != 5000 || got.Level != 7 {
		t.Errorf("деньги=%d уровень=%d; ожидалось 5000/7", got.Money, got.Level)
	}
	if got.SkillUsage["Огненный шар"] != 3 {
		t.Errorf("использования навыка не сохранились: %v", got.SkillUsage)
	}
}

func TestLoadNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Load(ctx, "ghost"); !errors.Is(err, common.ErrPlayerNotFound) {
		t.Fatalf("ошибка %v; ожидалась ErrPlayerNotFound", err)
	}
}

// Старые сохранения без полей, добавленных позже, получают дефолты при чтении.
func TestLoadNormalizesOldSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	old := `{"level": 0, "money": -50, "hour": 30}`
	if err := os.WriteFile(filepath.Join(dir, "old.json"), []byte(old), 0o644); err != nil {
		t.Fatalf("запись старого сохранения: %v", err)
	}

	got, err := store.Load(ctx, "old")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "old" {
		t.Errorf("id %q; ожидался old", got.ID)
	}
	if got.Level != 1 || got.Day != 1 {
		t.Errorf("уровень=%d день=%d; ожидались единицы", got.Level, got.Day)
	}
	if got.Hour != 6 { // 30 часов заворачиваются в сутки
		t.Errorf("час %d; ожидался 6", got.Hour)
	}
	if got.Money != 0 {
		t.Errorf("деньги %d; отрицательные обнуляются", got.Money)
	}
	if got.SkillUsage == nil || got.Inventory == nil || got.Compendium == nil {
		t.Error("карты и списки должны быть инициализированы")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := player.NewRecord("p1", time.Now())
	if err := store.Save(ctx, "p1", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("чтение каталога: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("после записи остался временный файл %s", e.Name())
		}
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := player.NewRecord("p1", time.Now())
	if err := store.Save(ctx, "p1", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "p1"); !errors.Is(err, common.ErrPlayerNotFound) {
		t.Fatalf("сохранение осталось после удаления: %v", err)
	}

	// Повторное удаление — уже успех
	if err := store.Delete(ctx, "p1"); err != nil {
		t.Fatalf("повторное удаление: %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, id, player.NewRecord(id, time.Now())); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("в списке %d id; ожидалось 3: %v", len(ids), ids)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		if _, err := store.Load(ctx, id); err == nil || errors.Is(err, common.ErrPlayerNotFound) {
			t.Errorf("id %q должен отклоняться до обращения к диску", id)
		}
	}
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	backupDir := t.TempDir()

	for _, id := range []string{"a", "b"} {
		if err := store.Save(ctx, id, player.NewRecord(id, time.Now())); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	if err := store.Backup(ctx, backupDir); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	subdirs, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("чтение каталога бэкапов: %v", err)
	}
	if len(subdirs) != 1 || !subdirs[0].IsDir() {
		t.Fatalf("ожидался один подкаталог с меткой времени: %v", subdirs)
	}

	files, err := os.ReadDir(filepath.Join(backupDir, subdirs[0].Name()))
	if err != nil {
		t.Fatalf("чтение бэкапа: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("в бэкапе %d файлов; ожидалось 2", len(files))
	}
}
