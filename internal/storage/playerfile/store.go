// Package playerfile реализует файловое хранилище сохранений:
// один JSON-файл на игрока, чтение и запись всегда целым документом.
// Никаких транзакций и версий — последняя запись побеждает (так задумано).
package playerfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"lifesim/internal/common"
	"lifesim/internal/features/player"
)

// Store хранит сохранения в каталоге dir, по файлу <id>.json на игрока.
type Store struct {
	dir string
}

// New создаёт хранилище и каталог под него.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога сохранений: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load читает документ игрока целиком и нормализует его:
// у старых сохранений могут отсутствовать поля, добавленные позже.
func (s *Store) Load(ctx context.Context, id string) (*player.Record, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("чтение сохранения %s: %w", id, err)
	}

	var rec player.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("разбор сохранения %s: %w", id, err)
	}
	rec.ID = id
	player.Normalize(&rec)
	return &rec, nil
}

// Save пишет документ целиком: сначала во временный файл, потом rename.
// Так при падении посреди записи на диске остаётся старая версия, а не огрызок.
func (s *Store) Save(ctx context.Context, id string, rec *player.Record) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация сохранения %s: %w", id, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("запись сохранения %s: %w", id, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("замена сохранения %s: %w", id, err)
	}
	return nil
}

// Delete удаляет файл сохранения. Отсутствие файла — уже успех.
func (s *Store) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("удаление сохранения %s: %w", id, err)
	}
	return nil
}

// List возвращает id всех сохранений в каталоге.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога сохранений: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Backup копирует все сохранения в подкаталог dstDir с меткой времени.
// Используется ночным cron-заданием.
func (s *Store) Backup(ctx context.Context, dstDir string) error {
	ids, err := s.List(ctx)
	if err != nil {
		return err
	}

	dst := filepath.Join(dstDir, time.Now().Format("2006-01-02_150405"))
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("создание каталога бэкапа: %w", err)
	}

	for _, id := range ids {
		src, err := s.path(id)
		if err != nil {
			continue
		}
		if err := copyFile(src, filepath.Join(dst, id+".json")); err != nil {
			return fmt.Errorf("бэкап сохранения %s: %w", id, err)
		}
	}

	log.WithFields(log.Fields{"count": len(ids), "dir": dst}).Info("Бэкап сохранений завершён")
	return nil
}

// path строит путь к файлу и отсекает id с разделителями пути.
func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("некорректный id игрока: %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
