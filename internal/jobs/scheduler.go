// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ночной бэкап сохранений
// и почасовой отчёт по открытым боям.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"lifesim/internal/features/battle"
	"lifesim/internal/storage/playerfile"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron      *cron.Cron
	store     *playerfile.Store
	sessions  *battle.SessionStore
	backupDir string
}

// NewScheduler создаёт планировщик задач.
func NewScheduler(store *playerfile.Store, sessions *battle.SessionStore, backupDir string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		store:     store,
		sessions:  sessions,
		backupDir: backupDir,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ночной бэкап всех сохранений в 04:00
	s.cron.AddFunc("0 4 * * *", func() {
		log.Info("[CRON] Ночной бэкап сохранений")
		if err := s.store.Backup(ctx, s.backupDir); err != nil {
			log.WithError(err).Error("[CRON] Ошибка бэкапа")
		}
	})

	// Почасовой отчёт: сколько боёв висит в памяти.
	// Открытые сессии живут до победы/поражения/бегства — если их
	// стабильно много, клиенты бросают бои, не выходя из них.
	s.cron.AddFunc("0 * * * *", func() {
		log.WithField("open_battles", s.sessions.Count()).Info("[CRON] Открытые бои")
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
