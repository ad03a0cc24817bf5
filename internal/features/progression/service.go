// Package progression — service.go содержит бизнес-логику прогрессии:
// повышение уровня, распределение очков характеристик, сон с начислением аренды.
package progression

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/player"
)

// Service управляет прогрессией игрока.
type Service struct {
	repo    *player.Repository
	balance *config.Balance
}

// NewService создаёт сервис прогрессии.
func NewService(repo *player.Repository, balance *config.Balance) *Service {
	return &Service{repo: repo, balance: balance}
}

// ApplyLevelUp пересчитывает уровень от суммарного опыта и, если уровень
// вырос, начисляет очки характеристик за каждый новый уровень.
// Возвращает количество набранных уровней (0 — ничего не изменилось).
func (s *Service) ApplyLevelUp(rec *player.Record) int {
	info := ExperienceToLevel(rec.Exp)
	if info.Level <= rec.Level {
		// Опыт в нормальной игре не убывает; понижение уровня не делаем
		return 0
	}

	delta := info.Level - rec.Level
	rec.Level = info.Level
	rec.StatPoints += s.balance.StatPointsPerLevel * delta

	log.WithFields(log.Fields{
		"player_id":  rec.ID,
		"level":      rec.Level,
		"levels_up":  delta,
		"points_add": s.balance.StatPointsPerLevel * delta,
	}).Info("Уровень повышен")

	return delta
}

// AllocateStat вкладывает очки в характеристику.
// Все проверки до изменений: при любом отказе сохранение остаётся как было.
func (s *Service) AllocateStat(ctx context.Context, playerID, statName string, points int) (*player.Record, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if points <= 0 {
		return nil, common.ErrInvalidPoints
	}
	if points > rec.StatPoints {
		return nil, common.ErrNotEnoughStatPoints
	}

	switch statName {
	case "strength":
		rec.Stats.Strength += points
	case "intelligence":
		rec.Stats.Intelligence += points
	case "charm":
		rec.Stats.Charm += points
	case "vitality":
		rec.Stats.Vitality += points
	case "luck":
		rec.Stats.Luck += points
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStat, statName)
	}
	rec.StatPoints -= points

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RentEvent — одна выплата аренды за сон.
type RentEvent struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Cycles     int    `json:"cycles"`
	Amount     int64  `json:"amount"`
}

// SleepSummary — человекочитаемый итог сна. Побочный вывод для клиента,
// в сохранение не попадает.
type SleepSummary struct {
	Day        int         `json:"day"`
	Hour       int         `json:"hour"`
	Energy     int         `json:"energy"`
	Money      int64       `json:"money"`
	RentEvents []RentEvent `json:"rent_events"`
	Message    string      `json:"message"`
}

// Sleep продвигает время на SleepHours часов и восстанавливает энергию.
// При переходе через полночь наступает новый день и начисляется аренда.
// Сон не может завершиться ошибкой (кроме ошибок I/O).
func (s *Service) Sleep(ctx context.Context, playerID string) (*player.Record, *SleepSummary, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	rec.Hour += s.balance.SleepHours
	var rents []RentEvent
	if rec.Hour >= 24 {
		rec.Hour -= 24
		rec.Day++
		rents = s.accrueRent(rec)
	}

	rec.Energy = common.ClampInt(rec.Energy+s.balance.SleepEnergyRestore, 0, rec.MaxEnergy)

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, nil, err
	}

	summary := &SleepSummary{
		Day:        rec.Day,
		Hour:       rec.Hour,
		Energy:     rec.Energy,
		Money:      rec.Money,
		RentEvents: rents,
	}
	summary.Message = sleepMessage(rec, rents)
	return rec, summary, nil
}

// accrueRent начисляет аренду за полные циклы.
// LastRentDay прыгает сразу на текущий день: остаток неполного цикла
// сгорает, а не переносится. Дробной аренды нет — так в оригинале.
func (s *Service) accrueRent(rec *player.Record) []RentEvent {
	cycleDays := s.balance.RentCycleDays

	var events []RentEvent
	for i := range rec.Properties {
		p := &rec.Properties[i]
		elapsed := rec.Day - p.LastRentDay
		if elapsed < cycleDays {
			continue
		}

		cycles := elapsed / cycleDays
		amount := p.Rent * int64(cycles)
		rec.AddMoney(amount)
		p.LastRentDay = rec.Day

		events = append(events, RentEvent{
			PropertyID: p.ID,
			Name:       p.Name,
			Cycles:     cycles,
			Amount:     amount,
		})

		log.WithFields(log.Fields{
			"player_id": rec.ID,
			"property":  p.ID,
			"cycles":    cycles,
			"amount":    amount,
		}).Info("Аренда начислена")
	}
	return events
}

func sleepMessage(rec *player.Record, rents []RentEvent) string {
	msg := fmt.Sprintf("Вы проснулись: %s. Энергия: %d/%d.",
		common.FormatGameTime(rec.Day, rec.Hour), rec.Energy, rec.MaxEnergy)
	for _, e := range rents {
		msg += fmt.Sprintf(" Аренда «%s»: +%s.", e.Name, common.FormatMoney(e.Amount))
	}
	return msg
}
