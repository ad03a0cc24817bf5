// Package collection — service.go содержит бизнес-логику коллекции:
// поимка монстров, выбор редкости по весам, слияние три-в-один.
package collection

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/player"
)

// Service управляет коллекцией монстров.
type Service struct {
	repo    *player.Repository
	catalog *catalog.Catalog
	balance *config.Balance

	// Источники случайности вынесены в поля, чтобы тесты могли
	// подсунуть детерминированные. Дефолт — глобальный math/rand/v2
	// (потокобезопасный).
	randFloat func() float64
	randIntN  func(n int) int
}

// NewService создаёт сервис коллекции.
func NewService(repo *player.Repository, cat *catalog.Catalog, balance *config.Balance) *Service {
	return &Service{
		repo:      repo,
		catalog:   cat,
		balance:   balance,
		randFloat: rand.Float64,
		randIntN:  rand.IntN,
	}
}

// PickRarityByWeight выбирает редкость по таблице весов появления:
// кумулятивная сумма, равномерный бросок [0,1), первая редкость,
// чья сумма не меньше броска. Если из-за плавающей точки ни одна
// не подошла — возвращаем самую частую.
func (s *Service) PickRarityByWeight() Rarity {
	draw := s.randFloat()

	var cum float64
	for _, w := range rarityWeights {
		cum += w.Spawn
		if cum >= draw {
			return w.Rarity
		}
	}
	return rarityWeights[0].Rarity
}

// Capture заносит монстра в коллекцию.
// Повторная поимка — инкремент счётчика встреч, а не дубликат записи.
// Операция не может отказать по игровым причинам (идемпотентное слияние).
func (s *Service) Capture(ctx context.Context, playerID, monsterID string) (*player.Record, *player.CompendiumEntry, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.capture(rec, monsterID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, nil, err
	}
	return rec, entry, nil
}

// CaptureInto — та же поимка, но без загрузки и записи сохранения.
// Её зовёт боевой движок, который уже держит сохранение в руках.
func (s *Service) CaptureInto(rec *player.Record, monsterID string) (*player.CompendiumEntry, error) {
	return s.capture(rec, monsterID)
}

func (s *Service) capture(rec *player.Record, monsterID string) (*player.CompendiumEntry, error) {
	mon, ok := s.catalog.Monster(monsterID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMonster, monsterID)
	}

	// Повторная поимка — только счётчик встреч, дубликата не будет
	if entry := rec.FindCompendium(monsterID); entry != nil {
		entry.TimesEncountered++
		return entry, nil
	}

	rec.Compendium = append(rec.Compendium, player.CompendiumEntry{
		MonsterID:        mon.ID,
		Name:             mon.Name,
		Rarity:           mon.Rarity,
		HP:               s.rollRange(mon.MinHP, mon.MaxHP),
		Attack:           s.rollRange(mon.MinAttack, mon.MaxAttack),
		TimesEncountered: 1,
		TimesDefeated:    1,
		CapturedAt:       time.Now(),
	})
	entry := &rec.Compendium[len(rec.Compendium)-1]

	log.WithFields(log.Fields{
		"player_id": rec.ID,
		"monster":   monsterID,
		"rarity":    mon.Rarity,
	}).Info("Монстр пойман")

	return entry, nil
}

// Fuse сжигает трёх монстров одной редкости и выдаёт одного нового.
// Один бросок Бернулли решает, поднимется ли редкость на ступень.
// Все проверки до изменений: при отказе коллекция не меняется.
func (s *Service) Fuse(ctx context.Context, playerID string, monsterIDs []string) (*player.Record, *FusionResult, error) {
	if len(monsterIDs) != 3 {
		return nil, nil, common.ErrWrongFusionCount
	}
	// Один и тот же монстр трижды — это одна запись коллекции, не три
	if monsterIDs[0] == monsterIDs[1] || monsterIDs[0] == monsterIDs[2] || monsterIDs[1] == monsterIDs[2] {
		return nil, nil, common.ErrWrongFusionCount
	}

	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]*player.CompendiumEntry, 0, 3)
	for _, id := range monsterIDs {
		entry := rec.FindCompendium(id)
		if entry == nil {
			return nil, nil, fmt.Errorf("%w: %q", common.ErrMonsterNotCaptured, id)
		}
		entries = append(entries, entry)
	}

	src := Rarity(entries[0].Rarity)
	for _, e := range entries[1:] {
		if Rarity(e.Rarity) != src {
			return nil, nil, common.ErrRarityMismatch
		}
	}

	// Шанс улучшения по исходной редкости; мифическая — терминальная
	out := src
	upgraded := false
	if next, ok := src.Next(); ok {
		chance := s.balance.FusionUpgradeChance[string(src)]
		if s.randFloat() < chance {
			out = next
			upgraded = true
		}
	}

	// Трое исходных сгорают, взамен — один новый со свежими характеристиками
	s.removeEntries(rec, monsterIDs)
	newEntry := s.rollNewEntry(rec, out, entries[0].MonsterID)

	result := &FusionResult{
		Upgraded:     upgraded,
		BecameMythic: upgraded && out == RarityMythic,
		Rarity:       out,
		MonsterID:    newEntry.MonsterID,
		Name:         newEntry.Name,
		HP:           newEntry.HP,
		Attack:       newEntry.Attack,
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"from":      src,
		"to":        out,
		"upgraded":  upgraded,
	}).Info("Слияние выполнено")

	return rec, result, nil
}

// rollNewEntry добавляет в коллекцию нового монстра редкости out.
// Берём случайного монстра этой редкости из каталога; если каталог
// для неё пуст, оставляем личность первого исходного монстра.
func (s *Service) rollNewEntry(rec *player.Record, out Rarity, fallbackID string) *player.CompendiumEntry {
	var mon *catalog.Monster
	if candidates := s.catalog.MonstersByRarity(string(out)); len(candidates) > 0 {
		mon = &candidates[s.randIntN(len(candidates))]
	} else if m, ok := s.catalog.Monster(fallbackID); ok {
		mon = m
	}

	entry := player.CompendiumEntry{
		Rarity:           string(out),
		TimesEncountered: 1,
		TimesDefeated:    0,
		CapturedAt:       time.Now(),
	}
	if mon != nil {
		entry.MonsterID = mon.ID
		entry.Name = mon.Name
		entry.HP = s.rollRange(mon.MinHP, mon.MaxHP)
		entry.Attack = s.rollRange(mon.MinAttack, mon.MaxAttack)
	} else {
		entry.MonsterID = fallbackID
	}

	// Если такой монстр уже есть в коллекции — инкремент, а не дубликат
	if existing := rec.FindCompendium(entry.MonsterID); existing != nil {
		existing.TimesEncountered++
		return existing
	}

	rec.Compendium = append(rec.Compendium, entry)
	return &rec.Compendium[len(rec.Compendium)-1]
}

func (s *Service) removeEntries(rec *player.Record, ids []string) {
	burn := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		burn[id] = struct{}{}
	}

	kept := rec.Compendium[:0]
	for _, e := range rec.Compendium {
		if _, gone := burn[e.MonsterID]; !gone {
			kept = append(kept, e)
		}
	}
	rec.Compendium = kept
}

// rollRange бросает значение из [min, max]. При вырожденном диапазоне — min.
func (s *Service) rollRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.randIntN(max-min+1)
}
