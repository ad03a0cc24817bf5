// Package player — service.go содержит бизнес-логику работы с сохранениями:
// создание новой игры, покупка недвижимости, удаление данных игрока.
package player

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
)

// CredentialRemover убирает учётную запись по id игрока.
// Реализует auth.Repository; сохранение без учётной записи (и наоборот)
// существовать не должно.
type CredentialRemover interface {
	DeleteByPlayerID(ctx context.Context, playerID string) error
}

// Service управляет жизненным циклом сохранений.
type Service struct {
	repo    *Repository
	catalog *catalog.Catalog
	creds   CredentialRemover
}

// NewService создаёт сервис игроков.
func NewService(repo *Repository, cat *catalog.Catalog, creds CredentialRemover) *Service {
	return &Service{repo: repo, catalog: cat, creds: creds}
}

// Create создаёт новую игру: свежее сохранение с фиксированными дефолтами
// и стартовым навыком из каталога (если каталог не пуст).
func (s *Service) Create(ctx context.Context) (*Record, error) {
	rec := NewRecord(uuid.NewString(), time.Now())

	// Стартовый навык — первый в каталоге, с полным запасом использований
	if skills := s.catalog.Skills(); len(skills) > 0 {
		first := skills[0]
		rec.CurrentSkills = append(rec.CurrentSkills, first.Name)
		uses := first.MaxUses
		if uses <= 0 {
			uses = defaultSkillFallbackUC
		}
		rec.SkillUsage[first.Name] = uses
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	log.WithField("player_id", rec.ID).Info("Создана новая игра")
	return rec, nil
}

// Get загружает сохранение игрока.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

// Delete безвозвратно удаляет данные игрока вместе с учётной записью:
// логин освобождается, токены удалённого игрока больше не обменять
// на живую учётную запись.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.creds.DeleteByPlayerID(ctx, id); err != nil {
		return err
	}
	log.WithField("player_id", id).Info("Данные игрока удалены")
	return nil
}

// BuyProperty покупает недвижимость из каталога.
// Проверки до любых изменений: недвижимость существует, ещё не куплена,
// денег хватает. При отказе сохранение не меняется вовсе.
func (s *Service) BuyProperty(ctx context.Context, playerID, propertyID string) (*Record, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	prop, ok := s.catalog.Property(propertyID)
	if !ok {
		return nil, common.ErrUnknownProperty
	}
	for _, owned := range rec.Properties {
		if owned.ID == propertyID {
			return nil, common.ErrPropertyOwned
		}
	}
	if err := rec.SpendMoney(prop.Price); err != nil {
		return nil, err
	}

	rec.Properties = append(rec.Properties, OwnedProperty{
		ID:          prop.ID,
		Name:        prop.Name,
		Price:       prop.Price,
		Rent:        prop.Rent,
		LastRentDay: rec.Day, // Первый цикл аренды отсчитывается от дня покупки
	})

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"property":  propertyID,
		"price":     prop.Price,
	}).Info("Недвижимость куплена")

	return rec, nil
}
