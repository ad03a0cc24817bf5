// Package skills управляет набором навыков игрока:
// до 4 экипированных слотов, запас неэкипированных и предметы навыков.
package skills

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
	"lifesim/internal/features/player"
)

// MaxEquipped — максимум экипированных навыков.
const MaxEquipped = 4

// Идентификаторы предметов навыков. Инвентарь принимает только их:
// произвольные строковые ключи отклоняются на границе.
const (
	// ItemRecharge восстанавливает каждому навыку половину максимума использований.
	ItemRecharge = "skill_recharge"
	// ItemReset восстанавливает каждому навыку использования до максимума.
	ItemReset = "skill_reset"
)

// Service управляет навыками игрока.
type Service struct {
	repo    *player.Repository
	catalog *catalog.Catalog
}

// NewService создаёт сервис навыков.
func NewService(repo *player.Repository, cat *catalog.Catalog) *Service {
	return &Service{repo: repo, catalog: cat}
}

// Acquire выдаёт игроку навык: свободный слот — экипируем сразу,
// слоты заняты — кладём в запас.
func (s *Service) Acquire(ctx context.Context, playerID, skillName string) (*player.Record, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err := s.AcquireInto(rec, skillName); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AcquireInto — та же выдача, но над уже загруженным сохранением.
// Её зовёт боевой движок при выпадении карты навыка.
//
// Инвариант: имя навыка встречается максимум в одном из двух списков.
// Навык уже в запасе — тихий no-op, уже экипирован — отказ.
func (s *Service) AcquireInto(rec *player.Record, skillName string) error {
	skill, ok := s.catalog.Skill(skillName)
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownSkill, skillName)
	}
	if rec.HasEquipped(skillName) {
		return common.ErrSkillAlreadyOwned
	}
	if rec.HasInPool(skillName) {
		return nil
	}

	if len(rec.CurrentSkills) < MaxEquipped {
		rec.CurrentSkills = append(rec.CurrentSkills, skillName)
		rec.SkillUsage[skillName] = skill.MaxUses
	} else {
		rec.AcquiredSkills = append(rec.AcquiredSkills, skillName)
	}

	log.WithFields(log.Fields{
		"player_id": rec.ID,
		"skill":     skillName,
		"equipped":  rec.HasEquipped(skillName),
	}).Info("Навык получен")

	return nil
}

// Replace меняет экипированный навык на навык из запаса,
// сохраняя позицию слота. Старый уходит в запас.
func (s *Service) Replace(ctx context.Context, playerID, oldName, newName string) (*player.Record, error) {
	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	skill, ok := s.catalog.Skill(newName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownSkill, newName)
	}
	if !rec.HasEquipped(oldName) {
		return nil, common.ErrSkillNotEquipped
	}
	if !rec.HasInPool(newName) {
		return nil, common.ErrSkillNotInPool
	}

	// Меняем местами: новый встаёт в тот же слот, старый — в запас
	for i, name := range rec.CurrentSkills {
		if name == oldName {
			rec.CurrentSkills[i] = newName
			break
		}
	}
	for i, name := range rec.AcquiredSkills {
		if name == newName {
			rec.AcquiredSkills[i] = oldName
			break
		}
	}

	// Свежеэкипированный навык получает полный запас использований
	if _, ok := rec.SkillUsage[newName]; !ok {
		rec.SkillUsage[newName] = skill.MaxUses
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UseItem применяет предмет навыков и списывает одну штуку из инвентаря.
// Неизвестный id предмета отклоняется — свободных ключей в инвентаре нет.
func (s *Service) UseItem(ctx context.Context, playerID, itemID string) (*player.Record, error) {
	if itemID != ItemRecharge && itemID != ItemReset {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownItem, itemID)
	}

	rec, err := s.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if rec.SkillItems[itemID] <= 0 {
		return nil, common.ErrItemNotOwned
	}

	for name := range rec.SkillUsage {
		skill, ok := s.catalog.Skill(name)
		if !ok {
			continue
		}
		switch itemID {
		case ItemRecharge:
			restored := rec.SkillUsage[name] + skill.MaxUses/2
			if restored > skill.MaxUses {
				restored = skill.MaxUses
			}
			rec.SkillUsage[name] = restored
		case ItemReset:
			rec.SkillUsage[name] = skill.MaxUses
		}
	}

	rec.SkillItems[itemID]--

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"item":      itemID,
		"left":      rec.SkillItems[itemID],
	}).Info("Предмет навыков использован")

	return rec, nil
}
