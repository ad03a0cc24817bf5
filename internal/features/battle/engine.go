// Package battle — engine.go ведёт бой от старта до развязки.
// Один запрос игрока — один полный обмен ударами: ответ врага
// разрешается синхронно внутри того же вызова, между запросами
// не существует «подвисшего» хода врага.
package battle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/player"
	"lifesim/internal/features/progression"
	"lifesim/internal/features/skills"
)

// Engine управляет боевыми сессиями.
type Engine struct {
	store       *SessionStore
	repo        *player.Repository
	catalog     *catalog.Catalog
	balance     *config.Balance
	progression *progression.Service
	skills      *skills.Service

	// Случайность через поля — тесты подсовывают детерминированную.
	randFloat func() float64
	randIntN  func(n int) int
}

// NewEngine создаёт боевой движок. Хранилище сессий передаётся снаружи:
// оно же нужно планировщику для почасового отчёта.
func NewEngine(
	store *SessionStore,
	repo *player.Repository,
	cat *catalog.Catalog,
	balance *config.Balance,
	prog *progression.Service,
	sk *skills.Service,
) *Engine {
	return &Engine{
		store:       store,
		repo:        repo,
		catalog:     cat,
		balance:     balance,
		progression: prog,
		skills:      sk,
		randFloat:   rand.Float64,
		randIntN:    rand.IntN,
	}
}

// Start открывает бой на этапе stageID.
// Характеристики врага: hp = 50 + этап*5, атака = 5 + этап/10,
// в продвинутом режиме обе удвоены. Вход стоит энергию приключений.
func (e *Engine) Start(ctx context.Context, playerID string, stageID int) (*Session, error) {
	if stageID < 1 {
		return nil, common.ErrInvalidStage
	}

	rec, err := e.repo.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := rec.SpendAdventureEnergy(e.balance.BattleEnergyCost); err != nil {
		return nil, err
	}
	if err := e.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	enemyHP := 50 + stageID*5
	enemyAttack := 5 + stageID/10
	if rec.AdvancedMode {
		enemyHP *= 2
		enemyAttack *= 2
	}

	sess := &Session{
		ID:           uuid.NewString(),
		PlayerID:     playerID,
		StageID:      stageID,
		Advanced:     rec.AdvancedMode,
		PlayerHP:     rec.Health,
		PlayerMaxHP:  rec.MaxHealth,
		PlayerAttack: rec.CombatAttack(),
		Skills:       append([]string(nil), rec.CurrentSkills...),
		SkillUses:    make(map[string]int, len(rec.CurrentSkills)),
		EnemyHP:      enemyHP,
		EnemyMaxHP:   enemyHP,
		EnemyAttack:  enemyAttack,
		CreatedAt:    time.Now(),
	}
	for _, name := range rec.CurrentSkills {
		sess.SkillUses[name] = rec.SkillUsage[name]
	}
	sess.Log = append(sess.Log, fmt.Sprintf("Этап %d: появился противник (%d ОЗ)", stageID, enemyHP))

	e.store.Put(sess)

	log.WithFields(log.Fields{
		"player_id": playerID,
		"battle_id": sess.ID,
		"stage":     stageID,
		"advanced":  sess.Advanced,
	}).Info("Бой начат")

	return sess, nil
}

// UseSkill выполняет полный обмен ударами: удар игрока и, если враг выжил,
// синхронный ответ врага. Вся валидация — до каких-либо изменений сессии:
// неизвестный или исчерпанный навык не тратит ход.
func (e *Engine) UseSkill(ctx context.Context, playerID, battleID, skillName string) (*TurnResult, error) {
	sess, ok := e.store.Get(battleID)
	if !ok {
		return nil, common.ErrBattleNotFound
	}
	// Чужой бой выглядит как несуществующий
	if sess.PlayerID != playerID {
		return nil, common.ErrBattleNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Сессию могли завершить, пока мы ждали мьютекс
	if _, still := e.store.Get(battleID); !still {
		return nil, common.ErrBattleNotFound
	}

	skill, ok := e.catalog.Skill(skillName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownSkill, skillName)
	}
	if !sess.hasSkill(skillName) {
		return nil, common.ErrSkillNotEquipped
	}
	if sess.SkillUses[skillName] <= 0 {
		return nil, common.ErrSkillExhausted
	}

	// Удар игрока: floor(атака * U[min, max)), минимум 1
	mult := skill.MinMult + e.randFloat()*(skill.MaxMult-skill.MinMult)
	damage := int(math.Floor(float64(sess.PlayerAttack) * mult))
	if damage < 1 {
		damage = 1
	}
	sess.SkillUses[skillName]--
	sess.EnemyHP -= damage
	sess.TurnCount++
	sess.Log = append(sess.Log, fmt.Sprintf("Ход %d: «%s» наносит %d урона (у врага %d ОЗ)",
		sess.TurnCount, skillName, damage, maxInt(sess.EnemyHP, 0)))

	if sess.EnemyHP <= 0 {
		return e.finish(ctx, sess, true)
	}

	// Ответ врага: floor(атака * U[0.9, 1.1)), минимум 1
	counterMult := 0.9 + e.randFloat()*0.2
	counter := int(math.Floor(float64(sess.EnemyAttack) * counterMult))
	if counter < 1 {
		counter = 1
	}
	sess.PlayerHP -= counter
	sess.Log = append(sess.Log, fmt.Sprintf("Враг отвечает: %d урона (у вас %d ОЗ)",
		counter, maxInt(sess.PlayerHP, 0)))

	if sess.PlayerHP <= 0 {
		return e.finish(ctx, sess, false)
	}

	return &TurnResult{
		BattleID:  sess.ID,
		PlayerHP:  sess.PlayerHP,
		EnemyHP:   sess.EnemyHP,
		TurnCount: sess.TurnCount,
		Log:       append([]string(nil), sess.Log...),
	}, nil
}

// Flee уничтожает сессию. Бегство из уже завершённого боя — тоже успех:
// клиент может повторить запрос, ничего не сломав.
func (e *Engine) Flee(ctx context.Context, playerID, battleID string) {
	sess, ok := e.store.Get(battleID)
	if !ok {
		return
	}
	if sess.PlayerID != playerID {
		return
	}
	log.WithField("battle_id", battleID).Info("Бегство из боя")
	e.store.Remove(battleID)
}

// finish завершает бой: считает награды, применяет их к сохранению
// и убирает сессию из памяти. Вызывается под мьютексом сессии.
func (e *Engine) finish(ctx context.Context, sess *Session, victory bool) (*TurnResult, error) {
	diffMult := 1.0
	if sess.Advanced {
		diffMult = e.balance.AdvancedRewardMult
	}

	exp := int64(math.Floor(float64(50+sess.StageID*5) * diffMult))
	money := int64(math.Floor(float64(100+sess.StageID*10) * diffMult))
	if !victory {
		// Утешительные: доля от победной формулы, без дропа
		exp = int64(math.Floor(float64(exp) * e.balance.DefeatRewardRatio))
		money = int64(math.Floor(float64(money) * e.balance.DefeatRewardRatio))
	}

	rewards := &Rewards{Exp: exp, Money: money}
	if victory {
		rewards.SkillDrop = e.rollSkillDrop(sess.StageID, sess.Advanced)
		sess.Log = append(sess.Log, fmt.Sprintf("Победа! +%d опыта, +%s", exp, common.FormatMoney(money)))
		if rewards.SkillDrop != "" {
			sess.Log = append(sess.Log, fmt.Sprintf("Выпала карта навыка: «%s»!", rewards.SkillDrop))
		}
	} else {
		sess.Log = append(sess.Log, fmt.Sprintf("Поражение... +%d опыта, +%s", exp, common.FormatMoney(money)))
	}

	levels, err := e.applyOutcome(ctx, sess, rewards, victory)
	if err != nil {
		return nil, err
	}

	e.store.Remove(sess.ID)

	log.WithFields(log.Fields{
		"player_id": sess.PlayerID,
		"battle_id": sess.ID,
		"stage":     sess.StageID,
		"victory":   victory,
		"turns":     sess.TurnCount,
		"exp":       exp,
		"money":     money,
	}).Info("Бой завершён")

	return &TurnResult{
		BattleID:     sess.ID,
		Victory:      victory,
		Defeat:       !victory,
		Rewards:      rewards,
		PlayerHP:     maxInt(sess.PlayerHP, 0),
		EnemyHP:      maxInt(sess.EnemyHP, 0),
		TurnCount:    sess.TurnCount,
		Log:          append([]string(nil), sess.Log...),
		LevelsGained: levels,
	}, nil
}

// applyOutcome переносит итог боя в сохранение и пишет его целиком.
func (e *Engine) applyOutcome(ctx context.Context, sess *Session, rewards *Rewards, victory bool) (int, error) {
	rec, err := e.repo.Get(ctx, sess.PlayerID)
	if err != nil {
		return 0, err
	}

	rec.Exp += rewards.Exp
	levels := e.progression.ApplyLevelUp(rec)
	rec.AddMoney(rewards.Money)

	// Потраченные за бой использования навыков возвращаются в сохранение
	for name, uses := range sess.SkillUses {
		rec.SkillUsage[name] = uses
	}

	if victory {
		rec.Health = sess.PlayerHP
		if sess.StageID > rec.MaxClearedStage {
			rec.MaxClearedStage = sess.StageID
		}
		rec.CurrentStage = sess.StageID + 1

		if rewards.SkillDrop != "" {
			if err := e.skills.AcquireInto(rec, rewards.SkillDrop); err != nil &&
				!errors.Is(err, common.ErrSkillAlreadyOwned) {
				return 0, err
			}
		}
	} else {
		// После поражения игрок приходит в себя с 1 ОЗ
		rec.Health = 1
	}

	if err := e.repo.Save(ctx, rec); err != nil {
		return 0, err
	}
	return levels, nil
}

// rollSkillDrop бросает шанс выпадения карты навыка.
// База на этапе 1 — 0.0002, дальше растёт как stage^1.5 с потолком 1%;
// продвинутый режим удваивает итог. Пустая строка — не выпало.
func (e *Engine) rollSkillDrop(stageID int, advanced bool) string {
	rate := e.balance.DropRateBase
	if stageID > 1 {
		rate = math.Min(e.balance.DropRateCap, e.balance.DropRateBase*math.Pow(float64(stageID), 1.5))
	}
	if advanced {
		rate *= 2
	}

	if e.randFloat() >= rate {
		return ""
	}

	allSkills := e.catalog.Skills()
	if len(allSkills) == 0 {
		return ""
	}
	return allSkills[e.randIntN(len(allSkills))].Name
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
