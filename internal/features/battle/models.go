// Package battle реализует пошаговый боевой движок.
// models.go описывает боевую сессию — эфемерное состояние одного боя.
// Сессия живёт только в памяти процесса: падение сервера теряет бой,
// сохранение игрока при этом не страдает.
package battle

import (
	"sync"
	"time"
)

// Session — состояние одного боя, ключ — BattleID.
// Боевые характеристики игрока снимаются снимком на старте боя;
// изменения сохранения во время боя на сессию не влияют.
type Session struct {
	// mu защищает чтение-изменение-запись хода: двойная отправка
	// одного и того же удара не должна засчитать ход дважды.
	mu sync.Mutex

	ID       string
	PlayerID string
	StageID  int
	Advanced bool

	// Снимок игрока
	PlayerHP     int
	PlayerMaxHP  int
	PlayerAttack int
	Skills       []string       // Экипированный набор на момент старта
	SkillUses    map[string]int // Оставшиеся использования по навыкам

	// Противник
	EnemyHP     int
	EnemyMaxHP  int
	EnemyAttack int

	TurnCount int
	Log       []string // Только добавление, обе половины обмена ударами

	CreatedAt time.Time
}

// hasSkill сообщает, входит ли навык в снимок набора.
func (s *Session) hasSkill(name string) bool {
	for _, sk := range s.Skills {
		if sk == name {
			return true
		}
	}
	return false
}

// Rewards — награды за завершённый бой.
type Rewards struct {
	Exp   int64 `json:"exp"`
	Money int64 `json:"money"`
	// Выпавшая карта навыка; пусто — не повезло.
	SkillDrop string `json:"skill_drop,omitempty"`
}

// TurnResult — итог одного обращения к useSkill: обе половины обмена
// ударами плюс терминальный исход, если бой закончился.
type TurnResult struct {
	BattleID string   `json:"battle_id"`
	Victory  bool     `json:"victory"`
	Defeat   bool     `json:"defeat"`
	Rewards  *Rewards `json:"rewards,omitempty"`

	PlayerHP  int      `json:"player_hp"`
	EnemyHP   int      `json:"enemy_hp"`
	TurnCount int      `json:"turn_count"`
	Log       []string `json:"log"`

	LevelsGained int `json:"levels_gained,omitempty"`
}
