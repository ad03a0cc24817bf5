// Package player управляет сохранениями игроков.
// models.go описывает документ сохранения — ровно один JSON-файл на игрока.
package player

import (
	"time"

	"lifesim/internal/common"
)

// Stats — пять распределяемых характеристик. Все неотрицательные.
type Stats struct {
	Strength     int `json:"strength"`     // Сила: влияет на боевую атаку
	Intelligence int `json:"intelligence"` // Интеллект
	Charm        int `json:"charm"`        // Обаяние
	Vitality     int `json:"vitality"`     // Живучесть
	Luck         int `json:"luck"`         // Удача
}

// StatNames — допустимые имена характеристик для распределения очков.
var StatNames = []string{"strength", "intelligence", "charm", "vitality", "luck"}

// OwnedProperty — купленная недвижимость. Аренда начисляется во сне.
type OwnedProperty struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`         // Цена на момент покупки
	Rent        int64  `json:"rent"`          // Аренда за один цикл
	LastRentDay int    `json:"last_rent_day"` // Игровой день последней выплаты
}

// CompendiumEntry — пойманный монстр в коллекции.
// Уникален по MonsterID: повторная поимка инкрементирует счётчики.
type CompendiumEntry struct {
	MonsterID        string    `json:"monster_id"`
	Name             string    `json:"name"`
	Rarity           string    `json:"rarity"`
	HP               int       `json:"hp"`     // Брошенные при поимке характеристики
	Attack           int       `json:"attack"` //
	TimesEncountered int       `json:"times_encountered"`
	TimesDefeated    int       `json:"times_defeated"`
	CapturedAt       time.Time `json:"captured_at"`
}

// Record — полное состояние игрока. Пишется и читается целиком:
// никаких частичных обновлений, последняя запись побеждает.
type Record struct {
	ID string `json:"id"`

	// Прогрессия
	Level      int   `json:"level"`
	Exp        int64 `json:"exp"` // Накопленный суммарный опыт
	StatPoints int   `json:"stat_points"`
	Stats      Stats `json:"stats"`

	// Жизненные показатели
	Health             int `json:"health"`
	MaxHealth          int `json:"max_health"`
	Energy             int `json:"energy"`
	MaxEnergy          int `json:"max_energy"`
	AdventureEnergy    int `json:"adventure_energy"`
	MaxAdventureEnergy int `json:"max_adventure_energy"`

	// Экономика
	Money      int64           `json:"money"`
	Salary     int64           `json:"salary"`
	Properties []OwnedProperty `json:"properties"`

	// Игровое время
	Day  int `json:"day"`  // >= 1
	Hour int `json:"hour"` // [0, 24)

	// Работа
	JobName  string `json:"job_name"`
	JobLevel int    `json:"job_level"`
	JobExp   int64  `json:"job_exp"`

	// Коллекция
	Compendium []CompendiumEntry `json:"compendium"`

	// Навыки: до 4 экипированных, остальные в запасе.
	// Имя навыка встречается максимум в одном из двух списков.
	CurrentSkills  []string       `json:"current_skills"`
	AcquiredSkills []string       `json:"acquired_skills"`
	SkillUsage     map[string]int `json:"skill_usage_count"` // имя → оставшиеся использования

	// Инвентари: id предмета → количество
	Inventory  map[string]int `json:"inventory"`
	SkillItems map[string]int `json:"skill_items"`

	// Приключение
	CurrentStage    int  `json:"current_stage"`
	MaxClearedStage int  `json:"max_cleared_stage"`
	AdvancedMode    bool `json:"advanced_mode"` // Продвинутая сложность: враги x2, награды x1.5

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Стартовые значения нового игрока.
const (
	defaultMaxHealth       = 100
	defaultMaxEnergy       = 10
	defaultMaxAdvEnergy    = 20
	defaultStartMoney      = 1000
	defaultStartStatValue  = 5
	defaultStartHour       = 8
	defaultSkillFallbackUC = 10 // Использования навыка, если каталог молчит
)

// NewRecord создаёт сохранение нового игрока с фиксированными дефолтами.
func NewRecord(id string, now time.Time) *Record {
	r := &Record{
		ID:    id,
		Level: 1,
		Stats: Stats{
			Strength:     defaultStartStatValue,
			Intelligence: defaultStartStatValue,
			Charm:        defaultStartStatValue,
			Vitality:     defaultStartStatValue,
			Luck:         defaultStartStatValue,
		},
		Health:             defaultMaxHealth,
		MaxHealth:          defaultMaxHealth,
		Energy:             defaultMaxEnergy,
		MaxEnergy:          defaultMaxEnergy,
		AdventureEnergy:    defaultMaxAdvEnergy,
		MaxAdventureEnergy: defaultMaxAdvEnergy,
		Money:              defaultStartMoney,
		Day:                1,
		Hour:               defaultStartHour,
		CurrentStage:       1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	Normalize(r)
	return r
}

// Normalize приводит документ к полностью заполненному виду.
// Вызывается ОДИН раз при чтении из хранилища: старые сохранения без новых
// полей получают дефолты здесь, а не россыпью «value || default» по коду.
func Normalize(r *Record) {
	if r.Level < 1 {
		r.Level = 1
	}
	if r.Day < 1 {
		r.Day = 1
	}
	if r.Hour < 0 || r.Hour >= 24 {
		r.Hour = ((r.Hour % 24) + 24) % 24
	}
	if r.MaxHealth <= 0 {
		r.MaxHealth = defaultMaxHealth
	}
	if r.Health < 0 {
		r.Health = 0
	}
	if r.Health > r.MaxHealth {
		r.Health = r.MaxHealth
	}
	if r.MaxEnergy <= 0 {
		r.MaxEnergy = defaultMaxEnergy
	}
	if r.MaxAdventureEnergy <= 0 {
		r.MaxAdventureEnergy = defaultMaxAdvEnergy
	}
	r.Energy = common.ClampInt(r.Energy, 0, r.MaxEnergy)
	r.AdventureEnergy = common.ClampInt(r.AdventureEnergy, 0, r.MaxAdventureEnergy)
	if r.Money < 0 {
		r.Money = 0
	}
	if r.StatPoints < 0 {
		r.StatPoints = 0
	}
	if r.CurrentStage < 1 {
		r.CurrentStage = 1
	}
	if r.SkillUsage == nil {
		r.SkillUsage = make(map[string]int)
	}
	if r.Inventory == nil {
		r.Inventory = make(map[string]int)
	}
	if r.SkillItems == nil {
		r.SkillItems = make(map[string]int)
	}
	if r.CurrentSkills == nil {
		r.CurrentSkills = []string{}
	}
	if r.AcquiredSkills == nil {
		r.AcquiredSkills = []string{}
	}
	if r.Properties == nil {
		r.Properties = []OwnedProperty{}
	}
	if r.Compendium == nil {
		r.Compendium = []CompendiumEntry{}
	}
}

// CombatAttack — боевая атака игрока, выводится из силы.
func (r *Record) CombatAttack() int {
	return 10 + 2*r.Stats.Strength
}

// SpendMoney списывает деньги. Всё или ничего: при нехватке баланс не трогаем.
func (r *Record) SpendMoney(amount int64) error {
	if amount <= 0 {
		return nil
	}
	if r.Money < amount {
		return common.ErrNotEnoughMoney
	}
	r.Money -= amount
	return nil
}

// AddMoney начисляет деньги.
func (r *Record) AddMoney(amount int64) {
	if amount > 0 {
		r.Money += amount
	}
}

// SpendAdventureEnergy списывает энергию приключений (вход в бой).
func (r *Record) SpendAdventureEnergy(cost int) error {
	if cost <= 0 {
		return nil
	}
	if r.AdventureEnergy < cost {
		return common.ErrNotEnoughEnergy
	}
	r.AdventureEnergy -= cost
	return nil
}

// HasEquipped сообщает, экипирован ли навык.
func (r *Record) HasEquipped(name string) bool {
	for _, s := range r.CurrentSkills {
		if s == name {
			return true
		}
	}
	return false
}

// HasInPool сообщает, лежит ли навык в запасе.
func (r *Record) HasInPool(name string) bool {
	for _, s := range r.AcquiredSkills {
		if s == name {
			return true
		}
	}
	return false
}

// FindCompendium возвращает запись коллекции по id монстра.
func (r *Record) FindCompendium(monsterID string) *CompendiumEntry {
	for i := range r.Compendium {
		if r.Compendium[i].MonsterID == monsterID {
			return &r.Compendium[i]
		}
	}
	return nil
}
