// Package catalog — models.go описывает справочные данные игры.
// Записи загружаются один раз на старте и после этого не изменяются.
package catalog

// Monster — описание монстра из monsters.json.
type Monster struct {
	ID     string `json:"id"`     // Стабильный идентификатор ("slime", "ghoul", ...)
	Name   string `json:"name"`   // Отображаемое имя
	Rarity string `json:"rarity"` // Редкость: rare/epic/unique/legendary/mythic
	// Диапазоны характеристик: конкретные значения бросаются при поимке/слиянии.
	MinHP     int `json:"min_hp"`
	MaxHP     int `json:"max_hp"`
	MinAttack int `json:"min_attack"`
	MaxAttack int `json:"max_attack"`
}

// Skill — описание боевого навыка из skills.json.
type Skill struct {
	Name string `json:"name"`
	// Множитель урона бросается равномерно из [MinMult, MaxMult).
	MinMult float64 `json:"min_mult"`
	MaxMult float64 `json:"max_mult"`
	// Максимум использований; восстанавливается только предметами.
	MaxUses int `json:"max_uses"`
}

// Dungeon — описание подземелья из dungeons.json.
type Dungeon struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WordCount     int    `json:"word_count"`
	QuestionCount int    `json:"question_count"`
	RewardMin     int64  `json:"reward_min"`
	RewardMax     int64  `json:"reward_max"`
}

// Property — недвижимость из properties.json (покупка ради аренды).
type Property struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // Цена покупки
	Rent  int64  `json:"rent"`  // Аренда за один цикл
}
