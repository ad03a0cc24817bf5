// Package collection управляет коллекцией монстров и слиянием.
// models.go описывает лестницу редкостей и таблицы весов.
package collection

// Rarity — редкость монстра. Лестница по возрастанию:
// rare → epic → unique → legendary → mythic.
type Rarity string

const (
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityUnique    Rarity = "unique"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// RarityLadder — все редкости по возрастанию. Порядок важен:
// индекс задаёт направление улучшения при слиянии.
var RarityLadder = []Rarity{RarityRare, RarityEpic, RarityUnique, RarityLegendary, RarityMythic}

// Next возвращает следующую редкость лестницы.
// Для мифической возвращает её же и false — выше некуда.
func (r Rarity) Next() (Rarity, bool) {
	for i, cur := range RarityLadder {
		if cur == r && i+1 < len(RarityLadder) {
			return RarityLadder[i+1], true
		}
	}
	return r, false
}

// Valid сообщает, входит ли редкость в лестницу.
func (r Rarity) Valid() bool {
	for _, cur := range RarityLadder {
		if cur == r {
			return true
		}
	}
	return false
}

// rarityWeight — вес появления и шанс поимки одной редкости.
type rarityWeight struct {
	Rarity  Rarity
	Spawn   float64 // Вероятность появления при генерации встречи
	Capture float64 // Вероятность поимки после победы
}

// rarityWeights — фиксированная таблица весов. Суммарный Spawn равен 1.0;
// чем выше редкость, тем реже встреча и тяжелее поимка.
var rarityWeights = []rarityWeight{
	{RarityRare, 0.700, 0.500},
	{RarityEpic, 0.200, 0.300},
	{RarityUnique, 0.070, 0.100},
	{RarityLegendary, 0.029, 0.010},
	{RarityMythic, 0.001, 0.001},
}

// CaptureChance возвращает шанс поимки монстра данной редкости.
// Неизвестная редкость ловится как самая частая.
func CaptureChance(r Rarity) float64 {
	for _, w := range rarityWeights {
		if w.Rarity == r {
			return w.Capture
		}
	}
	return rarityWeights[0].Capture
}

// FusionResult — итог слияния трёх монстров.
type FusionResult struct {
	Upgraded     bool   `json:"upgraded"`      // Сработал ли шанс улучшения
	BecameMythic bool   `json:"became_mythic"` // Отдельный флаг для праздничного экрана
	Rarity       Rarity `json:"rarity"`        // Итоговая редкость
	MonsterID    string `json:"monster_id"`    // Какой монстр получился
	Name         string `json:"name"`
	HP           int    `json:"hp"`
	Attack       int    `json:"attack"`
}
