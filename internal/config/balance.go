// Package config — balance.go описывает настройки игрового баланса.
// Дефолты совпадают с формулами движка; YAML-файл позволяет геймдизайнеру
// подкручивать баланс без пересборки сервера.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance содержит подкручиваемые параметры игрового баланса.
type Balance struct {
	// Сон: сколько часов проходит и сколько энергии восстанавливается.
	SleepHours         int `yaml:"sleep_hours"`
	SleepEnergyRestore int `yaml:"sleep_energy_restore"`

	// Аренда: длина цикла в игровых днях.
	RentCycleDays int `yaml:"rent_cycle_days"`

	// Очков характеристик за каждый новый уровень.
	StatPointsPerLevel int `yaml:"stat_points_per_level"`

	// Вход в бой: стоимость в энергии приключений.
	BattleEnergyCost int `yaml:"battle_energy_cost"`

	// Дроп карты навыка: база на этап 1 и потолок.
	DropRateBase float64 `yaml:"drop_rate_base"`
	DropRateCap  float64 `yaml:"drop_rate_cap"`

	// Множитель наград (и дропа) в продвинутом режиме.
	AdvancedRewardMult float64 `yaml:"advanced_reward_mult"`

	// Доля наград при поражении (от базовой формулы победы).
	DefeatRewardRatio float64 `yaml:"defeat_reward_ratio"`

	// Шансы улучшения при слиянии по исходной редкости.
	FusionUpgradeChance map[string]float64 `yaml:"fusion_upgrade_chance"`
}

// DefaultBalance возвращает баланс «как в оригинале».
func DefaultBalance() *Balance {
	return &Balance{
		SleepHours:         8,
		SleepEnergyRestore: 5,
		RentCycleDays:      30,
		StatPointsPerLevel: 5,
		BattleEnergyCost:   1,
		DropRateBase:       0.0002,
		DropRateCap:        0.01,
		AdvancedRewardMult: 1.5,
		DefeatRewardRatio:  0.3,
		FusionUpgradeChance: map[string]float64{
			"rare":      0.30,
			"epic":      0.20,
			"unique":    0.10,
			"legendary": 0.30,
		},
	}
}

// LoadBalance читает YAML-файл баланса поверх дефолтов.
// Пустой путь — просто дефолты (файл необязателен).
func LoadBalance(path string) (*Balance, error) {
	b := DefaultBalance()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение файла баланса: %w", err)
	}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("разбор файла баланса: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("файл баланса %s: %w", path, err)
	}
	return b, nil
}

// Validate отсекает значения, ломающие инварианты движка.
func (b *Balance) Validate() error {
	if b.SleepHours <= 0 || b.SleepHours >= 24 {
		return fmt.Errorf("sleep_hours должен быть в диапазоне 1..23")
	}
	if b.SleepEnergyRestore < 0 {
		return fmt.Errorf("sleep_energy_restore не может быть отрицательным")
	}
	if b.RentCycleDays <= 0 {
		return fmt.Errorf("rent_cycle_days должен быть > 0")
	}
	if b.StatPointsPerLevel <= 0 {
		return fmt.Errorf("stat_points_per_level должен быть > 0")
	}
	if b.BattleEnergyCost < 0 {
		return fmt.Errorf("battle_energy_cost не может быть отрицательным")
	}
	if b.DropRateBase < 0 || b.DropRateCap < b.DropRateBase {
		return fmt.Errorf("некорректные drop_rate_base/drop_rate_cap")
	}
	if b.AdvancedRewardMult < 1 {
		return fmt.Errorf("advanced_reward_mult должен быть >= 1")
	}
	if b.DefeatRewardRatio < 0 || b.DefeatRewardRatio > 1 {
		return fmt.Errorf("defeat_reward_ratio должен быть в диапазоне 0..1")
	}
	for tier, p := range b.FusionUpgradeChance {
		if p < 0 || p > 1 {
			return fmt.Errorf("шанс слияния для %q вне диапазона 0..1", tier)
		}
	}
	return nil
}
