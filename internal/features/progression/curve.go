// Package progression — curve.go содержит кривую опыта.
// Чистые функции без состояния: уровень всегда пересчитывается
// с нуля от суммарного опыта, чтобы исключить накопление рассинхрона.
package progression

import "math"

// NextThreshold возвращает порог опыта для перехода с уровня level
// на level+1: floor(100 * level^1.1).
func NextThreshold(level int) int64 {
	return int64(math.Floor(100 * math.Pow(float64(level), 1.1)))
}

// LevelInfo — результат пересчёта уровня от суммарного опыта.
type LevelInfo struct {
	Level     int   // Итоговый уровень (минимум 1)
	Remainder int64 // Опыт, накопленный внутри текущего уровня
	ExpToNext int64 // Порог до следующего уровня
}

// ExperienceToLevel пересчитывает уровень от суммарного опыта.
// Начинаем с уровня 1 и вычитаем пороги, пока остатка хватает.
// Функция идемпотентна: один и тот же totalExp всегда даёт один результат.
func ExperienceToLevel(totalExp int64) LevelInfo {
	if totalExp < 0 {
		totalExp = 0
	}

	level := 1
	remaining := totalExp
	threshold := NextThreshold(level)
	for remaining >= threshold {
		remaining -= threshold
		level++
		threshold = NextThreshold(level)
	}

	return LevelInfo{Level: level, Remainder: remaining, ExpToNext: threshold}
}
