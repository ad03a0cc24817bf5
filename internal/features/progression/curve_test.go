package progression

import "testing"

func TestNextThreshold(t *testing.T) {
	cases := []struct {
		level int
		want  int64
	}{
		{1, 100},
		{2, 214},
		{3, 334},
		{4, 459},
		{5, 587},
		{10, 1258},
		{50, 7393},
	}
	for _, tc := range cases {
		if got := NextThreshold(tc.level); got != tc.want {
			t.Errorf("NextThreshold(%d) = %d; ожидалось %d", tc.level, got, tc.want)
		}
	}
}

func TestExperienceToLevel(t *testing.T) {
	cases := []struct {
		name      string
		totalExp  int64
		wantLevel int
		wantRem   int64
		wantNext  int64
	}{
		{"ноль опыта", 0, 1, 0, 100},
		{"на единицу меньше порога", 99, 1, 99, 100},
		{"ровно порог", 100, 2, 0, 214},
		{"середина второго уровня", 200, 2, 100, 214},
		{"два порога подряд", 314, 3, 0, 334},
		{"пятый уровень", 1107, 5, 0, 587},
		{"отрицательный опыт не роняет", -50, 1, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := ExperienceToLevel(tc.totalExp)
			if info.Level != tc.wantLevel || info.Remainder != tc.wantRem || info.ExpToNext != tc.wantNext {
				t.Errorf("ExperienceToLevel(%d) = %+v; ожидалось level=%d rem=%d next=%d",
					tc.totalExp, info, tc.wantLevel, tc.wantRem, tc.wantNext)
			}
		})
	}
}

// Сумма пройденных порогов плюс остаток обязана давать исходный опыт:
// кривая не теряет и не выдумывает ни единицы опыта.
func TestExperienceToLevelRoundTrip(t *testing.T) {
	for exp := int64(0); exp <= 50000; exp += 113 {
		info := ExperienceToLevel(exp)

		var sum int64
		for l := 1; l < info.Level; l++ {
			sum += NextThreshold(l)
		}
		if sum+info.Remainder != exp {
			t.Fatalf("опыт %d: сумма порогов %d + остаток %d = %d",
				exp, sum, info.Remainder, sum+info.Remainder)
		}
	}
}

// Уровень пересчитывается с нуля, поэтому функция обязана быть
// монотонной: больше опыта никогда не даёт меньший уровень.
func TestExperienceToLevelMonotonic(t *testing.T) {
	prev := 1
	for exp := int64(0); exp <= 20000; exp += 37 {
		info := ExperienceToLevel(exp)
		if info.Level < prev {
			t.Fatalf("уровень упал с %d до %d на опыте %d", prev, info.Level, exp)
		}
		if info.Remainder < 0 || info.Remainder >= info.ExpToNext {
			t.Fatalf("остаток %d вне диапазона [0, %d) на опыте %d", info.Remainder, info.ExpToNext, exp)
		}
		prev = info.Level
	}
}
