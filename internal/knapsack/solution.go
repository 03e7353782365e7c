package knapsack

import (
	"fmt"
	"math/rand"
)

// ValidateSolution проверяет, что решение имеет длину n и состоит из битов 0/1.
func ValidateSolution(sol []int, n int) error {
	if len(sol) != n {
		return fmt.Errorf(
			"%w: длина решения должна быть %d (получено %d)",
			ErrInvalidProblem, n, len(sol),
		)
	}
	for i, bit := range sol {
		if bit != 0 && bit != 1 {
			return fmt.Errorf(
				"%w: sol[%d]=%d не является битом",
				ErrInvalidProblem, i, bit,
			)
		}
	}
	return nil
}

// RandomSolution заполняет буфер равномерно случайными битами.
// Результат не обязан быть допустимым; вызывающий обязан выполнить Repair.
func RandomSolution(sol []int, rng *rand.Rand) {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	for i := range sol {
		sol[i] = rng.Intn(2)
	}
}

// Repair приводит решение к допустимому на месте: пока суммарный вес
// превышает вместимость, удаляется включённый предмет с наименьшим
// отношением ценность/вес (при равенстве — с наименьшим индексом).
// Допустимое решение не изменяется.
func (p *Problem) Repair(sol []int) {
	weight := 0.0
	for i, bit := range sol {
		if bit == 1 {
			weight += p.Weights[i]
		}
	}

	for weight > p.Capacity {
		worst := -1
		for i, bit := range sol {
			if bit != 1 {
				continue
			}
			if worst == -1 || p.ratio[i] < p.ratio[worst] {
				worst = i
			}
		}
		if worst == -1 {
			break
		}
		sol[worst] = 0
		weight -= p.Weights[worst]
	}
}
