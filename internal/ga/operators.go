package ga

import "math/rand"

// tournamentSelect реализует турнирный отбор.
// Возвращается индекс особи с наилучшим значением fitness (максимальная ценность).
func tournamentSelect(scores []float64, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(scores))
	bestScore := scores[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(scores))
		if scores[cand] > bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}

// onePointCrossover реализует одноточечный кроссовер бинарных хромосом.
// Точка разреза выбирается равномерно из [1, n-1]; при n < 2 потомки
// копируют родителей.
func onePointCrossover(p1, p2, c1, c2 []int, rng *rand.Rand) {
	n := len(p1)
	if n < 2 {
		copy(c1, p1)
		copy(c2, p2)
		return
	}
	point := 1 + rng.Intn(n-1)
	copy(c1[:point], p1[:point])
	copy(c1[point:], p2[point:])
	copy(c2[:point], p2[:point])
	copy(c2[point:], p1[point:])
}

// mutateFlip реализует побитовую мутацию: каждый бит инвертируется
// независимо с вероятностью rate.
func mutateFlip(sol []int, rate float64, rng *rand.Rand) {
	for i := range sol {
		if rng.Float64() < rate {
			sol[i] = 1 - sol[i]
		}
	}
}
