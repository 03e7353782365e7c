package cs

import (
	"math"
	"math/rand"
)

// levySigma вычисляет масштаб числителя для алгоритма Мантеньи:
// шаг Леви получается как u/|v|^(1/beta), где u ~ N(0, sigma^2), v ~ N(0, 1).
func levySigma(beta float64) float64 {
	num := math.Gamma(1+beta) * math.Sin(math.Pi*beta/2)
	den := math.Gamma((1+beta)/2) * beta * math.Pow(2, (beta-1)/2)
	return math.Pow(num/den, 1/beta)
}

// levyStep возвращает один шаг полёта Леви (тяжёлые хвосты дают
// редкие большие скачки).
func levyStep(beta, sigma float64, rng *rand.Rand) float64 {
	u := rng.NormFloat64() * sigma
	v := rng.NormFloat64()
	return u / math.Pow(math.Abs(v), 1/beta)
}
