package aco

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

// Solver - структура реализации муравьиного алгоритма.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ACO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, prob *knapsack.Problem, maxIterations int) (opt.Result, error) {
	startTime := time.Now()

	// Валидация входных данных
	if prob == nil {
		return opt.Result{}, fmt.Errorf("%w: задача не задана (nil)", knapsack.ErrInvalidProblem)
	}
	if err := opt.ValidateMaxIterations(maxIterations); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	n := prob.NItems()

	// Эвристическая привлекательность предмета: отношение ценность/вес,
	// нормированное на максимум (предметы нулевого веса получают максимум)
	eta := make([]float64, n)
	maxRatio := 0.0
	for i := 0; i < n; i++ {
		r := prob.Ratio(i)
		if !math.IsInf(r, 1) && r > maxRatio {
			maxRatio = r
		}
	}
	if maxRatio == 0 {
		maxRatio = 1
	}
	for i := 0; i < n; i++ {
		if math.IsInf(prob.Ratio(i), 1) {
			eta[i] = 1.0
			continue
		}
		eta[i] = prob.Ratio(i) / maxRatio
	}

	// Феромон на предмет
	tau := make([]float64, n)
	for i := range tau {
		tau[i] = s.Cfg.Tau0
	}

	// Нормировочная константа для отложения феромонов
	sumValues := 0.0
	for _, v := range prob.Values {
		sumValues += v
	}

	// Вспомогательные буферы
	sol := make([]int, n)           // текущее решение муравья
	candidates := make([]int, 0, n) // помещающиеся предметы
	weights := make([]float64, n)   // веса вероятностного выбора

	// Пустой рюкзак допустим всегда — стартовое лучшее решение
	bestSol := make([]int, n)
	bestValue := 0.0
	evals := 0

	iterBestSol := make([]int, n)

	alpha := s.Cfg.Alpha
	beta := s.Cfg.Beta
	rho := s.Cfg.Rho
	q0 := s.Cfg.Q0
	Q := s.Cfg.Q

	history := make([]float64, 0, maxIterations)

	for iter := 0; iter < maxIterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Solution:    bestSol,
				Value:       bestValue,
				History:     history,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(startTime),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		// Лучшее решение текущей итерации
		iterBestValue := -1.0

		// Муравьи пошли
		for a := 0; a < s.Cfg.Ants; a++ {
			candidates = constructSolution(
				prob, tau, eta,
				alpha, beta, q0,
				s.Rng,
				sol, candidates, weights,
			)

			value := prob.MustEvaluate(sol).Value
			evals++

			// Локальное лучшее за итерацию
			if value > iterBestValue {
				iterBestValue = value
				copy(iterBestSol, sol)
			}
			// Глобальное лучшее за всё время
			if value > bestValue {
				bestValue = value
				copy(bestSol, sol)
			}
		}

		// Испарение феромона
		ev := 1.0 - rho
		for i := range tau {
			tau[i] *= ev
			if tau[i] < 1e-12 {
				tau[i] = 1e-12
			}
		}

		// Добавление феромона по предметам лучшего муравья итерации,
		// пропорционально ценности его решения
		if sumValues > 0 && iterBestValue > 0 {
			dep := Q * iterBestValue / sumValues
			for i, bit := range iterBestSol {
				if bit == 1 {
					tau[i] += dep
				}
			}
		}

		history = append(history, bestValue)
	}

	return opt.Result{
		Solution:    bestSol,
		Value:       bestValue,
		History:     history,
		Evaluations: evals,
		Iterations:  maxIterations,
		Duration:    time.Since(startTime),
		Meta: map[string]any{
			"ants":  s.Cfg.Ants,
			"alpha": alpha,
			"beta":  beta,
			"rho":   rho,
			"q0":    q0,
			"Q":     Q,
			"tau0":  s.Cfg.Tau0,
		},
	}, nil
}

// constructSolution строит одно решение муравья: предметы добавляются,
// пока хоть один помещается в остаток вместимости. Выбор следующего
// предмета — жадный с вероятностью q0, иначе пропорционально
// tau[i]^alpha * eta[i]^beta. Возвращает буфер кандидатов для переиспользования.
func constructSolution(
	prob *knapsack.Problem,
	tau []float64,
	eta []float64,
	alpha float64,
	beta float64,
	q0 float64,
	rng *rand.Rand,
	outSol []int,
	candidates []int,
	weights []float64,
) []int {
	for i := range outSol {
		outSol[i] = 0
	}
	remaining := prob.Capacity

	for {
		// Предметы, ещё помещающиеся в рюкзак
		candidates = candidates[:0]
		for i, bit := range outSol {
			if bit == 0 && prob.Weights[i] <= remaining {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return candidates
		}

		// Подсчёт весов вероятностей выбора
		sumW := 0.0
		for k, j := range candidates {
			// Формула ACO
			w := fastPow(tau[j], alpha) * fastPow(eta[j], beta)
			weights[k] = w
			sumW += w
		}

		var chosenIdx int
		if rng.Float64() < q0 {
			// Жадный выбор (эксплуатация)
			chosenIdx = 0
			for k := 1; k < len(candidates); k++ {
				if weights[k] > weights[chosenIdx] {
					chosenIdx = k
				}
			}
		} else if sumW <= 0 {
			chosenIdx = rng.Intn(len(candidates))
		} else {
			// Стохастический выбор
			r := rng.Float64() * sumW
			acc := 0.0
			chosenIdx = len(candidates) - 1
			for k := range candidates {
				acc += weights[k]
				if r <= acc {
					chosenIdx = k
					break
				}
			}
		}

		item := candidates[chosenIdx]
		outSol[item] = 1
		remaining -= prob.Weights[item]
	}
}

// fastPow — оптимизация для частых степеней.
// Таким образом избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
