package cs

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

// Solver - структура реализации алгоритма кукушки.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый CS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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
	start := time.Now()

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
	nNests := s.Cfg.Nests

	// Гнёзда — битовые векторы с общим backing-массивом
	backing := make([]int, nNests*n)
	nests := make([][]int, nNests)
	for i := 0; i < nNests; i++ {
		nests[i] = backing[i*n : (i+1)*n]
	}
	values := make([]float64, nNests)

	// Инициализация гнёзд случайными решениями с ремонтом
	for i := 0; i < nNests; i++ {
		knapsack.RandomSolution(nests[i], s.Rng)
		prob.Repair(nests[i])
		values[i] = prob.MustEvaluate(nests[i]).Value
	}
	evals := nNests

	// Поиск лучшего гнезда в начальной популяции
	bestSol := make([]int, n)
	bestValue := values[0]
	copy(bestSol, nests[0])
	for i := 1; i < nNests; i++ {
		if values[i] > bestValue {
			bestValue = values[i]
			copy(bestSol, nests[i])
		}
	}

	// Масштаб шага Леви по алгоритму Мантеньи
	sigma := levySigma(s.Cfg.Beta)

	candidate := make([]int, n)

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
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		// Новый кандидат для каждого гнезда через полёт Леви:
		// бит инвертируется с вероятностью, равной модулю шага
		for i := 0; i < nNests; i++ {
			copy(candidate, nests[i])
			for d := 0; d < n; d++ {
				step := levyStep(s.Cfg.Beta, sigma, s.Rng)
				if s.Rng.Float64() < math.Abs(step) {
					candidate[d] = 1 - candidate[d]
				}
			}
			prob.Repair(candidate)
			value := prob.MustEvaluate(candidate).Value
			evals++

			// Замена гнезда, если кандидат не хуже
			if value >= values[i] {
				copy(nests[i], candidate)
				values[i] = value
			}
			if value > bestValue {
				bestValue = value
				copy(bestSol, candidate)
			}
		}

		// Покидание гнезда: с вероятностью pa гнездо заменяется
		// свежим случайным решением
		for i := 0; i < nNests; i++ {
			if s.Rng.Float64() >= s.Cfg.Pa {
				continue
			}
			knapsack.RandomSolution(nests[i], s.Rng)
			prob.Repair(nests[i])
			values[i] = prob.MustEvaluate(nests[i]).Value
			evals++

			if values[i] > bestValue {
				bestValue = values[i]
				copy(bestSol, nests[i])
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
		Duration:    time.Since(start),
		Meta: map[string]any{
			"nests": nNests,
			"pa":    s.Cfg.Pa,
			"beta":  s.Cfg.Beta,
		},
	}, nil
}
