package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

// Solver — реализация генетического алгоритма для задачи о рюкзаке 0/1.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	// Проверка корректности входных данных и конфигурации
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
	popSize := s.Cfg.Population

	// Вспомогательная анонимная функция для создания двумерного массива хромосом
	makePop := func() [][]int {
		backing := make([]int, popSize*n)
		pop := make([][]int, popSize)
		for i := 0; i < popSize; i++ {
			pop[i] = backing[i*n : (i+1)*n]
		}
		return pop
	}

	// Две популяции: текущая (A) и следующая (B)
	popA := makePop()
	popB := makePop()
	scoresA := make([]float64, popSize)
	scoresB := make([]float64, popSize)

	// Инициализация начальной популяции: случайные хромосомы с ремонтом
	for i := 0; i < popSize; i++ {
		knapsack.RandomSolution(popA[i], s.Rng)
		prob.Repair(popA[i])
		scoresA[i] = prob.MustEvaluate(popA[i]).Value
	}
	evaluations := popSize

	// Поиск лучшего решения в начальной популяции
	// (при равенстве ценностей сохраняется найденное раньше)
	bestSol := make([]int, n)
	bestValue := scoresA[0]
	copy(bestSol, popA[0])
	for i := 1; i < popSize; i++ {
		if scoresA[i] > bestValue {
			bestValue = scoresA[i]
			copy(bestSol, popA[i])
		}
	}

	// Временный буфер для второго потомка,
	// если в популяции остаётся нечётное число мест
	scratchChild := make([]int, n)

	// Индексы для сортировки популяции по приспособленности
	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	history := make([]float64, 0, maxIterations)

	for gen := 0; gen < maxIterations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := ToOptResult(
				bestSol, bestValue, history,
				evaluations, gen,
				map[string]any{"stopped": "context"},
			)
			res.Duration = time.Since(start)
			return res, err
		}

		// Сортировка индексов по убыванию приспособленности
		sort.Slice(idxs, func(i, j int) bool {
			return scoresA[idxs[i]] > scoresA[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			copy(popB[write], popA[src])
			scoresB[write] = scoresA[src]
			write++
		}

		// Генерация остальных особей нового поколения
		for write < popSize {
			// Турнирный отбор
			p1 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			p2 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			if popSize > 1 {
				for p2 == p1 {
					p2 = tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
				}
			}

			child1 := popB[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = popB[write+1]
			}

			// Кроссовер
			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				onePointCrossover(popA[p1], popA[p2], child1, child2, s.Rng)
			} else {
				copy(child1, popA[p1])
				if hasSecond {
					copy(child2, popA[p2])
				}
			}

			// Мутация
			mutateFlip(child1, s.Cfg.MutationRate, s.Rng)
			if hasSecond {
				mutateFlip(child2, s.Cfg.MutationRate, s.Rng)
			}

			// Ремонт и оценка первого потомка
			prob.Repair(child1)
			v1 := prob.MustEvaluate(child1).Value
			scoresB[write] = v1
			evaluations++
			if v1 > bestValue {
				bestValue = v1
				copy(bestSol, child1)
			}
			write++

			// Ремонт и оценка второго потомка
			if hasSecond {
				prob.Repair(child2)
				v2 := prob.MustEvaluate(child2).Value
				scoresB[write] = v2
				evaluations++
				if v2 > bestValue {
					bestValue = v2
					copy(bestSol, child2)
				}
				write++
			}
		}

		// Смена поколений
		popA, popB = popB, popA
		scoresA, scoresB = scoresB, scoresA

		history = append(history, bestValue)
	}

	res := ToOptResult(
		bestSol, bestValue, history,
		evaluations, maxIterations,
		map[string]any{
			"population": s.Cfg.Population,
			"elite":      s.Cfg.Elite,
			"tournament": s.Cfg.TournamentSize,
		},
	)
	res.Duration = time.Since(start)
	return res, nil
}
