package pso

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

// Solver - структура реализации алгоритма роя частиц
// в бинарном варианте с сигмоидной передаточной функцией.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// particle описывает одну частицу роя.
type particle struct {
	// pos — непрерывная позиция частицы
	pos []float64
	// vel — скорость частицы
	vel []float64

	// pBestPos — лучшая позиция частицы за всё время
	pBestPos []float64
	// pBestValue — ценность решения в pBestPos
	pBestValue float64

	// bitsScratch — буфер бинаризованного решения
	bitsScratch []int
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, prob *knapsack.Problem, maxIterations int) (opt.Result, error) {
	start := time.Now()

	// Валидация конфигурации
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

	// Инициализация частиц
	ps := make([]particle, s.Cfg.Particles)
	for i := range ps {
		ps[i] = particle{
			pos:         make([]float64, n),
			vel:         make([]float64, n),
			pBestPos:    make([]float64, n),
			pBestValue:  math.Inf(-1),
			bitsScratch: make([]int, n),
		}
	}

	posMin, posMax := s.Cfg.PosMin, s.Cfg.PosMax
	doPosClamp := posMin < posMax

	gBestPos := make([]float64, n)
	gBestBits := make([]int, n)
	gBestValue := math.Inf(-1)

	// Случайная инициализация позиций и скоростей частиц
	for i := range ps {
		for d := 0; d < n; d++ {
			// Инициализация позиции
			if doPosClamp {
				ps[i].pos[d] = posMin + s.Rng.Float64()*(posMax-posMin)
			} else {
				ps[i].pos[d] = s.Rng.Float64()
			}
			// Инициализация скорости
			if s.Cfg.VMax > 0 {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * s.Cfg.VMax
			} else {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * 0.1
			}
		}

		// Оценка начального положения частицы
		binarize(ps[i].pos, ps[i].bitsScratch, s.Rng)
		prob.Repair(ps[i].bitsScratch)
		value := prob.MustEvaluate(ps[i].bitsScratch).Value

		ps[i].pBestValue = value
		copy(ps[i].pBestPos, ps[i].pos)

		if value > gBestValue {
			gBestValue = value
			copy(gBestPos, ps[i].pos)
			copy(gBestBits, ps[i].bitsScratch)
		}
	}

	evals := s.Cfg.Particles

	w, c1, c2 := s.Cfg.W, s.Cfg.C1, s.Cfg.C2
	vMax := s.Cfg.VMax

	history := make([]float64, 0, maxIterations)

	// Основной цикл
	for iter := 0; iter < maxIterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Solution:    gBestBits,
				Value:       gBestValue,
				History:     history,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
				},
			}, err
		}

		for i := range ps {
			p := &ps[i]

			// Обновление скорости и позиции частицы
			for d := 0; d < n; d++ {
				r1 := s.Rng.Float64()
				r2 := s.Rng.Float64()

				v := w*p.vel[d] +
					c1*r1*(p.pBestPos[d]-p.pos[d]) +
					c2*r2*(gBestPos[d]-p.pos[d])

				// Ограничение скорости
				if vMax > 0 {
					if v > vMax {
						v = vMax
					} else if v < -vMax {
						v = -vMax
					}
				}
				p.vel[d] = v

				// Обновление позиции
				x := p.pos[d] + v
				if doPosClamp {
					if x < posMin {
						x = posMin
						p.vel[d] = 0
					} else if x > posMax {
						x = posMax
						p.vel[d] = 0
					}
				}
				p.pos[d] = x
			}

			// Бинаризация, ремонт и оценка нового положения
			binarize(p.pos, p.bitsScratch, s.Rng)
			prob.Repair(p.bitsScratch)
			value := prob.MustEvaluate(p.bitsScratch).Value
			evals++

			// Обновление личного лучшего решения (строгое улучшение)
			if value > p.pBestValue {
				p.pBestValue = value
				copy(p.pBestPos, p.pos)
			}

			// Обновление глобального лучшего решения
			if value > gBestValue {
				gBestValue = value
				copy(gBestPos, p.pos)
				copy(gBestBits, p.bitsScratch)
			}
		}

		history = append(history, gBestValue)
	}

	return opt.Result{
		Solution:    gBestBits,
		Value:       gBestValue,
		History:     history,
		Evaluations: evals,
		Iterations:  maxIterations,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"particles": s.Cfg.Particles,
			"w":         w,
			"c1":        c1,
			"c2":        c2,
			"vmax":      vMax,
			"pos_min":   posMin,
			"pos_max":   posMax,
		},
	}, nil
}

// binarize строит бинарное решение из непрерывной позиции:
// бит d равен 1, если равномерная случайная величина меньше sigmoid(pos[d]).
// Бинарное решение выводится заново при каждой оценке; эволюционирует
// только непрерывное состояние.
func binarize(pos []float64, outBits []int, rng *rand.Rand) {
	for d, x := range pos {
		if rng.Float64() < sigmoid(x) {
			outBits[d] = 1
		} else {
			outBits[d] = 0
		}
	}
}

// sigmoid — стандартная логистическая передаточная функция.
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
