package knapsack

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidProblem возвращается при некорректном описании задачи о рюкзаке.
var ErrInvalidProblem = errors.New("некорректное описание задачи")

// Problem — неизменяемое описание задачи о рюкзаке 0/1.
// После создания экземпляр доступен только для чтения и может разделяться
// между алгоритмами и между запусками.
//
// Вырожденные случаи допустимы и ошибкой не считаются:
// нулевая вместимость (оптимум — пустой рюкзак) и нулевые веса
// (такие предметы помещаются всегда).
type Problem struct {
	// Weights и Values имеют одинаковую длину; предмет i имеет
	// вес Weights[i] и ценность Values[i].
	Weights []float64
	Values  []float64

	Capacity float64

	// ratio[i] = Values[i]/Weights[i]; для нулевого веса — +Inf.
	// Используется жадным ремонтом и эвристикой ACO.
	ratio []float64
}

// NewProblem возвращает новую задачу с валидацией входных данных.
// Срезы копируются, чтобы гарантировать неизменяемость.
func NewProblem(weights, values []float64, capacity float64) (*Problem, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: список предметов пуст", ErrInvalidProblem)
	}
	if len(weights) != len(values) {
		return nil, fmt.Errorf(
			"%w: длины весов и ценностей должны совпадать (получено %d и %d)",
			ErrInvalidProblem, len(weights), len(values),
		)
	}
	if capacity < 0 {
		return nil, fmt.Errorf(
			"%w: вместимость должна быть >= 0 (получено %f)",
			ErrInvalidProblem, capacity,
		)
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf(
				"%w: weights[%d] должно быть >= 0 (получено %f)",
				ErrInvalidProblem, i, w,
			)
		}
	}
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf(
				"%w: values[%d] должно быть >= 0 (получено %f)",
				ErrInvalidProblem, i, v,
			)
		}
	}

	p := &Problem{
		Weights:  append([]float64(nil), weights...),
		Values:   append([]float64(nil), values...),
		Capacity: capacity,
		ratio:    make([]float64, len(weights)),
	}
	for i := range p.Weights {
		if p.Weights[i] == 0 {
			p.ratio[i] = math.Inf(1)
			continue
		}
		p.ratio[i] = p.Values[i] / p.Weights[i]
	}
	return p, nil
}

// NItems возвращает количество предметов.
func (p *Problem) NItems() int {
	return len(p.Weights)
}

// Ratio возвращает отношение ценность/вес предмета i (+Inf для нулевого веса).
func (p *Problem) Ratio(i int) float64 {
	return p.ratio[i]
}

// Evaluation — результат оценки решения.
type Evaluation struct {
	Weight   float64
	Value    float64
	Feasible bool
}

// Evaluate оценивает бинарное решение: суммарный вес, суммарную ценность
// и признак допустимости (вес не превышает вместимость).
// Чистая функция без побочных эффектов, O(n).
func (p *Problem) Evaluate(sol []int) (Evaluation, error) {
	if p == nil {
		return Evaluation{}, fmt.Errorf("%w: задача не задана (nil)", ErrInvalidProblem)
	}
	if err := ValidateSolution(sol, p.NItems()); err != nil {
		return Evaluation{}, err
	}

	var weight, value float64
	for i, bit := range sol {
		if bit == 1 {
			weight += p.Weights[i]
			value += p.Values[i]
		}
	}
	return Evaluation{
		Weight:   weight,
		Value:    value,
		Feasible: weight <= p.Capacity,
	}, nil
}

// MustEvaluate — вариант Evaluate для внутренних циклов алгоритмов,
// где решение по построению корректно.
func (p *Problem) MustEvaluate(sol []int) Evaluation {
	ev, err := p.Evaluate(sol)
	if err != nil {
		panic(err)
	}
	return ev
}

// RandomProblem генерирует случайную задачу: веса и ценности равномерны
// в [1, maxWeight) и [1, maxValue), вместимость — capacityRatio от суммы весов.
// Используется стендом для сравнения алгоритмов.
func RandomProblem(nItems int, maxWeight, maxValue, capacityRatio float64, rng *rand.Rand) *Problem {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if nItems <= 0 || maxWeight < 1 || maxValue < 1 || capacityRatio <= 0 {
		panic("invalid problem bounds")
	}
	weights := make([]float64, nItems)
	values := make([]float64, nItems)
	totalWeight := 0.0
	for i := 0; i < nItems; i++ {
		weights[i] = 1 + rng.Float64()*(maxWeight-1)
		values[i] = 1 + rng.Float64()*(maxValue-1)
		totalWeight += weights[i]
	}
	p, err := NewProblem(weights, values, totalWeight*capacityRatio)
	if err != nil {
		panic(err)
	}
	return p
}
