package opt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bioKnapsack/internal/knapsack"
)

// ErrInvalidConfig возвращается при параметре алгоритма вне допустимого
// диапазона, в том числе при maxIterations <= 0.
var ErrInvalidConfig = errors.New("некорректная конфигурация алгоритма")

// Optimizer — общий контракт всех четырёх биоинспирированных алгоритмов.
// Solve выполняет ровно maxIterations итераций (жёсткая остановка) и
// возвращает лучшее найденное допустимое решение.
type Optimizer interface {
	Solve(ctx context.Context, prob *knapsack.Problem, maxIterations int) (Result, error)
}

// Result — единый результат запуска алгоритма.
type Result struct {
	// Solution — лучшее найденное решение; всегда допустимо.
	Solution []int
	// Value — ценность Solution по Problem.Evaluate.
	Value float64
	// History[k] — лучшая допустимая ценность, найденная на итерациях [0..k].
	// Длина равна числу фактически выполненных итераций; последовательность
	// не убывает.
	History []float64

	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// ValidateMaxIterations проверяет бюджет итераций в начале Solve.
func ValidateMaxIterations(maxIterations int) error {
	if maxIterations <= 0 {
		return fmt.Errorf(
			"%w: maxIterations должно быть > 0 (получено %d)",
			ErrInvalidConfig, maxIterations,
		)
	}
	return nil
}
