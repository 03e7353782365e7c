package ga

import "bioKnapsack/internal/opt"

func ToOptResult(bestSol []int, bestValue float64, history []float64, evals, iters int, meta map[string]any) opt.Result {
	solCopy := make([]int, len(bestSol))
	copy(solCopy, bestSol)
	histCopy := make([]float64, len(history))
	copy(histCopy, history)
	return opt.Result{
		Solution:    solCopy,
		Value:       bestValue,
		History:     histCopy,
		Evaluations: evals,
		Iterations:  iters,
		Meta:        meta,
	}
}
