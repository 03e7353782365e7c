package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Items         int
	CapacityRatio float64
	InstanceSeed  int64
}

type Record struct {
	Algo  string
	Items int
	Runs  int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ValueBest float64
	ValueMean float64
	ValueStd  float64

	// SuccessRate — доля запусков, вернувших допустимое решение.
	SuccessRate float64

	// AvgHistory — средняя по запускам кривая сходимости
	// (лучшая ценность по итерациям).
	AvgHistory []float64
}

type Runner struct {
	Runs          int
	Iterations    int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	prob := knapsack.RandomProblem(c.Items, 100, 100, c.CapacityRatio, instRng)

	values := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	histSum := make([]float64, r.Iterations)
	feasible := 0

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, prob, r.Iterations)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("запуск %d: отменён или истёк таймаут: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("запуск %d: ошибка алгоритма: %w", i, err)
		}
		ev, err := prob.Evaluate(res.Solution)
		if err != nil {
			return Record{}, fmt.Errorf("запуск %d: некорректное решение: %w", i, err)
		}
		if ev.Value != res.Value {
			return Record{}, fmt.Errorf(
				"запуск %d: заявленная ценность %f не совпадает с пересчитанной %f",
				i, res.Value, ev.Value,
			)
		}
		if len(res.History) != r.Iterations {
			return Record{}, fmt.Errorf(
				"запуск %d: длина истории %d вместо %d",
				i, len(res.History), r.Iterations,
			)
		}
		if ev.Feasible {
			feasible++
		}

		values = append(values, res.Value)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		for k, v := range res.History {
			histSum[k] += v
		}
	}

	avgHist := make([]float64, r.Iterations)
	for k := range histSum {
		avgHist[k] = histSum[k] / float64(r.Runs)
	}

	vStats := CalcMaxStats(values)
	tStats := CalcMinStats(timesMs)

	return Record{
		Algo:  algo.Name,
		Items: c.Items,
		Runs:  r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ValueBest: vStats.Best,
		ValueMean: vStats.Mean,
		ValueStd:  vStats.Std,

		SuccessRate: float64(feasible) / float64(r.Runs),

		AvgHistory: avgHist,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "items", "runs",
		"value_best", "value_mean", "value_std",
		"success_rate",
		"time_best_ms", "time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Items),
			itoa(r.Runs),

			ftoa(r.ValueBest),
			ftoa(r.ValueMean),
			ftoa(r.ValueStd),

			ftoa(r.SuccessRate),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
