package bench

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bioKnapsack/internal/ga"
	"bioKnapsack/internal/opt"
)

func gaAlgorithm() Algorithm {
	cfg := ga.Config{
		Population:     20,
		Elite:          2,
		TournamentSize: 3,
		CrossoverRate:  0.9,
		MutationRate:   0.1,
	}
	return Algorithm{
		Name: "GA",
		Factory: func(seed int64) opt.Optimizer {
			solver, err := ga.New(cfg, rand.New(rand.NewSource(seed)))
			if err != nil {
				panic(err)
			}
			return solver
		},
	}
}

func TestRunCase(t *testing.T) {
	r := Runner{Runs: 3, Iterations: 20, BaseSeed: 100}
	c := Case{Items: 15, CapacityRatio: 0.5, InstanceSeed: 777}

	rec, err := r.RunCase(context.Background(), c, gaAlgorithm())
	require.NoError(t, err)

	require.Equal(t, "GA", rec.Algo)
	require.Equal(t, 15, rec.Items)
	require.Equal(t, 3, rec.Runs)
	require.Equal(t, 1.0, rec.SuccessRate)
	require.GreaterOrEqual(t, rec.ValueBest, rec.ValueMean)
	require.Greater(t, rec.ValueMean, 0.0)

	// Средняя кривая сходимости не убывает
	require.Len(t, rec.AvgHistory, 20)
	for k := 1; k < len(rec.AvgHistory); k++ {
		require.GreaterOrEqual(t, rec.AvgHistory[k], rec.AvgHistory[k-1])
	}
}

func TestRunCaseReproducible(t *testing.T) {
	r := Runner{Runs: 2, Iterations: 10, BaseSeed: 42}
	c := Case{Items: 10, CapacityRatio: 0.5, InstanceSeed: 7}

	rec1, err := r.RunCase(context.Background(), c, gaAlgorithm())
	require.NoError(t, err)
	rec2, err := r.RunCase(context.Background(), c, gaAlgorithm())
	require.NoError(t, err)

	// При одинаковых сидах результаты совпадают (время — нет)
	require.Equal(t, rec1.ValueBest, rec2.ValueBest)
	require.Equal(t, rec1.ValueMean, rec2.ValueMean)
	require.Equal(t, rec1.AvgHistory, rec2.AvgHistory)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "results.csv")

	records := []Record{
		{
			Algo: "GA", Items: 10, Runs: 3,
			ValueBest: 12, ValueMean: 11.5, ValueStd: 0.5,
			SuccessRate: 1,
			TimeBestMs:  0.1,
			TimeMeanMs:  0.2,
			TimeStdMs:   0.05,
		},
	}
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "algo", rows[0][0])
	require.Equal(t, "GA", rows[1][0])
	require.Equal(t, "10", rows[1][1])
}

func TestPlotConvergence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")

	series := map[string][]float64{
		"GA": {1, 2, 3, 3, 4},
		"CS": {2, 2, 3, 4, 4},
	}
	require.NoError(t, PlotConvergence(path, "Convergence", series))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestPlotConvergenceEmpty(t *testing.T) {
	require.Error(t, PlotConvergence(filepath.Join(t.TempDir(), "x.png"), "t", nil))
}
