package aco

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"bioKnapsack/internal/knapsack"
	"bioKnapsack/internal/opt"
)

func simpleProblem(t *testing.T) *knapsack.Problem {
	t.Helper()
	p, err := knapsack.NewProblem(
		[]float64{2, 3, 4, 5},
		[]float64{3, 4, 5, 6},
		5,
	)
	require.NoError(t, err)
	return p
}

func testConfig() Config {
	return Config{
		Ants:  20,
		Alpha: 1.0,
		Beta:  2.0,
		Rho:   0.1,
		Q0:    0.9,
		Q:     1.0,
		Tau0:  1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())
	require.NoError(t, DefaultConfig().Validate())

	bad := testConfig()
	bad.Ants = 0
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Alpha = -1
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Beta = -1
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Rho = 0
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Rho = 1.5
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Q0 = 1.1
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Q = 0
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Tau0 = 0
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)
}

func TestNewRequiresRng(t *testing.T) {
	_, err := New(testConfig(), nil)
	require.Error(t, err)
}

func TestSolveRejectsNonPositiveIterations(t *testing.T) {
	s, err := New(testConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), simpleProblem(t), 0)
	require.ErrorIs(t, err, opt.ErrInvalidConfig)
}

func TestSolveResultContract(t *testing.T) {
	prob := simpleProblem(t)
	s, err := New(testConfig(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, 30)
	require.NoError(t, err)

	require.Len(t, res.History, 30)
	for k := 1; k < len(res.History); k++ {
		require.GreaterOrEqual(t, res.History[k], res.History[k-1])
	}
	require.Equal(t, res.Value, res.History[len(res.History)-1])

	ev, err := prob.Evaluate(res.Solution)
	require.NoError(t, err)
	require.True(t, ev.Feasible)
	require.Equal(t, ev.Value, res.Value)
}

func TestSolveFindsOptimum(t *testing.T) {
	prob := simpleProblem(t)

	best := 0.0
	for seed := int64(1); seed <= 5; seed++ {
		s, err := New(testConfig(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		res, err := s.Solve(context.Background(), prob, 200)
		require.NoError(t, err)
		if res.Value > best {
			best = res.Value
		}
	}
	require.Equal(t, 7.0, best)
}

func TestSolveZeroCapacity(t *testing.T) {
	// Ни один предмет не помещается — муравьи строят пустые решения
	prob, err := knapsack.NewProblem(
		[]float64{2, 3, 4},
		[]float64{3, 4, 5},
		0,
	)
	require.NoError(t, err)

	s, err := New(testConfig(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, 20)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0}, res.Solution)
	require.Equal(t, 0.0, res.Value)
}

func TestSolveSingleItem(t *testing.T) {
	s, err := New(testConfig(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	fits, err := knapsack.NewProblem([]float64{3}, []float64{10}, 5)
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), fits, 20)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Solution)
	require.Equal(t, 10.0, res.Value)

	tooHeavy, err := knapsack.NewProblem([]float64{7}, []float64{10}, 5)
	require.NoError(t, err)
	res, err = s.Solve(context.Background(), tooHeavy, 20)
	require.NoError(t, err)
	require.Equal(t, []int{0}, res.Solution)
	require.Equal(t, 0.0, res.Value)
}

func TestConstructSolutionRespectsCapacity(t *testing.T) {
	prob := simpleProblem(t)
	rng := rand.New(rand.NewSource(13))

	n := prob.NItems()
	tau := []float64{1, 1, 1, 1}
	eta := []float64{1, 0.9, 0.8, 0.7}
	sol := make([]int, n)
	candidates := make([]int, 0, n)
	weights := make([]float64, n)

	for trial := 0; trial < 100; trial++ {
		candidates = constructSolution(prob, tau, eta, 1, 2, 0.5, rng, sol, candidates, weights)
		ev := prob.MustEvaluate(sol)
		require.True(t, ev.Feasible)
	}
}

func TestFastPow(t *testing.T) {
	require.Equal(t, 1.0, fastPow(3.5, 0))
	require.Equal(t, 3.5, fastPow(3.5, 1))
	require.Equal(t, 12.25, fastPow(3.5, 2))
	require.InDelta(t, 11.313708, fastPow(2, 3.5), 1e-6)
}
