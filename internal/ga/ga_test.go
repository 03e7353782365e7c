package ga

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
		Population:     40,
		Elite:          4,
		TournamentSize: 3,
		CrossoverRate:  0.9,
		MutationRate:   0.1,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())
	require.NoError(t, DefaultConfig().Validate())

	bad := testConfig()
	bad.Population = 1
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.Elite = bad.Population
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.TournamentSize = 1
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.CrossoverRate = 1.5
	require.ErrorIs(t, bad.Validate(), opt.ErrInvalidConfig)

	bad = testConfig()
	bad.MutationRate = -0.1
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

	_, err = s.Solve(context.Background(), simpleProblem(t), -5)
	require.ErrorIs(t, err, opt.ErrInvalidConfig)
}

func TestSolveResultContract(t *testing.T) {
	prob := simpleProblem(t)
	s, err := New(testConfig(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, 30)
	require.NoError(t, err)

	// История: длина равна числу итераций, последовательность не убывает
	require.Len(t, res.History, 30)
	for k := 1; k < len(res.History); k++ {
		require.GreaterOrEqual(t, res.History[k], res.History[k-1])
	}
	require.Equal(t, res.Value, res.History[len(res.History)-1])

	// Лучшее решение допустимо, ценность совпадает с пересчитанной
	ev, err := prob.Evaluate(res.Solution)
	require.NoError(t, err)
	require.True(t, ev.Feasible)
	require.Equal(t, ev.Value, res.Value)

	require.Equal(t, 30, res.Iterations)
	require.Greater(t, res.Evaluations, 0)
}

func TestSolveFindsOptimum(t *testing.T) {
	prob := simpleProblem(t)

	// Статистическое свойство: лучший из нескольких сидов достигает оптимума 7
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

	// Предмет помещается — он должен быть взят
	fits, err := knapsack.NewProblem([]float64{3}, []float64{10}, 5)
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), fits, 50)
	require.NoError(t, err)
	require.Equal(t, []int{1}, res.Solution)
	require.Equal(t, 10.0, res.Value)

	// Предмет не помещается — рюкзак остаётся пустым
	tooHeavy, err := knapsack.NewProblem([]float64{7}, []float64{10}, 5)
	require.NoError(t, err)
	res, err = s.Solve(context.Background(), tooHeavy, 50)
	require.NoError(t, err)
	require.Equal(t, []int{0}, res.Solution)
	require.Equal(t, 0.0, res.Value)
}

func TestSolveElitismKeepsBest(t *testing.T) {
	prob := simpleProblem(t)

	cfg := testConfig()
	cfg.Elite = 1
	s, err := New(cfg, rand.New(rand.NewSource(17)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, 100)
	require.NoError(t, err)

	// С элитой >= 1 лучшая ценность не может деградировать между поколениями
	for k := 1; k < len(res.History); k++ {
		require.GreaterOrEqual(t, res.History[k], res.History[k-1])
	}
}

func TestSolveContextCancelled(t *testing.T) {
	prob := simpleProblem(t)
	s, err := New(testConfig(), rand.New(rand.NewSource(21)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, prob, 1000)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, res.Iterations, 1000)

	// Даже при отмене возвращается допустимое решение
	ev, evalErr := prob.Evaluate(res.Solution)
	require.NoError(t, evalErr)
	require.True(t, ev.Feasible)
}

func TestOnePointCrossoverPreservesBits(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p1 := []int{1, 1, 1, 1, 1, 1}
	p2 := []int{0, 0, 0, 0, 0, 0}
	c1 := make([]int, 6)
	c2 := make([]int, 6)

	onePointCrossover(p1, p2, c1, c2, rng)

	// Каждый потомок — префикс одного родителя и суффикс другого
	for i := range c1 {
		require.Equal(t, 1-c1[i], c2[i])
	}
	require.Equal(t, 1, c1[0])
	require.Equal(t, 0, c1[len(c1)-1])
}

func TestMutateFlipRateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	sol := []int{0, 1, 0, 1}
	mutateFlip(sol, 0, rng)
	require.Equal(t, []int{0, 1, 0, 1}, sol)

	mutateFlip(sol, 1, rng)
	require.Equal(t, []int{1, 0, 1, 0}, sol)
}
