package ga

import (
	"fmt"

	"bioKnapsack/internal/opt"
)

type Config struct {
	Population     int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"%w: размер популяции должен быть > 1 (получено %d)",
			opt.ErrInvalidConfig, c.Population,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"%w: число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			opt.ErrInvalidConfig, c.Elite,
		)
	}
	if c.TournamentSize < 2 {
		return fmt.Errorf(
			"%w: размер турнира должен быть >= 2 (получено %d)",
			opt.ErrInvalidConfig, c.TournamentSize,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"%w: вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			opt.ErrInvalidConfig, c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"%w: вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			opt.ErrInvalidConfig, c.MutationRate,
		)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:     100,
		Elite:          10,
		TournamentSize: 3,
		CrossoverRate:  0.90,
		MutationRate:   0.10,
	}
}
