package cs

import (
	"fmt"

	"bioKnapsack/internal/opt"
)

type Config struct {
	Nests int

	// Pa — вероятность покидания гнезда за итерацию.
	Pa float64

	// Beta — показатель распределения Леви, обычно в (1,2].
	Beta float64
}

func DefaultConfig() Config {
	return Config{
		Nests: 50,
		Pa:    0.25,
		Beta:  1.5,
	}
}

func (c Config) Validate() error {
	if c.Nests <= 0 {
		return fmt.Errorf(
			"%w: nests должно быть > 0 (получено %d)",
			opt.ErrInvalidConfig, c.Nests,
		)
	}
	if c.Pa < 0 || c.Pa > 1 {
		return fmt.Errorf(
			"%w: pa должно быть в диапазоне [0,1] (получено %f)",
			opt.ErrInvalidConfig, c.Pa,
		)
	}
	if c.Beta <= 1 || c.Beta > 2 {
		return fmt.Errorf(
			"%w: beta должно лежать в интервале (1,2] (получено %f)",
			opt.ErrInvalidConfig, c.Beta,
		)
	}
	return nil
}
