package pso

import (
	"fmt"

	"bioKnapsack/internal/opt"
)

type Config struct {
	Particles int

	W  float64
	C1 float64
	C2 float64

	VMax float64

	PosMin float64
	PosMax float64
}

func DefaultConfig() Config {
	return Config{
		Particles: 50,

		W:  0.7,
		C1: 1.5,
		C2: 1.5,

		VMax:   4.0,
		PosMin: -4.0,
		PosMax: 4.0,
	}
}

func (c Config) Validate() error {
	if c.Particles <= 0 {
		return fmt.Errorf(
			"%w: Particles должно быть > 0 (получено %d)",
			opt.ErrInvalidConfig, c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"%w: W должно быть >= 0 (получено %f)",
			opt.ErrInvalidConfig, c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"%w: C1 и C2 должны быть >= 0 (получено %f, %f)",
			opt.ErrInvalidConfig, c.C1, c.C2,
		)
	}
	if c.PosMin >= c.PosMax {
		if !(c.PosMin == 0 && c.PosMax == 0) {
			return fmt.Errorf(
				"%w: для ограничения PosMin должно быть < PosMax (получено %f >= %f)",
				opt.ErrInvalidConfig, c.PosMin, c.PosMax,
			)
		}
	}
	return nil
}
