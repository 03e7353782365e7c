package aco

import (
	"fmt"

	"bioKnapsack/internal/opt"
)

type Config struct {
	Ants int

	Alpha float64
	Beta  float64

	Rho float64

	// Q0 — вероятность жадного выбора (эксплуатация вместо исследования).
	Q0 float64

	// Q — константа отложения феромонов.
	Q float64

	Tau0 float64
}

func DefaultConfig() Config {
	return Config{
		Ants: 50,

		Alpha: 1.0,
		Beta:  2.0,

		Rho: 0.10,
		Q0:  0.90,

		Q:    1.0,
		Tau0: 1.0,
	}
}

func (c Config) Validate() error {
	if c.Ants <= 0 {
		return fmt.Errorf(
			"%w: ants должно быть > 0 (получено %d)",
			opt.ErrInvalidConfig, c.Ants,
		)
	}
	if c.Alpha < 0 {
		return fmt.Errorf(
			"%w: alpha должно быть >= 0 (получено %f)",
			opt.ErrInvalidConfig, c.Alpha,
		)
	}
	if c.Beta < 0 {
		return fmt.Errorf(
			"%w: beta должно быть >= 0 (получено %f)",
			opt.ErrInvalidConfig, c.Beta,
		)
	}
	if c.Rho <= 0 || c.Rho > 1 {
		return fmt.Errorf(
			"%w: rho должно лежать в интервале (0,1] (получено %f)",
			opt.ErrInvalidConfig, c.Rho,
		)
	}
	if c.Q0 < 0 || c.Q0 > 1 {
		return fmt.Errorf(
			"%w: q0 должно быть в диапазоне [0,1] (получено %f)",
			opt.ErrInvalidConfig, c.Q0,
		)
	}
	if c.Q <= 0 {
		return fmt.Errorf(
			"%w: Q должно быть > 0 (получено %f)",
			opt.ErrInvalidConfig, c.Q,
		)
	}
	if c.Tau0 <= 0 {
		return fmt.Errorf(
			"%w: tau0 должно быть > 0 (получено %f)",
			opt.ErrInvalidConfig, c.Tau0,
		)
	}
	return nil
}
