package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"bioKnapsack/internal/aco"
	"bioKnapsack/internal/bench"
	"bioKnapsack/internal/cs"
	"bioKnapsack/internal/ga"
	"bioKnapsack/internal/opt"
	"bioKnapsack/internal/pso"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ga.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newACOFactory(cfg aco.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := aco.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := pso.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newCSFactory(cfg cs.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := cs.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out           = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		plotPath      = flag.String("plot", "", "путь к PNG с кривыми сходимости (пусто — не строить)")
		items         = flag.String("items", "20,50,100", "размеры задач: количество предметов (через запятую)")
		capacityRatio = flag.Float64("capacity_ratio", 0.5, "вместимость как доля суммарного веса предметов")
		algos         = flag.String("algos", "GA,ACO,PSO,CS", "список алгоритмов: GA, ACO, PSO, CS (через запятую)")
		runs          = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		iterations    = flag.Int("iterations", 100, "количество итераций одного запуска")
		baseSeed      = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed  = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO      = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Генетический алгоритм ---
		gaPop   = flag.Int("ga_pop", 100, "размер популяции")
		gaElite = flag.Int("ga_elite", 10, "размер элиты (количество лучших особей)")
		gaTour  = flag.Int("ga_tour", 3, "размер турнирной выборки")
		gaCx    = flag.Float64("ga_cx", 0.90, "вероятность применения кроссовера")
		gaMut   = flag.Float64("ga_mut", 0.10, "вероятность мутации (на бит)")

		// --- Муравьиный алгоритм ---
		acoAnts = flag.Int("aco_ants", 50, "количество муравьёв")
		acoA    = flag.Float64("aco_alpha", 1.0, "коэффициент alpha (влияние феромонов)")
		acoB    = flag.Float64("aco_beta", 2.0, "коэффициент beta (влияние эвристики)")
		acoRho  = flag.Float64("aco_rho", 0.10, "коэффициент rho (испарения феромонов)")
		acoQ0   = flag.Float64("aco_q0", 0.90, "вероятность жадного выбора предмета")
		acoQ    = flag.Float64("aco_q", 1.0, "константа отложения феромонов")
		acoTau0 = flag.Float64("aco_tau0", 1.0, "начальный уровень феромонов")

		// --- Рой частиц ---
		psoParticles = flag.Int("pso_particles", 50, "количество частиц")
		psoW         = flag.Float64("pso_w", 0.7, "коэффициент W (инерция)")
		psoC1        = flag.Float64("pso_c1", 1.5, "коэффициент C1 (когнитивный)")
		psoC2        = flag.Float64("pso_c2", 1.5, "коэффициент C2 (социальный)")
		psoVMax      = flag.Float64("pso_vmax", 4.0, "ограничение скорости частицы (<=0 — без ограничения)")
		psoPosMin    = flag.Float64("pso_pos_min", -4.0, "минимальное значение позиции частицы")
		psoPosMax    = flag.Float64("pso_pos_max", 4.0, "максимальное значение позиции частицы")

		// --- Алгоритм кукушки ---
		csNests = flag.Int("cs_nests", 50, "количество гнёзд")
		csPa    = flag.Float64("cs_pa", 0.25, "вероятность покидания гнезда")
		csBeta  = flag.Float64("cs_beta", 1.5, "показатель распределения Леви")
	)
	flag.Parse()

	ctx := context.Background()

	cases, err := parseItems(*items, *capacityRatio, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}
	if *iterations <= 0 {
		fmt.Fprintln(os.Stderr, "Конфликт: iterations должно быть > 0")
		os.Exit(2)
	}

	gaCfg := ga.Config{
		Population:     *gaPop,
		Elite:          *gaElite,
		TournamentSize: *gaTour,
		CrossoverRate:  *gaCx,
		MutationRate:   *gaMut,
	}
	if err := gaCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации генетического алгоритма:", err)
		os.Exit(2)
	}

	acoCfg := aco.Config{
		Ants:  *acoAnts,
		Alpha: *acoA,
		Beta:  *acoB,
		Rho:   *acoRho,
		Q0:    *acoQ0,
		Q:     *acoQ,
		Tau0:  *acoTau0,
	}
	if err := acoCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации муравьиного алгоритма:", err)
		os.Exit(2)
	}

	psoCfg := pso.Config{
		Particles: *psoParticles,
		W:         *psoW,
		C1:        *psoC1,
		C2:        *psoC2,
		VMax:      *psoVMax,
		PosMin:    *psoPosMin,
		PosMax:    *psoPosMax,
	}
	if err := psoCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации роя частиц:", err)
		os.Exit(2)
	}

	csCfg := cs.Config{
		Nests: *csNests,
		Pa:    *csPa,
		Beta:  *csBeta,
	}
	if err := csCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма кукушки:", err)
		os.Exit(2)
	}

	available := map[string]bench.Algorithm{
		"GA":  {Name: "GA", Factory: newGAFactory(gaCfg)},
		"ACO": {Name: "ACO", Factory: newACOFactory(acoCfg)},
		"PSO": {Name: "PSO", Factory: newPSOFactory(psoCfg)},
		"CS":  {Name: "CS", Factory: newCSFactory(csCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		Iterations:    *iterations,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var records []bench.Record
	convergence := map[string][]float64{}
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d предметов (общее кол-во запусков=%d, итераций=%d)...\n",
				a.Name, c.Items, runner.Runs, runner.Iterations)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)
			convergence[fmt.Sprintf("%s n=%d", a.Name, c.Items)] = rec.AvgHistory

			fmt.Printf("  Ценность: лучшая=%.2f средняя=%.2f стандартное отклонение=%.2f | Допустимость: %.0f%% | Время: среднее=%.2fms отклонение=%.2fms\n",
				rec.ValueBest, rec.ValueMean, rec.ValueStd,
				rec.SuccessRate*100,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)

	if *plotPath != "" {
		if err := bench.PlotConvergence(*plotPath, "Convergence", convergence); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка при построении графика:", err)
			os.Exit(1)
		}
		fmt.Println("Saved:", *plotPath)
	}
}

// helpers

func parseItems(s string, capacityRatio float64, baseInstanceSeed int64) ([]bench.Case, error) {
	if capacityRatio <= 0 || capacityRatio > 1 {
		return nil, fmt.Errorf("capacity_ratio должно лежать в интервале (0,1] (получено %f)", capacityRatio)
	}

	parts := splitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("не задан ни один размер задачи")
	}
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		n, err := atoiStrict(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: ошибка парсинга количества предметов: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("размер %q: количество предметов должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(n)

		cases = append(cases, bench.Case{
			Items:         n,
			CapacityRatio: capacityRatio,
			InstanceSeed:  seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
