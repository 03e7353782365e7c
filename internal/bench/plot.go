package bench

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotConvergence сохраняет PNG со средними кривыми сходимости:
// по одной линии на алгоритм, X — итерация, Y — лучшая ценность.
func PlotConvergence(path, title string, series map[string][]float64) error {
	if len(series) == 0 {
		return fmt.Errorf("нет данных для графика")
	}
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Best value"

	// Детерминированный порядок линий и легенды
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		hist := series[name]
		pts := make(plotter.XYs, len(hist))
		for k, v := range hist {
			pts[k].X = float64(k)
			pts[k].Y = v
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)

		p.Add(line)
		p.Legend.Add(name, line)
	}

	p.Legend.Top = false
	p.Legend.Left = false

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
