package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"profitScope/internal/model"
	"profitScope/internal/profit"
)

// Renderer draws the cumulative profit curves of a set of pools onto one
// shared chart.
type Renderer struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer with the default 12x8 inch canvas and
// day/profit axes.
func NewRenderer() *Renderer {
	return &Renderer{
		Title:  "Cumulative Daily Profit from Providing Liquidity to Uniswap Pools",
		XLabel: "Day Number",
		YLabel: "Cumulative Profit (USD)",
		Width:  12 * vg.Inch,
		Height: 8 * vg.Inch,
	}
}

// Render recomputes each pool's cumulative profit series, overlays them
// as lines keyed by pair in the legend and saves the chart to path. An
// existing file is replaced. With nothing to draw it still writes an
// empty chart.
func (r *Renderer) Render(pools []model.PoolInfo, startPosition float64, numDays int, path string) error {
	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.XLabel
	p.Y.Label.Text = r.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	plotted := 0
	for i, pool := range pools {
		series := profit.CumulativeProfits(profit.DailyProfit(pool.APR, startPosition), numDays)
		if len(series) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(series))
		for day, value := range series {
			xys[day].X = float64(day + 1)
			xys[day].Y = value
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("plot %s: %w", pool.Pair, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(pool.Pair, line)
		plotted++
	}

	if plotted == 0 {
		// Pin the axes so the empty canvas still has a defined range.
		p.X.Min, p.X.Max = 1, float64(max(numDays, 1))
		p.Y.Min, p.Y.Max = 0, 1
	}

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
