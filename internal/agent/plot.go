package agent

import (
	"errors"
	"fmt"
	"os"

	"github.com/gamma-omg/backtester/internal/backtest"
	"github.com/gamma-omg/backtester/internal/market"
	"github.com/pplcc/plotext"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	plotWidth       = 1024
	plotPanelHeight = 360
)

// SaveEquityPlot renders the close price and the equity curve as stacked
// panels sharing one time axis and writes them as a png.
func SaveEquityPlot(path, symbol string, bars []market.Bar, equity []backtest.EquityPoint) error {
	price := plot.New()
	price.Title.Text = symbol
	price.Y.Label.Text = "Close"
	price.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	pricePts := make(plotter.XYs, len(bars))
	for i, b := range bars {
		c, _ := b.Close.Float64()
		pricePts[i] = plotter.XY{X: float64(b.Time.Unix()), Y: c}
	}
	priceLine, err := plotter.NewLine(pricePts)
	if err != nil {
		return fmt.Errorf("failed to create price graph: %w", err)
	}
	price.Add(priceLine)

	eq := plot.New()
	eq.Y.Label.Text = "Equity"
	eq.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	eqPts := make(plotter.XYs, len(equity))
	for i, p := range equity {
		v, _ := p.Value.Float64()
		eqPts[i] = plotter.XY{X: float64(p.Time.Unix()), Y: v}
	}
	eqLine, err := plotter.NewLine(eqPts)
	if err != nil {
		return fmt.Errorf("failed to create equity graph: %w", err)
	}
	eq.Add(eqLine)

	s := stackedPlots{w: plotWidth, h: plotPanelHeight}
	s.add(price, 1)
	s.add(eq, 1)
	return s.save(path)
}

type stackedPlots struct {
	plots   []*plot.Plot
	heights []float64
	w       int
	h       int
}

func (d *stackedPlots) add(p *plot.Plot, height float64) {
	d.plots = append(d.plots, p)
	d.heights = append(d.heights, height)
}

func (d *stackedPlots) save(path string) (err error) {
	var axis []*plot.Axis
	for _, p := range d.plots {
		axis = append(axis, &p.X)
	}
	plotext.UniteAxisRanges(axis)

	tbl := plotext.Table{
		RowHeights: d.heights,
		ColWidths:  []float64{1},
	}

	var plots2d [][]*plot.Plot
	for _, p := range d.plots {
		plots2d = append(plots2d, []*plot.Plot{p})
	}

	h := 0.0
	for _, v := range d.heights {
		h += v * float64(d.h)
	}

	img := vgimg.New(vg.Points(float64(d.w)), vg.Points(h))
	dc := draw.New(img)

	canvases := tbl.Align(plots2d, dc)
	for i, p := range d.plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close plot file: %w", cerr))
		}
	}()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write plot to file: %w", err)
	}

	return nil
}
