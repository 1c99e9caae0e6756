// Package chart renders a finished run to images: the fitness history and the best
// curve drawn over both labeled point sets. The image format follows the file
// extension (png, svg, pdf, ...).
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/baldhumanity/curvega-go/curvega"
)

// Image size used by both renderers.
var (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

var (
	bestColor     = color.RGBA{G: 160, A: 255}
	worstColor    = color.RGBA{B: 220, A: 255}
	averageColor  = color.RGBA{R: 220, A: 255}
	positiveColor = color.RGBA{R: 220, A: 255}
	negativeColor = color.RGBA{B: 220, A: 255}
	curveColor    = color.Black
)

// RenderFitness plots best, worst and average fitness per generation.
func RenderFitness(history *curvega.History, path string) error {
	if history == nil || history.Len() == 0 {
		return errors.New("chart: history is empty")
	}

	p := plot.New()
	p.Title.Text = "Genetic Algorithm fitness values"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "fitness value"
	p.Y.Min, p.Y.Max = 0, 1.5
	p.Add(plotter.NewGrid())

	series := []struct {
		name string
		data []curvega.SeriesPoint
		c    color.Color
	}{
		{"Best Fitness", history.BestSeries(), bestColor},
		{"Worst Fitness", history.WorstSeries(), worstColor},
		{"Average Fitness", history.AverageSeries(), averageColor},
	}
	for _, s := range series {
		line, err := plotter.NewLine(seriesXYs(s.data))
		if err != nil {
			return fmt.Errorf("chart: %s line: %w", s.name, err)
		}
		line.Color = s.c
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("chart: failed to save '%s': %w", path, err)
	}
	return nil
}

// RenderBestCurve plots both point sets and the best curve of the run, clipped to the
// configured point bounds.
func RenderBestCurve(result *curvega.Result, path string) error {
	if result == nil || result.Positive == nil || result.Negative == nil {
		return errors.New("chart: result with both point sets is required")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Best Curve: %s (generation %d, fitness %.4f)",
		curvega.FormatPolynomial(result.Best.Coefficients), result.Best.Generation, result.Best.Fitness)
	p.Add(plotter.NewGrid())

	bounds := result.Config.Points.Bounds()
	if bounds.MaxX > bounds.MinX {
		p.X.Min, p.X.Max = bounds.MinX, bounds.MaxX
	}
	if bounds.MaxY > bounds.MinY {
		p.Y.Min, p.Y.Max = bounds.MinY, bounds.MaxY
	}

	sets := []struct {
		name string
		set  *curvega.PointSet
		c    color.Color
	}{
		{"Positive Points", result.Positive, positiveColor},
		{"Negative Points", result.Negative, negativeColor},
	}
	for _, s := range sets {
		if s.set.Len() == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(pointXYs(s.set))
		if err != nil {
			return fmt.Errorf("chart: %s: %w", s.name, err)
		}
		scatter.GlyphStyle.Color = s.c
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add(s.name, scatter)
	}

	if len(result.Best.Coefficients) > 0 {
		coefficients := append([]int(nil), result.Best.Coefficients...)
		fn := plotter.NewFunction(func(x float64) float64 {
			return curvega.EvaluatePolynomial(coefficients, x)
		})
		fn.Color = curveColor
		fn.Samples = 400
		p.Add(fn)
		p.Legend.Add("Best Function", fn)
	}

	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("chart: failed to save '%s': %w", path, err)
	}
	return nil
}

func seriesXYs(series []curvega.SeriesPoint) plotter.XYs {
	xys := make(plotter.XYs, len(series))
	for i, s := range series {
		xys[i].X = float64(s.Index)
		xys[i].Y = s.Value
	}
	return xys
}

func pointXYs(ps *curvega.PointSet) plotter.XYs {
	xys := make(plotter.XYs, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		pt := ps.At(i)
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}
