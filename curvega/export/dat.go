// Package export writes a finished run to flat files in the tab-separated layout
// gnuplot reads, together with a gnuplot script that plots them.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/baldhumanity/curvega-go/curvega"
)

// File names written by WriteRun.
const (
	BestFitnessFile    = "BestFitnessData.dat"
	WorstFitnessFile   = "WorstFitnessData.dat"
	AvgFitnessFile     = "AvgFitnessData.dat"
	PositivePointsFile = "PositivePointsData.dat"
	NegativePointsFile = "NegativePointsData.dat"
	ScriptFile         = "plot.gp"
)

// WriteSeries writes one "index<TAB>value" line per sample.
func WriteSeries(w io.Writer, series []curvega.SeriesPoint) error {
	bw := bufio.NewWriter(w)
	for _, p := range series {
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", p.Index, formatFloat(p.Value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePoints writes one "x<TAB>y" line per point.
func WritePoints(w io.Writer, points []curvega.XYPair) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", formatFloat(p.X), formatFloat(p.Y)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRun writes the three fitness series, both point sets and the gnuplot script into
// dir, creating it if needed. The result is only read.
func WriteRun(dir string, result *curvega.Result) error {
	if result == nil || result.History == nil || result.Positive == nil || result.Negative == nil {
		return errors.New("export: result with history and both point sets is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir '%s': %w", dir, err)
	}

	series := []struct {
		name string
		data []curvega.SeriesPoint
	}{
		{BestFitnessFile, result.History.BestSeries()},
		{WorstFitnessFile, result.History.WorstSeries()},
		{AvgFitnessFile, result.History.AverageSeries()},
	}
	for _, s := range series {
		if err := writeFile(filepath.Join(dir, s.name), func(w io.Writer) error {
			return WriteSeries(w, s.data)
		}); err != nil {
			return err
		}
	}

	points := []struct {
		name string
		set  *curvega.PointSet
	}{
		{PositivePointsFile, result.Positive},
		{NegativePointsFile, result.Negative},
	}
	for _, p := range points {
		if err := writeFile(filepath.Join(dir, p.name), func(w io.Writer) error {
			return WritePoints(w, p.set.XY())
		}); err != nil {
			return err
		}
	}

	return writeFile(filepath.Join(dir, ScriptFile), func(w io.Writer) error {
		return WriteScript(w, result)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open '%s' for writing: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close '%s': %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
