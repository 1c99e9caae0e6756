package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/baldhumanity/curvega-go/curvega"
)

// ErrGnuplotNotFound is returned by RunGnuplot when no gnuplot binary is on PATH.
var ErrGnuplotNotFound = errors.New("gnuplot not found on PATH")

// Image names produced by the generated script.
const (
	FitnessImage = "fitness.png"
	CurveImage   = "curve.png"
)

// PlotExpression renders coefficients (highest order first) as a gnuplot expression in x,
// e.g. [3 -2 1] -> "(3*x**2)+(-2*x)+(1)". Any degree is supported.
func PlotExpression(coefficients []int) string {
	if len(coefficients) == 0 {
		return "0"
	}
	degree := len(coefficients) - 1
	terms := make([]string, len(coefficients))
	for i, a := range coefficients {
		switch power := degree - i; power {
		case 0:
			terms[i] = fmt.Sprintf("(%d)", a)
		case 1:
			terms[i] = fmt.Sprintf("(%d*x)", a)
		default:
			terms[i] = fmt.Sprintf("(%d*x**%d)", a, power)
		}
	}
	return strings.Join(terms, "+")
}

// WriteScript writes a gnuplot script that renders the fitness history and the best
// curve over both point sets, reading the .dat files WriteRun produces.
func WriteScript(w io.Writer, result *curvega.Result) error {
	pc := result.Config.Points
	xRange, yRange := plotRange(pc.MinX, pc.MaxX), plotRange(pc.MinY, pc.MaxY)

	lines := []string{
		"set terminal png size 900,600",
		fmt.Sprintf("set output '%s'", FitnessImage),
		`set title "Genetic Algorithm fitness values"`,
		"set grid",
		"set xlabel 'generation'",
		"set ylabel 'fitness value'",
		"set ytics 0.1",
		fmt.Sprintf("plot [:] [0.00:1.50] '%s' lc rgb 'green' title 'Best Fitness' with lines, '%s' lc rgb 'blue' title 'Worst Fitness' with lines, '%s' lc rgb 'red' title 'Average Fitness' with lines",
			BestFitnessFile, WorstFitnessFile, AvgFitnessFile),
		"",
		fmt.Sprintf("set output '%s'", CurveImage),
		fmt.Sprintf(`set title "Best Curve (generation %d, fitness %.4f)"`, result.Best.Generation, result.Best.Fitness),
		"unset xlabel",
		"unset ylabel",
		"set ytics autofreq",
		fmt.Sprintf("plot %s %s '%s' lc rgb 'red' title 'Positive Points', '%s' lc rgb 'blue' title 'Negative Points', %s lc rgb 'black' title 'Best Function'",
			xRange, yRange, PositivePointsFile, NegativePointsFile, PlotExpression(result.Best.Coefficients)),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func plotRange(lo, hi float64) string {
	if hi <= lo {
		return "[:]"
	}
	return fmt.Sprintf("[%s:%s]", formatFloat(lo), formatFloat(hi))
}

// RunGnuplot runs the script written by WriteRun inside dir.
func RunGnuplot(ctx context.Context, dir string) error {
	gnuplot, err := exec.LookPath("gnuplot")
	if err != nil {
		return ErrGnuplotNotFound
	}
	cmd := exec.CommandContext(ctx, gnuplot, ScriptFile)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gnuplot failed: %w\n%s", err, out)
	}
	return nil
}
