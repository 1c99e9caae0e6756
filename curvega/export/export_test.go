package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/curvega-go/curvega"
)

func testResult(t *testing.T) *curvega.Result {
	t.Helper()
	config := curvega.DefaultConfig()
	config.Run.PopulationSize = 10
	config.Run.MaxGenerations = 5
	config.Run.Seed = 3
	config.Run.Workers = 1

	positive := curvega.NewPointSet([]curvega.Point{{X: 1, Y: 5}, {X: -2, Y: 7.5}}, true)
	negative := curvega.NewPointSet([]curvega.Point{{X: 0, Y: -3}}, false)
	e, err := curvega.NewEngine(config, curvega.WithPointSets(positive, negative))
	require.NoError(t, err)
	result, err := e.Run()
	require.NoError(t, err)
	return result
}

func TestWriteSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, []curvega.SeriesPoint{{Index: 0, Value: 0.5}, {Index: 1, Value: 1}}))
	assert.Equal(t, "0\t0.5\n1\t1\n", buf.String())
}

func TestWritePoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, []curvega.XYPair{{X: -1.25, Y: 3}, {X: 2, Y: -0.5}}))
	assert.Equal(t, "-1.25\t3\n2\t-0.5\n", buf.String())
}

func TestPlotExpression(t *testing.T) {
	cases := []struct {
		in   []int
		want string
	}{
		{[]int{2, 1}, "(2*x)+(1)"},
		{[]int{3, -2, 1}, "(3*x**2)+(-2*x)+(1)"},
		{[]int{1, 0, 0, -4}, "(1*x**3)+(0*x**2)+(0*x)+(-4)"},
		{[]int{1, 2, 3, 4, 5}, "(1*x**4)+(2*x**3)+(3*x**2)+(4*x)+(5)"},
		{[]int{-1, 0, 0, 0, 0, 9}, "(-1*x**5)+(0*x**4)+(0*x**3)+(0*x**2)+(0*x)+(9)"},
		{nil, "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PlotExpression(tc.in))
	}
}

func TestWriteRun(t *testing.T) {
	result := testResult(t)
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, WriteRun(dir, result))

	for _, name := range []string{BestFitnessFile, WorstFitnessFile, AvgFitnessFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, result.History.Len(), name)
		assert.True(t, strings.HasPrefix(lines[0], "0\t"), name)
	}

	data, err := os.ReadFile(filepath.Join(dir, PositivePointsFile))
	require.NoError(t, err)
	assert.Equal(t, "1\t5\n-2\t7.5\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, NegativePointsFile))
	require.NoError(t, err)
	assert.Equal(t, "0\t-3\n", string(data))

	script, err := os.ReadFile(filepath.Join(dir, ScriptFile))
	require.NoError(t, err)
	assert.Contains(t, string(script), PlotExpression(result.Best.Coefficients))
	assert.Contains(t, string(script), "[-20:20] [-10:10]")
	assert.Contains(t, string(script), BestFitnessFile)
	assert.Contains(t, string(script), PositivePointsFile)
}

func TestWriteRunUnwritableDir(t *testing.T) {
	result := testResult(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	assert.Error(t, WriteRun(filepath.Join(blocker, "out"), result))
	assert.Error(t, WriteRun(t.TempDir(), nil))
}

func TestWriteRunIncompleteResult(t *testing.T) {
	full := testResult(t)
	incomplete := []func(r *curvega.Result){
		func(r *curvega.Result) { r.History = nil },
		func(r *curvega.Result) { r.Positive = nil },
		func(r *curvega.Result) { r.Negative = nil },
	}
	for _, drop := range incomplete {
		r := *full
		drop(&r)
		assert.Error(t, WriteRun(t.TempDir(), &r))
	}
}
