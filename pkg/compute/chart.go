package compute

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/jverma/quiz-solver/pkg/classify"
	"github.com/jverma/quiz-solver/pkg/tabular"
)

// plotFrame renders the requested line chart as a base64 PNG data URI.
// Returns "" when no plottable column exists. The y fallback to the first
// numeric column is deliberate but blunt: an identifier column that happens
// to coerce wins.
func plotFrame(frame *tabular.Frame, instr classify.Instruction) (string, error) {
	y := frame.ColumnExact(instr.Y)
	if y == nil || !y.Numeric {
		y = frame.FirstNumeric()
	}
	if y == nil {
		return "", nil
	}

	var x *tabular.Column
	if instr.X != "" {
		if c := frame.ColumnExact(instr.X); c != nil && c.Numeric {
			x = c
		}
	}

	var xs, ys []float64
	if x != nil {
		xs, ys = pairedValues(x, y)
	} else {
		ys = y.Values()
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	if len(ys) == 0 {
		return "", nil
	}

	return renderLineChart(xs, ys, y.Name)
}

func renderLineChart(xs, ys []float64, title string) (string, error) {
	graph := chart.Chart{
		Title:  title,
		Width:  720,
		Height: 360,
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
