// Package compute applies a classified instruction to a normalized table
// and produces the final answer value or chart attachment.
package compute

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/classify"
	"github.com/jverma/quiz-solver/pkg/tabular"
)

// Result carries the computed answer and, for plots, the inline image.
type Result struct {
	Answer     any
	Attachment string
}

// integerTolerance decides when a float answer is rendered as an integer.
const integerTolerance = 1e-8

// Answer computes the instruction against the frame. It never fails: a
// panic or internal error during computation becomes a descriptive answer
// string, and an instruction that resolves nothing yields the
// no-answer sentinel.
func Answer(frame *tabular.Frame, instr classify.Instruction) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Answer: fmt.Sprintf("error computing instruction: %v", r)}
		}
	}()

	var answer any
	var attachment string

	switch instr.Op {
	case classify.OpSum:
		if col := lookupLoose(frame, instr.Column); col != nil {
			answer = formatNumber(floats.Sum(col.Values()))
		}

	case classify.OpMean:
		if col := lookupLoose(frame, instr.Column); col != nil {
			if vals := col.Values(); len(vals) > 0 {
				answer = formatNumber(stat.Mean(vals, nil))
			}
		}

	case classify.OpCorrelation:
		x := frame.ColumnExact(instr.X)
		y := frame.ColumnExact(instr.Y)
		if x != nil && y != nil && x.Numeric && y.Numeric {
			xs, ys := pairedValues(x, y)
			if len(xs) >= 2 {
				answer = formatNumber(stat.Correlation(xs, ys, nil))
			}
		}

	case classify.OpPlot:
		uri, err := plotFrame(frame, instr)
		if err != nil {
			return Result{Answer: fmt.Sprintf("error computing instruction: %v", err)}
		}
		if uri != "" {
			answer = models.AnswerAttachedPlot
			attachment = uri
		}

	default:
		// No recognizable instruction: a column literally named "value"
		// is the conventional single-answer layout.
		if col := frame.ColumnExact("value"); col != nil && col.Numeric {
			answer = formatNumber(floats.Sum(col.Values()))
		}
	}

	if answer == nil {
		return Result{Answer: models.AnswerNone}
	}
	return Result{Answer: answer, Attachment: attachment}
}

// lookupLoose finds a numeric column by exact case-insensitive name, then
// by case-insensitive substring.
func lookupLoose(f *tabular.Frame, name string) *tabular.Column {
	if name == "" {
		return nil
	}
	if col := f.ColumnExact(name); col != nil && col.Numeric {
		return col
	}
	if col := f.ColumnSubstring(name); col != nil && col.Numeric {
		return col
	}
	return nil
}

// pairedValues keeps only rows where both columns carry a value.
func pairedValues(x, y *tabular.Column) ([]float64, []float64) {
	n := len(x.Nums)
	if len(y.Nums) < n {
		n = len(y.Nums)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if x.Missing[i] || y.Missing[i] {
			continue
		}
		xs = append(xs, x.Nums[i])
		ys = append(ys, y.Nums[i])
	}
	return xs, ys
}

// formatNumber renders values that are integral within tolerance as
// integers, so a sum of whole numbers serializes as 6 rather than 6.0.
func formatNumber(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("non-finite result %v", v))
	}
	if math.Abs(math.Round(v)-v) < integerTolerance {
		return int64(math.Round(v))
	}
	return v
}
