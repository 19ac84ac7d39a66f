package compute

import (
	"strings"
	"testing"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/classify"
	"github.com/jverma/quiz-solver/pkg/tabular"
)

func frameOf(t *testing.T, headers []string, rows [][]string) *tabular.Frame {
	t.Helper()
	return tabular.Normalize(&models.Table{Headers: headers, Rows: rows})
}

func abFrame(t *testing.T) *tabular.Frame {
	return frameOf(t, []string{"A", "B"}, [][]string{{"1", "4"}, {"2", "5"}, {"3", "6"}})
}

func TestAnswer_SumIsInteger(t *testing.T) {
	res := Answer(abFrame(t), classify.Instruction{Op: classify.OpSum, Column: "A"})
	if got, ok := res.Answer.(int64); !ok || got != 6 {
		t.Errorf("Answer = %v (%T), want int64 6", res.Answer, res.Answer)
	}
}

func TestAnswer_SumSubstringMatch(t *testing.T) {
	frame := frameOf(t, []string{"Total Sales (USD)"}, [][]string{{"10"}, {"15"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpSum, Column: "sales"})
	if got, ok := res.Answer.(int64); !ok || got != 25 {
		t.Errorf("Answer = %v (%T), want int64 25", res.Answer, res.Answer)
	}
}

func TestAnswer_Mean(t *testing.T) {
	frame := frameOf(t, []string{"price"}, [][]string{{"1"}, {"2"}, {"4"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpMean, Column: "Price"})
	if got, ok := res.Answer.(float64); !ok || got < 2.333 || got > 2.334 {
		t.Errorf("Answer = %v (%T), want ~2.333", res.Answer, res.Answer)
	}
}

func TestAnswer_MeanSkipsMissing(t *testing.T) {
	frame := frameOf(t, []string{"v"}, [][]string{{"2"}, {""}, {"4"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpMean, Column: "v"})
	if got, ok := res.Answer.(int64); !ok || got != 3 {
		t.Errorf("Answer = %v (%T), want int64 3", res.Answer, res.Answer)
	}
}

func TestAnswer_PerfectCorrelation(t *testing.T) {
	// B is a perfect linear function of A, so the correlation is exactly
	// 1 and renders as an integer.
	res := Answer(abFrame(t), classify.Instruction{Op: classify.OpCorrelation, X: "A", Y: "B"})
	if got, ok := res.Answer.(int64); !ok || got != 1 {
		t.Errorf("Answer = %v (%T), want int64 1", res.Answer, res.Answer)
	}
}

func TestAnswer_CorrelationNeedsExactNames(t *testing.T) {
	res := Answer(abFrame(t), classify.Instruction{Op: classify.OpCorrelation, X: "A", Y: "nope"})
	if res.Answer != models.AnswerNone {
		t.Errorf("Answer = %v, want %q", res.Answer, models.AnswerNone)
	}
}

func TestAnswer_CorrelationOfConstantIsError(t *testing.T) {
	// Zero variance makes Pearson undefined; the failure is absorbed into
	// a descriptive answer instead of crashing the task.
	frame := frameOf(t, []string{"A", "B"}, [][]string{{"1", "7"}, {"2", "7"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpCorrelation, X: "A", Y: "B"})
	got, ok := res.Answer.(string)
	if !ok || !strings.HasPrefix(got, "error computing instruction:") {
		t.Errorf("Answer = %v (%T), want error description", res.Answer, res.Answer)
	}
}

func TestAnswer_UnknownFallsBackToValueColumn(t *testing.T) {
	frame := frameOf(t, []string{"Value"}, [][]string{{"5"}, {"7"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpUnknown})
	if got, ok := res.Answer.(int64); !ok || got != 12 {
		t.Errorf("Answer = %v (%T), want int64 12", res.Answer, res.Answer)
	}
}

func TestAnswer_UnresolvedColumnYieldsNoAnswer(t *testing.T) {
	res := Answer(abFrame(t), classify.Instruction{Op: classify.OpSum, Column: "missing"})
	if res.Answer != models.AnswerNone {
		t.Errorf("Answer = %v, want %q", res.Answer, models.AnswerNone)
	}
}

func TestAnswer_PlotAttachesImage(t *testing.T) {
	res := Answer(abFrame(t), classify.Instruction{Op: classify.OpPlot, X: "A", Y: "B"})
	if res.Answer != models.AnswerAttachedPlot {
		t.Fatalf("Answer = %v, want %q", res.Answer, models.AnswerAttachedPlot)
	}
	if !strings.HasPrefix(res.Attachment, "data:image/png;base64,") {
		t.Errorf("Attachment = %.40q..., want PNG data URI", res.Attachment)
	}
}

func TestAnswer_PlotFallsBackToFirstNumericColumn(t *testing.T) {
	frame := frameOf(t, []string{"Label", "Reading"}, [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpPlot})
	if res.Answer != models.AnswerAttachedPlot {
		t.Fatalf("Answer = %v, want %q", res.Answer, models.AnswerAttachedPlot)
	}
	if res.Attachment == "" {
		t.Error("Attachment empty, want rendered chart")
	}
}

func TestAnswer_PlotWithoutNumericColumns(t *testing.T) {
	frame := frameOf(t, []string{"Label"}, [][]string{{"a"}, {"b"}})
	res := Answer(frame, classify.Instruction{Op: classify.OpPlot})
	if res.Answer != models.AnswerNone {
		t.Errorf("Answer = %v, want %q", res.Answer, models.AnswerNone)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber(6.0); got != int64(6) {
		t.Errorf("formatNumber(6.0) = %v (%T), want int64 6", got, got)
	}
	if got := formatNumber(6.0000000001); got != int64(6) {
		t.Errorf("formatNumber(6.0000000001) = %v (%T), want int64 6", got, got)
	}
	if got := formatNumber(2.5); got != 2.5 {
		t.Errorf("formatNumber(2.5) = %v, want 2.5", got)
	}
}
