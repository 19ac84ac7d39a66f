// Package classify turns the visible text of a quiz page into an
// Instruction: which operation to run and on which column(s).
package classify

import (
	"regexp"
	"strings"
)

// Op is the operation a quiz page asks for.
type Op string

const (
	OpSum         Op = "sum"
	OpMean        Op = "mean"
	OpCorrelation Op = "correlation"
	OpPlot        Op = "plot"
	OpUnknown     Op = "unknown"
)

// Instruction is the classified operation. Column is set for sum/mean;
// X and Y for correlation and (optionally) plot.
type Instruction struct {
	Op     Op
	Column string
	X      string
	Y      string
}

// Column-name capture: letters, digits, spaces, underscores, hyphens and
// parentheses, matched over lower-cased text.
const nameClass = `[a-z0-9 _\-()]+`

var (
	sumRe      = regexp.MustCompile(`sum of (?:the )?"?(` + nameClass + `)"? column`)
	meanRe     = regexp.MustCompile(`(?:mean|average) of (?:the )?"?(` + nameClass + `)"? column`)
	corrRe     = regexp.MustCompile(`correl(?:ation|ate)(?: between)? (` + nameClass + `) (?:and|,) (` + nameClass + `)`)
	plotRe     = regexp.MustCompile(`visual|plot|chart`)
	plotAxesRe = regexp.MustCompile(`x[:=]\s*(` + nameClass + `)[,;]?\s*y[:=]\s*(` + nameClass + `)`)
	looseSumRe = regexp.MustCompile(`sum.*?(` + nameClass + `) column`)
)

// rule pairs a pattern with an Instruction constructor. Rules are evaluated
// in order, first match wins, so they can be unit-tested and reordered in
// isolation.
type rule struct {
	name  string
	re    *regexp.Regexp
	build func(text string, m []string) Instruction
}

var rules = []rule{
	{"sum-of-column", sumRe, func(_ string, m []string) Instruction {
		return Instruction{Op: OpSum, Column: strings.TrimSpace(m[1])}
	}},
	{"mean-of-column", meanRe, func(_ string, m []string) Instruction {
		return Instruction{Op: OpMean, Column: strings.TrimSpace(m[1])}
	}},
	{"correlation", corrRe, func(_ string, m []string) Instruction {
		return Instruction{Op: OpCorrelation, X: strings.TrimSpace(m[1]), Y: strings.TrimSpace(m[2])}
	}},
	{"plot", plotRe, func(text string, _ []string) Instruction {
		instr := Instruction{Op: OpPlot}
		if axes := plotAxesRe.FindStringSubmatch(text); axes != nil {
			instr.X = strings.TrimSpace(axes[1])
			instr.Y = strings.TrimSpace(axes[2])
		}
		return instr
	}},
	{"loose-sum", looseSumRe, func(_ string, m []string) Instruction {
		return Instruction{Op: OpSum, Column: strings.TrimSpace(m[1])}
	}},
}

// Classify lower-cases the text and applies the rules in priority order.
// Deterministic: the same text always yields the same Instruction.
func Classify(text string) Instruction {
	text = strings.ToLower(text)
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			return r.build(text, m)
		}
	}
	return Instruction{Op: OpUnknown}
}
