// Package grade implements the semester grade calculator.
//
// The semester average (MS) is the plain mean of NP1, NP2 and PIM. A student
// passes directly with an average of at least 7.0; otherwise the exam grade
// needed is 10 minus the average. With one component still unknown the
// calculator works out what that component must be for the average to reach 7.
package grade

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/turmadocricas/cricas/internal/model"
)

const (
	// PassingAverage is the minimum average that approves without an exam.
	PassingAverage = 7.0
	// MaxGrade is the highest grade a component can get.
	MaxGrade = 10.0

	components = 3
)

// Calculate returns the verdict for the given input.
func Calculate(in model.GradeInput) model.GradeResult {
	slots := []struct {
		subject model.Subject
		grade   model.OptionalGrade
	}{
		{model.SubjectNP1, in.NP1},
		{model.SubjectNP2, in.NP2},
		{model.SubjectPIM, in.PIM},
	}

	var knownSum float64
	var unknown []model.Subject
	for _, s := range slots {
		if s.grade.Unknown {
			unknown = append(unknown, s.subject)
			continue
		}
		knownSum += s.grade.Value
	}

	switch len(unknown) {
	case 0:
		return allKnown(knownSum)
	case 1:
		return oneUnknown(knownSum, unknown[0])
	default:
		return model.GradeResult{Kind: model.ResultTooManyUnknown}
	}
}

func allKnown(sum float64) model.GradeResult {
	average := sum / components
	if average >= PassingAverage {
		return model.GradeResult{Kind: model.ResultAllKnownApproved, Average: average}
	}
	return model.GradeResult{
		Kind:    model.ResultAllKnownNeedsExam,
		Average: average,
		Needed:  Round1(MaxGrade - average),
	}
}

func oneUnknown(knownSum float64, missing model.Subject) model.GradeResult {
	maxPossible := (knownSum + MaxGrade) / components
	neededForSeven := PassingAverage*components - knownSum

	switch {
	case maxPossible < PassingAverage:
		return model.GradeResult{Kind: model.ResultOneUnknownImpossible, MaxPossible: maxPossible}
	case neededForSeven > MaxGrade:
		// Unreachable: neededForSeven > 10 implies maxPossible < 7, which the
		// case above already took. Kept so the verdict set stays complete.
		return model.GradeResult{Kind: model.ResultOneUnknownExamExcessive}
	case neededForSeven <= 0:
		return model.GradeResult{Kind: model.ResultOneUnknownAlreadyPass}
	default:
		return model.GradeResult{
			Kind:    model.ResultOneUnknownNeeded,
			Needed:  neededForSeven,
			Subject: missing,
		}
	}
}

// Round1 rounds x to one decimal place, half away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Format renders x with exactly one decimal place.
func Format(x float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64)
}

// leadingNumber matches the longest decimal number at the start of a field.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseGrade reads a grade typed by a user from the number it starts with, so
// "7,5" reads as 7 and "8abc" as 8. Blank or unparseable input counts as 0.
func ParseGrade(s string) float64 {
	v, err := strconv.ParseFloat(leadingNumber.FindString(strings.TrimSpace(s)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseOptional reads a grade field together with its unknown checkbox.
func ParseOptional(value string, unknown bool) model.OptionalGrade {
	if unknown {
		return model.UnknownGrade()
	}
	return model.Known(ParseGrade(value))
}

// Message returns the translation ID for a verdict and the template data it
// expects. Numbers are already formatted with one decimal.
func Message(r model.GradeResult) (id string, data map[string]any) {
	switch r.Kind {
	case model.ResultAllKnownApproved:
		return "GradeApproved", map[string]any{"Average": Format(r.Average)}
	case model.ResultAllKnownNeedsExam:
		return "GradeNeedsExam", map[string]any{"Average": Format(r.Average), "Needed": Format(r.Needed)}
	case model.ResultOneUnknownImpossible:
		return "GradeImpossible", map[string]any{"MaxPossible": Format(r.MaxPossible)}
	case model.ResultOneUnknownExamExcessive:
		return "GradeExcessive", nil
	case model.ResultOneUnknownAlreadyPass:
		return "GradeAlreadyPassing", nil
	case model.ResultOneUnknownNeeded:
		return "GradeNeeded", map[string]any{"Needed": Format(r.Needed), "Subject": string(r.Subject)}
	default:
		return "GradeTooManyUnknown", nil
	}
}
