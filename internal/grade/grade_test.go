package grade

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/turmadocricas/cricas/internal/model"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestCalculate(t *testing.T) {
	known := model.Known
	unknown := model.UnknownGrade()

	tests := []struct {
		name string
		in   model.GradeInput
		want model.GradeResult
	}{
		{
			"all tens approved",
			model.GradeInput{NP1: known(10), NP2: known(10), PIM: known(10)},
			model.GradeResult{Kind: model.ResultAllKnownApproved, Average: 10},
		},
		{
			"exactly seven approved",
			model.GradeInput{NP1: known(7), NP2: known(7), PIM: known(7)},
			model.GradeResult{Kind: model.ResultAllKnownApproved, Average: 7},
		},
		{
			"needs exam",
			model.GradeInput{NP1: known(5), NP2: known(6), PIM: known(4)},
			model.GradeResult{Kind: model.ResultAllKnownNeedsExam, Average: 5, Needed: 5},
		},
		{
			"needs exam rounded",
			model.GradeInput{NP1: known(6), NP2: known(6), PIM: known(7)},
			model.GradeResult{Kind: model.ResultAllKnownNeedsExam, Average: 19.0 / 3, Needed: 3.7},
		},
		{
			"missing PIM needed",
			model.GradeInput{NP1: known(8), NP2: known(8), PIM: unknown},
			model.GradeResult{Kind: model.ResultOneUnknownNeeded, Needed: 5, Subject: model.SubjectPIM},
		},
		{
			"missing NP1 needed",
			model.GradeInput{NP1: unknown, NP2: known(6), PIM: known(7)},
			model.GradeResult{Kind: model.ResultOneUnknownNeeded, Needed: 8, Subject: model.SubjectNP1},
		},
		{
			"missing NP2 needed",
			model.GradeInput{NP1: known(9), NP2: unknown, PIM: known(9.5)},
			model.GradeResult{Kind: model.ResultOneUnknownNeeded, Needed: 2.5, Subject: model.SubjectNP2},
		},
		{
			"missing one impossible",
			model.GradeInput{NP1: known(5), NP2: known(5), PIM: unknown},
			model.GradeResult{Kind: model.ResultOneUnknownImpossible, MaxPossible: 20.0 / 3},
		},
		{
			"missing one already passing",
			model.GradeInput{NP1: known(10.5), NP2: unknown, PIM: known(10.5)},
			model.GradeResult{Kind: model.ResultOneUnknownAlreadyPass},
		},
		{
			"missing one needs exactly ten",
			model.GradeInput{NP1: known(5), NP2: known(6), PIM: unknown},
			model.GradeResult{Kind: model.ResultOneUnknownNeeded, Needed: 10, Subject: model.SubjectPIM},
		},
		{
			"two unknown",
			model.GradeInput{NP1: unknown, NP2: unknown, PIM: known(10)},
			model.GradeResult{Kind: model.ResultTooManyUnknown},
		},
		{
			"all unknown",
			model.GradeInput{NP1: unknown, NP2: unknown, PIM: unknown},
			model.GradeResult{Kind: model.ResultTooManyUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Calculate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateAllKnownProperties(t *testing.T) {
	for np1 := 0.0; np1 <= 10; np1 += 0.5 {
		for np2 := 0.0; np2 <= 10; np2 += 0.5 {
			for pim := 0.0; pim <= 10; pim += 0.5 {
				got := Calculate(model.GradeInput{NP1: model.Known(np1), NP2: model.Known(np2), PIM: model.Known(pim)})
				average := (np1 + np2 + pim) / 3
				if got.Average != average {
					t.Fatalf("(%v,%v,%v) average = %v, want %v", np1, np2, pim, got.Average, average)
				}
				approved := got.Kind == model.ResultAllKnownApproved
				if approved != (average >= PassingAverage) {
					t.Fatalf("(%v,%v,%v) kind = %s with average %v", np1, np2, pim, got.Kind, average)
				}
				if approved {
					continue
				}
				if got.Needed != Round1(10-average) {
					t.Fatalf("(%v,%v,%v) needed = %v, want %v", np1, np2, pim, got.Needed, Round1(10-average))
				}
				if got.Needed <= 0 || got.Needed > 10 {
					t.Fatalf("(%v,%v,%v) needed %v outside (0,10]", np1, np2, pim, got.Needed)
				}
			}
		}
	}
}

func TestCalculateOneUnknownImpossibleIffMaxBelowSeven(t *testing.T) {
	for a := 0.0; a <= 10; a += 0.25 {
		for b := 0.0; b <= 10; b += 0.25 {
			got := Calculate(model.GradeInput{NP1: model.Known(a), NP2: model.UnknownGrade(), PIM: model.Known(b)})
			maxPossible := (a + b + 10) / 3
			impossible := got.Kind == model.ResultOneUnknownImpossible
			if impossible != (maxPossible < PassingAverage) {
				t.Fatalf("(%v,?,%v) kind = %s with max possible %v", a, b, got.Kind, maxPossible)
			}
			if impossible && got.MaxPossible != maxPossible {
				t.Fatalf("(%v,?,%v) max possible = %v, want %v", a, b, got.MaxPossible, maxPossible)
			}
		}
	}
}

// A missing component needing more than 10 always leaves the best possible
// average below 7, so the impossible verdict wins and the excessive one is
// never produced.
func TestCalculateNeverReportsExamExcessive(t *testing.T) {
	for a := 0.0; a <= 10; a += 0.1 {
		for b := 0.0; b <= 10; b += 0.1 {
			inputs := []model.GradeInput{
				{NP1: model.UnknownGrade(), NP2: model.Known(a), PIM: model.Known(b)},
				{NP1: model.Known(a), NP2: model.UnknownGrade(), PIM: model.Known(b)},
				{NP1: model.Known(a), NP2: model.Known(b), PIM: model.UnknownGrade()},
			}
			for _, in := range inputs {
				if got := Calculate(in); got.Kind == model.ResultOneUnknownExamExcessive {
					t.Fatalf("Calculate(%+v).Kind = %s", in, got.Kind)
				}
			}
		}
	}
}

func TestCalculateTwoUnknownIgnoresThird(t *testing.T) {
	for _, v := range []float64{0, 3.3, 7, 10} {
		inputs := []model.GradeInput{
			{NP1: model.UnknownGrade(), NP2: model.UnknownGrade(), PIM: model.Known(v)},
			{NP1: model.UnknownGrade(), NP2: model.Known(v), PIM: model.UnknownGrade()},
			{NP1: model.Known(v), NP2: model.UnknownGrade(), PIM: model.UnknownGrade()},
		}
		for _, in := range inputs {
			if got := Calculate(in); got.Kind != model.ResultTooManyUnknown {
				t.Errorf("Calculate(%+v).Kind = %s, want %s", in, got.Kind, model.ResultTooManyUnknown)
			}
		}
	}
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"7.5", 7.5},
		{" 8 ", 8},
		{"10", 10},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{"1e400", 0},
		{"7,5", 7},
		{"8abc", 8},
		{".5", 0.5},
		{"+4.5 pts", 4.5},
		{"9.", 9},
		{"1e1", 10},
		{"-", 0},
	}
	for _, tt := range tests {
		if got := ParseGrade(tt.in); got != tt.want {
			t.Errorf("ParseGrade(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOptional(t *testing.T) {
	if got := ParseOptional("9", true); !got.Unknown {
		t.Errorf("ParseOptional with unknown flag = %+v, want unknown", got)
	}
	if got := ParseOptional("9", false); got.Unknown || got.Value != 9 {
		t.Errorf("ParseOptional(9) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5.0"},
		{20.0 / 3, "6.7"},
		{3.65, "3.6"},
		{10, "10.0"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		in       model.GradeResult
		wantID   string
		wantData map[string]any
	}{
		{model.GradeResult{Kind: model.ResultAllKnownApproved, Average: 10}, "GradeApproved", map[string]any{"Average": "10.0"}},
		{model.GradeResult{Kind: model.ResultAllKnownNeedsExam, Average: 5, Needed: 5}, "GradeNeedsExam", map[string]any{"Average": "5.0", "Needed": "5.0"}},
		{model.GradeResult{Kind: model.ResultOneUnknownImpossible, MaxPossible: 20.0 / 3}, "GradeImpossible", map[string]any{"MaxPossible": "6.7"}},
		{model.GradeResult{Kind: model.ResultOneUnknownExamExcessive}, "GradeExcessive", nil},
		{model.GradeResult{Kind: model.ResultOneUnknownAlreadyPass}, "GradeAlreadyPassing", nil},
		{model.GradeResult{Kind: model.ResultOneUnknownNeeded, Needed: 5, Subject: model.SubjectPIM}, "GradeNeeded", map[string]any{"Needed": "5.0", "Subject": "PIM"}},
		{model.GradeResult{Kind: model.ResultTooManyUnknown}, "GradeTooManyUnknown", nil},
	}
	for _, tt := range tests {
		id, data := Message(tt.in)
		if id != tt.wantID {
			t.Errorf("Message(%s) id = %q, want %q", tt.in.Kind, id, tt.wantID)
		}
		if diff := cmp.Diff(tt.wantData, data); diff != "" {
			t.Errorf("Message(%s) data mismatch (-want +got):\n%s", tt.in.Kind, diff)
		}
	}
}
