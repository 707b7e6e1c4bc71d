package model

// Subject names one of the three graded components.
type Subject string

const (
	SubjectNP1 Subject = "NP1"
	SubjectNP2 Subject = "NP2"
	SubjectPIM Subject = "PIM"
)

// OptionalGrade is a component grade that may be marked as not yet known.
type OptionalGrade struct {
	Value   float64 `json:"value"`
	Unknown bool    `json:"unknown"`
}

// Known returns a known grade with the given value.
func Known(v float64) OptionalGrade {
	return OptionalGrade{Value: v}
}

// UnknownGrade returns a grade marked as unknown.
func UnknownGrade() OptionalGrade {
	return OptionalGrade{Unknown: true}
}

// GradeInput is one submission of the grade calculator.
type GradeInput struct {
	NP1 OptionalGrade `json:"np1"`
	NP2 OptionalGrade `json:"np2"`
	PIM OptionalGrade `json:"pim"`
}

// ResultKind tags the variant of a GradeResult.
type ResultKind string

const (
	ResultAllKnownApproved        ResultKind = "all_known_approved"
	ResultAllKnownNeedsExam       ResultKind = "all_known_needs_exam"
	ResultOneUnknownImpossible    ResultKind = "one_unknown_impossible"
	ResultOneUnknownExamExcessive ResultKind = "one_unknown_exam_excessive"
	ResultOneUnknownAlreadyPass   ResultKind = "one_unknown_already_passing"
	ResultOneUnknownNeeded        ResultKind = "one_unknown_needed"
	ResultTooManyUnknown          ResultKind = "too_many_unknown"
)

// GradeResult is the calculator verdict. Only the fields relevant to Kind are set:
// Average for the all-known kinds, Needed for AllKnownNeedsExam and OneUnknownNeeded,
// MaxPossible for OneUnknownImpossible, Subject for OneUnknownNeeded.
// The numbers are always encoded because 0 is a valid average.
type GradeResult struct {
	Kind        ResultKind `json:"kind"`
	Average     float64    `json:"average"`
	Needed      float64    `json:"needed"`
	MaxPossible float64    `json:"max_possible"`
	Subject     Subject    `json:"subject,omitempty"`
}
