package model

import "time"

// GradeReport is the JSON structure written by `cricas grade --output json`
// and returned by the grade API.
type GradeReport struct {
	Input   GradeInput  `json:"input"`
	Result  GradeResult `json:"result"`
	Message string      `json:"message"`
}

// CountdownReport is the JSON structure written by `cricas countdown --output json`.
type CountdownReport struct {
	Target   time.Time `json:"target"`
	Days     string    `json:"days"`
	Hours    string    `json:"hours"`
	Minutes  string    `json:"minutes"`
	Seconds  string    `json:"seconds"`
	Finished bool      `json:"finished"`
	Message  string    `json:"message"`
}
