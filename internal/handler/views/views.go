// Package views holds the site's templ components and the helpers they share.
package views

//go:generate templ generate

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/turmadocricas/cricas/internal/effects"
	"github.com/turmadocricas/cricas/internal/grade"
	"github.com/turmadocricas/cricas/internal/i18n"
	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/navigation"
	"github.com/turmadocricas/cricas/internal/page"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// stateSelector matches the hidden inputs that carry the view state.
const stateSelector = "[data-state]"

// AppData is what the #app element needs.
type AppData struct {
	Page    *page.Page
	Now     time.Time
	Verdict *model.GradeResult // last calculator verdict, if any
}

// LayoutData is everything the full page needs.
type LayoutData struct {
	App       AppData
	Particles []effects.Particle
}

// TypingFrame is one frame of the headline typewriter.
type TypingFrame struct {
	Shown  string
	Delay  time.Duration // before the next frame is requested
	State  model.TypingState
	Active bool // false when there are no headlines
}

var sectionLabels = map[model.Section]string{
	model.SectionHome:      "NavHome",
	model.SectionRanking:   "NavRanking",
	model.SectionMembers:   "NavMembers",
	model.SectionRules:     "NavRules",
	model.SectionJobs:      "NavJobs",
	model.SectionCountdown: "NavCountdown",
}

var gradeFields = []model.Subject{model.SubjectNP1, model.SubjectNP2, model.SubjectPIM}

// path prefixes p with the deployment base path.
func path(ctx context.Context, p string) string {
	return model.BasePathFromContext(ctx) + p
}

func pageTitle(ctx context.Context, p *page.Page) string {
	if t := p.Content().Title; t != "" {
		return t
	}
	return i18n.T(ctx, "AppTitle")
}

func scrollValue(p *page.Page) string {
	return strconv.FormatFloat(p.State().ScrollY, 'f', -1, 64)
}

// keyTrigger builds the htmx trigger for every bound key, ignoring key presses
// inside form fields.
func keyTrigger() string {
	conds := make([]string, 0, len(navigation.Keys()))
	for _, k := range navigation.Keys() {
		conds = append(conds, "key=='"+k+"'")
	}
	return "keydown[(" + strings.Join(conds, "||") + ")&&!target.closest('input')] from:body"
}

// millis formats d as an htmx time interval.
func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func trackStyle(offset int) string {
	return "transform: translateX(" + strconv.Itoa(offset) + "px)"
}

// FieldName is the form field carrying the grade for s.
func FieldName(s model.Subject) string { return strings.ToLower(string(s)) }

// UnknownFieldName is the checkbox marking s as not yet known.
func UnknownFieldName(s model.Subject) string { return FieldName(s) + "_unknown" }

// VerdictText returns the localized sentence for a calculator result.
func VerdictText(ctx context.Context, r model.GradeResult) string {
	id, data := grade.Message(r)
	return i18n.Td(ctx, id, data)
}

// CountdownMessage is the sentence under the countdown digits.
func CountdownMessage(ctx context.Context, cd page.Countdown) string {
	if cd.Remaining.Finished {
		return i18n.T(ctx, "CountdownFinished")
	}
	return i18n.Td(ctx, "CountdownUpcoming", dateData(ctx, cd))
}

func dateData(ctx context.Context, cd page.Countdown) map[string]any {
	return map[string]any{
		"Day":   cd.Target.Day(),
		"Month": i18n.Month(ctx, cd.Target.Month()),
		"Year":  cd.Target.Year(),
	}
}
