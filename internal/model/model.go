package model

import (
	"context"
	"time"
)

// Section identifies one of the page's top-level views.
type Section string

const (
	SectionHome      Section = "home"
	SectionRanking   Section = "ranking"
	SectionMembers   Section = "members"
	SectionRules     Section = "rules"
	SectionJobs      Section = "jobs"
	SectionCountdown Section = "countdown"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionHome,
	SectionRanking,
	SectionMembers,
	SectionRules,
	SectionJobs,
	SectionCountdown,
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Overlay identifies a modal dialog.
type Overlay string

const (
	OverlayNone       Overlay = ""
	OverlayDateInfo   Overlay = "date-info"
	OverlayCalculator Overlay = "calculator"
)

// Valid reports whether o names a known overlay (OverlayNone included).
func (o Overlay) Valid() bool {
	switch o {
	case OverlayNone, OverlayDateInfo, OverlayCalculator:
		return true
	}
	return false
}

// TypingState is the position of the headline typewriter.
type TypingState struct {
	Text     int  `json:"text"`
	Char     int  `json:"char"`
	Deleting bool `json:"deleting"`
}

// ViewState is the complete UI state a browser carries between requests.
// The server keeps none of it.
type ViewState struct {
	Section  Section
	Slide    int
	Overlay  Overlay
	MenuOpen bool
	Typing   TypingState
	ScrollY  float64
}

// DefaultViewState is the state of a freshly loaded page.
func DefaultViewState() ViewState {
	return ViewState{Section: SectionHome}
}

// Member is a card in the members carousel.
type Member struct {
	Name     string `yaml:"name" json:"name"`
	Nickname string `yaml:"nickname" json:"nickname"`
	Role     string `yaml:"role" json:"role"`
	Emoji    string `yaml:"emoji" json:"emoji"`
	Quote    string `yaml:"quote" json:"quote"`
}

// RankingEntry is a row in the NP1 ranking table.
type RankingEntry struct {
	Name  string  `yaml:"name" json:"name"`
	Score float64 `yaml:"score" json:"score"`
	Note  string  `yaml:"note" json:"note"`
}

// Job is a chore assignment listed in the jobs section.
type Job struct {
	Title    string `yaml:"title" json:"title"`
	Assignee string `yaml:"assignee" json:"assignee"`
}

// Content is the editable text of the site.
type Content struct {
	Title         string         `yaml:"title"`
	Logo          string         `yaml:"logo"`
	LogoCompact   string         `yaml:"logo_compact"`
	Headlines     []string       `yaml:"headlines"`
	Members       []Member       `yaml:"members"`
	Ranking       []RankingEntry `yaml:"ranking"`
	Rules         []string       `yaml:"rules"`
	Jobs          []Job          `yaml:"jobs"`
	FloatingIcons []string       `yaml:"floating_icons"`
}

// SiteConfig holds runtime parameters set via CLI flags, env or config file.
type SiteConfig struct {
	Lang             string
	BasePath         string        // URL prefix for sub-path deployments (e.g. "/cricas")
	SlideWidth       int           // carousel card width plus gap, in pixels
	AutoplayInterval time.Duration // carousel autoplay period
	CountdownMonth   time.Month
	CountdownDay     int
	Location         *time.Location
	Particles        int
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}
