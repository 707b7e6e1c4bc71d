package navigation

import "github.com/turmadocricas/cricas/internal/model"

// Action is what a key press asks the page to do.
type Action int

const (
	ActionNone Action = iota
	ActionShowSection
	ActionPreviousSlide
	ActionNextSlide
	ActionDismiss
)

// Command is a resolved key press.
type Command struct {
	Action  Action
	Section model.Section // set for ActionShowSection
}

var digitSections = []struct {
	key     string
	section model.Section
}{
	{"1", model.SectionHome},
	{"2", model.SectionRanking},
	{"3", model.SectionMembers},
	{"4", model.SectionRules},
	{"5", model.SectionCountdown},
	{"6", model.SectionJobs},
}

// Key names as reported by KeyboardEvent.key.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
)

// Keys returns every key that has a binding.
func Keys() []string {
	keys := make([]string, 0, len(digitSections)+3)
	for _, d := range digitSections {
		keys = append(keys, d.key)
	}
	return append(keys, KeyArrowLeft, KeyArrowRight, KeyEscape)
}

// ShortcutFor returns the digit that selects sec.
func ShortcutFor(sec model.Section) string {
	for _, d := range digitSections {
		if d.section == sec {
			return d.key
		}
	}
	return ""
}

// Resolve maps a key press to a command given the active section. Arrows only
// page the carousel while the members section is active. ok is false for keys
// that do nothing.
func Resolve(key string, active model.Section) (cmd Command, ok bool) {
	for _, d := range digitSections {
		if d.key == key {
			return Command{Action: ActionShowSection, Section: d.section}, true
		}
	}
	switch key {
	case KeyArrowLeft:
		if active == model.SectionMembers {
			return Command{Action: ActionPreviousSlide}, true
		}
	case KeyArrowRight:
		if active == model.SectionMembers {
			return Command{Action: ActionNextSlide}, true
		}
	case KeyEscape:
		return Command{Action: ActionDismiss}, true
	}
	return Command{}, false
}
