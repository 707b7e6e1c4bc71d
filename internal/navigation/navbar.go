package navigation

// Scroll offsets, in pixels, at which the navbar changes appearance.
const (
	ScrolledThreshold   = 50
	SearchModeThreshold = 200
)

// Navbar is the navbar appearance for a scroll offset.
type Navbar struct {
	Scrolled   bool
	SearchMode bool
	Logo       string
}

// NavbarAt returns the appearance at scrollY. Past SearchModeThreshold the
// compact logo replaces the regular one.
func NavbarAt(scrollY float64, logo, compactLogo string) Navbar {
	switch {
	case scrollY > SearchModeThreshold:
		return Navbar{Scrolled: true, SearchMode: true, Logo: compactLogo}
	case scrollY > ScrolledThreshold:
		return Navbar{Scrolled: true, Logo: logo}
	default:
		return Navbar{Logo: logo}
	}
}
