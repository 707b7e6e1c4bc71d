// Package carousel holds the member carousel state machine.
package carousel

// DefaultSlideWidth is a 300px card plus a 20px gap.
const DefaultSlideWidth = 320

// Frame is what a renderer needs to draw the carousel.
type Frame struct {
	Index      int
	Total      int
	Offset     int // translateX in pixels
	Indicators []bool
}

// Renderer is notified after every change of the current slide.
type Renderer interface {
	RenderCarousel(Frame)
}

// Controller tracks the current slide of a fixed set of cards.
// A controller over zero cards ignores every operation.
type Controller struct {
	index      int
	total      int
	slideWidth int
	renderer   Renderer
}

// Option configures a Controller.
type Option func(*Controller)

// WithSlideWidth overrides DefaultSlideWidth.
func WithSlideWidth(px int) Option {
	return func(c *Controller) {
		if px > 0 {
			c.slideWidth = px
		}
	}
}

// WithRenderer attaches a renderer. The initial frame is rendered immediately.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// New creates a controller over total cards, positioned at start.
// A start outside [0,total) falls back to the first card.
func New(total, start int, opts ...Option) *Controller {
	if total < 0 {
		total = 0
	}
	c := &Controller{total: total, slideWidth: DefaultSlideWidth}
	for _, opt := range opts {
		opt(c)
	}
	if start >= 0 && start < total {
		c.index = start
	}
	c.render()
	return c
}

// Enabled reports whether there is anything to page through.
func (c *Controller) Enabled() bool { return c.total > 0 }

// Index returns the current slide.
func (c *Controller) Index() int { return c.index }

// Total returns the number of slides.
func (c *Controller) Total() int { return c.total }

// Next advances one slide, wrapping from the last to the first.
func (c *Controller) Next() {
	if !c.Enabled() {
		return
	}
	c.index = (c.index + 1) % c.total
	c.render()
}

// Previous goes back one slide, wrapping from the first to the last.
func (c *Controller) Previous() {
	if !c.Enabled() {
		return
	}
	c.index = (c.index - 1 + c.total) % c.total
	c.render()
}

// GoTo jumps to slide i, as an indicator click does. Out-of-range i is ignored.
func (c *Controller) GoTo(i int) {
	if i < 0 || i >= c.total {
		return
	}
	c.index = i
	c.render()
}

// Frame returns the current frame.
func (c *Controller) Frame() Frame {
	indicators := make([]bool, c.total)
	if c.Enabled() {
		indicators[c.index] = true
	}
	return Frame{
		Index:      c.index,
		Total:      c.total,
		Offset:     -c.index * c.slideWidth,
		Indicators: indicators,
	}
}

func (c *Controller) render() {
	if c.renderer == nil || !c.Enabled() {
		return
	}
	c.renderer.RenderCarousel(c.Frame())
}
