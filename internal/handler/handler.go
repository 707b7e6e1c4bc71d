package handler

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/turmadocricas/cricas/internal/effects"
	"github.com/turmadocricas/cricas/internal/handler/views"
	"github.com/turmadocricas/cricas/internal/metrics"
	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/page"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	content model.Content
	config  model.SiteConfig
	api     APIConfig
	metrics *metrics.Metrics
	now     func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// APIConfig configures the JSON grade API.
type APIConfig struct {
	AllowedOrigins []string
	Rate           rate.Limit // requests per second per client, 0 disables limiting
	Burst          int
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics records request and domain counters into m and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithClock replaces the wall clock used by the countdown.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithRand seeds particle placement from rng.
func WithRand(rng *rand.Rand) Option {
	return func(h *Handler) { h.rng = rng }
}

// WithAPI configures CORS and rate limiting of the grade API.
func WithAPI(cfg APIConfig) Option {
	return func(h *Handler) { h.api = cfg }
}

// New creates a new Handler.
func New(c model.Content, cfg model.SiteConfig, opts ...Option) (*Handler, error) {
	h := &Handler{
		content: c,
		config:  cfg,
		api:     APIConfig{AllowedOrigins: []string{"*"}},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.config.Location == nil {
		h.config.Location = time.Local
	}
	if h.api.Rate < 0 || (h.api.Rate > 0 && h.api.Burst < 1) {
		return nil, errors.New("api rate must be non-negative with a burst of at least 1")
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return h, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/healthz", h.handleHealth)
	r.Get("/static/*", h.handleStatic)

	r.Route("/app", func(r chi.Router) {
		r.Post("/section/{id}", h.handleSection)
		r.Post("/menu", h.handleMenu)
		r.Post("/key", h.handleKey)
		r.Post("/overlay/close", h.handleOverlayClose)
		r.Post("/overlay/{name}", h.handleOverlayOpen)
	})

	r.Post("/carousel/goto/{index}", h.handleCarouselGoTo)
	r.Post("/carousel/{action}", h.handleCarousel)
	r.Get("/typing", h.handleTyping)
	r.Get("/countdown", h.handleCountdown)
	r.Post("/navbar/scroll", h.handleNavbarScroll)

	r.Post("/calculator", h.handleCalculator)
	r.Route("/api", func(r chi.Router) {
		r.Use(h.corsMiddleware())
		if h.api.Rate > 0 {
			r.Use(newRateLimiter(h.api.Rate, h.api.Burst).Middleware)
		}
		r.Post("/grade", h.handleAPIGrade)
	})

	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler())
	}
}

// BasePathMiddleware stores the configured base path in the request context
// so views can build prefixed URLs.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// load rebuilds the page from the state the browser sent.
func (h *Handler) load(r *http.Request) *page.Page {
	return page.Load(parseViewState(r), h.content, h.config)
}

func (h *Handler) particles() []effects.Particle {
	n := h.config.Particles
	if n == 0 {
		n = effects.DefaultParticles
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return effects.Particles(n, h.rng)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	h.renderFull(w, r, p, nil)
}

// renderFull renders the whole document for p.
func (h *Handler) renderFull(w http.ResponseWriter, r *http.Request, p *page.Page, verdict *model.GradeResult) {
	render(w, r, views.Layout(views.LayoutData{
		App:       views.AppData{Page: p, Now: h.now(), Verdict: verdict},
		Particles: h.particles(),
	}))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok\n")); err != nil {
		slog.Debug("write health response", "error", err)
	}
}
