package handler

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/turmadocricas/cricas/internal/i18n"
	"github.com/turmadocricas/cricas/internal/metrics"
	"github.com/turmadocricas/cricas/internal/model"
)

var testNow = time.Date(2025, time.November, 14, 23, 0, 0, 0, time.UTC)

func testContent() model.Content {
	return model.Content{
		Title:         "Turma do Cricas",
		Logo:          "Turma do Cricas",
		LogoCompact:   "Turminha do Cricas",
		Headlines:     []string{"Bar"},
		Members:       []model.Member{{Name: "Bia"}, {Name: "Duda"}, {Name: "Léo"}},
		FloatingIcons: []string{"📚"},
	}
}

type testServer struct {
	router  chi.Router
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, basePath string, opts ...Option) *testServer {
	t.Helper()
	if err := i18n.Init("pt-BR"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	m := metrics.New()
	cfg := model.SiteConfig{
		BasePath:         basePath,
		SlideWidth:       320,
		AutoplayInterval: 4 * time.Second,
		Location:         time.UTC,
		Particles:        3,
	}
	opts = append([]Option{
		WithMetrics(m),
		WithClock(func() time.Time { return testNow }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}, opts...)
	h, err := New(testContent(), cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Use(i18n.Middleware)
	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			sub.Use(h.BasePathMiddleware)
			h.Routes(sub)
		})
	} else {
		r.Use(h.BasePathMiddleware)
		h.Routes(r)
	}
	return &testServer{router: r, metrics: m}
}

func (s *testServer) do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, wants ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(http.MethodGet, "/?section=members&slide=2", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	assertBody(t, rec,
		"<!DOCTYPE html>",
		`<section id="members" class="section active">`,
		"translateX(-640px)",
		`class="particle"`,
	)
	if n := strings.Count(rec.Body.String(), `class="particle"`); n != 3 {
		t.Errorf("particles = %d, want 3", n)
	}
}

func TestIndexLanguage(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(http.MethodGet, "/?lang=en", nil, false)
	assertBody(t, rec, `<html lang="en">`, ">Members <kbd>")

	rec = s.do(http.MethodGet, "/", nil, false)
	assertBody(t, rec, `<html lang="pt-BR">`, ">Membros <kbd>")
}

func TestSectionSwitch(t *testing.T) {
	s := newTestServer(t, "")
	form := url.Values{"section": {"home"}, "menu": {"true"}}
	rec := s.do(http.MethodPost, "/app/section/members", form, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertBody(t, rec,
		`<div id="app"`,
		`name="section" value="members"`,
		`name="menu" value="false"`,
		`<section id="home" class="section" hidden>`,
	)
	if got := rec.Header().Get("HX-Reswap"); got != "outerHTML show:#members:top" {
		t.Errorf("HX-Reswap = %q", got)
	}
	if got := rec.Header().Get("HX-Replace-Url"); got != "/?section=members" {
		t.Errorf("HX-Replace-Url = %q", got)
	}
	if got := testutil.ToFloat64(s.metrics.SectionViews.WithLabelValues("members")); got != 1 {
		t.Errorf("section views = %v", got)
	}
}

func TestSectionSwitchUnknown(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(http.MethodPost, "/app/section/nope", url.Values{"section": {"rules"}}, true)
	assertBody(t, rec, `name="section" value="rules"`)
	if got := rec.Header().Get("HX-Reswap"); got != "" {
		t.Errorf("HX-Reswap = %q, want none", got)
	}
}

func TestSectionSwitchWithoutHTMXRedirects(t *testing.T) {
	s := newTestServer(t, "/cricas")
	rec := s.do(http.MethodPost, "/cricas/app/section/jobs", url.Values{}, false)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/cricas/?section=jobs" {
		t.Errorf("Location = %q", got)
	}
}

func TestKeyboard(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		name  string
		form  url.Values
		code  int
		wants []string
	}{
		{"digit", url.Values{"key": {"5"}}, http.StatusOK, []string{`name="section" value="countdown"`}},
		{"unbound", url.Values{"key": {"x"}}, http.StatusNoContent, nil},
		{"arrow outside members", url.Values{"key": {"ArrowRight"}}, http.StatusNoContent, nil},
		{"arrow in members", url.Values{"key": {"ArrowRight"}, "section": {"members"}, "slide": {"2"}}, http.StatusOK,
			[]string{`name="slide" value="0"`}},
		{"escape", url.Values{"key": {"Escape"}, "overlay": {"calculator"}, "menu": {"true"}}, http.StatusOK,
			[]string{`name="overlay" value=""`, `name="menu" value="false"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/app/key", tt.form, true)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			assertBody(t, rec, tt.wants...)
		})
	}
}

func TestMenuAndOverlays(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(http.MethodPost, "/app/menu", url.Values{}, true)
	assertBody(t, rec, `class="nav-links open"`, `aria-expanded="true"`)

	rec = s.do(http.MethodPost, "/app/overlay/date-info", url.Values{}, true)
	assertBody(t, rec, `id="date-info" role="dialog"`, "15 de Novembro de 2025")

	rec = s.do(http.MethodPost, "/app/overlay/bogus", url.Values{}, true)
	if strings.Contains(rec.Body.String(), `role="dialog"`) {
		t.Error("unknown overlay opened")
	}

	rec = s.do(http.MethodPost, "/app/overlay/close", url.Values{"overlay": {"calculator"}}, true)
	if strings.Contains(rec.Body.String(), `role="dialog"`) {
		t.Error("overlay still open after close")
	}
}

func TestCarousel(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		name   string
		path   string
		form   url.Values
		code   int
		offset string
	}{
		{"next wraps", "/carousel/next", url.Values{"slide": {"2"}}, http.StatusOK, "translateX(0px)"},
		{"prev wraps", "/carousel/prev", url.Values{"slide": {"0"}}, http.StatusOK, "translateX(-640px)"},
		{"tick advances", "/carousel/tick", url.Values{"slide": {"0"}}, http.StatusOK, "translateX(-320px)"},
		{"tick paused on hover", "/carousel/tick", url.Values{"hovered": {"true"}}, http.StatusNoContent, ""},
		{"tick paused when hidden", "/carousel/tick", url.Values{"hidden": {"true"}}, http.StatusNoContent, ""},
		{"goto", "/carousel/goto/1", url.Values{}, http.StatusOK, "translateX(-320px)"},
		{"goto out of range", "/carousel/goto/9", url.Values{"slide": {"2"}}, http.StatusOK, "translateX(-640px)"},
		{"goto invalid", "/carousel/goto/x", url.Values{}, http.StatusBadRequest, ""},
		{"unknown action", "/carousel/spin", url.Values{}, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, tt.path, tt.form, true)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if tt.offset != "" {
				assertBody(t, rec, `<div id="carousel"`, tt.offset)
			}
		})
	}
}

func TestTypingFrames(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(http.MethodGet, "/typing?typing_text=0&typing_char=0", nil, true)
	assertBody(t, rec, `hx-trigger="load delay:100ms"`, `name="typing_char" value="1"`, ">B<span")

	rec = s.do(http.MethodGet, "/typing?typing_char=2", nil, true)
	assertBody(t, rec, `hx-trigger="load delay:2000ms"`, `name="typing_deleting" value="true"`, ">Bar<span")
}

func TestCountdownFragment(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(http.MethodGet, "/countdown", nil, true)
	assertBody(t, rec, `<div id="countdown"`, `hx-trigger="every 1s"`, ">00<", ">01<")
}

func TestCountdownFinished(t *testing.T) {
	s := newTestServer(t, "", WithClock(func() time.Time { return testNow.Add(48 * time.Hour) }))
	rec := s.do(http.MethodGet, "/countdown", nil, true)
	if strings.Contains(rec.Body.String(), "hx-trigger") {
		t.Error("finished countdown still polls")
	}
	assertBody(t, rec, "A NP2 já aconteceu!")
}

func TestNavbarScroll(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(http.MethodPost, "/navbar/scroll", url.Values{"scroll": {"250"}}, true)
	assertBody(t, rec,
		`class="navbar scrolled search-mode"`,
		"Turminha do Cricas",
		`id="floating-icons" class="floating-icons" aria-hidden="true" hx-swap-oob="true"`,
		"translateY(-125px) rotate(25deg)",
	)
}

func TestNavbarScrollIgnoresNonFiniteOffsets(t *testing.T) {
	s := newTestServer(t, "")
	for _, scroll := range []string{"NaN", "Inf", "-Inf", "-40"} {
		rec := s.do(http.MethodPost, "/navbar/scroll", url.Values{"scroll": {scroll}}, true)
		assertBody(t, rec, `class="navbar"`, `name="scroll" value="0"`)
		if body := rec.Body.String(); strings.Contains(body, "NaN") || strings.Contains(body, "Inf") {
			t.Errorf("scroll=%s leaked into the markup: %s", scroll, body)
		}
	}
}

func TestCalculator(t *testing.T) {
	s := newTestServer(t, "")
	form := url.Values{"np1": {"5"}, "np2": {"5"}, "pim_unknown": {"true"}}

	rec := s.do(http.MethodPost, "/calculator", form, true)
	assertBody(t, rec, "verdict-one_unknown_impossible", "Mesmo tirando 10, sua média seria 6.7.")
	if strings.Contains(rec.Body.String(), "<html") {
		t.Error("htmx calculator returned a full page")
	}

	rec = s.do(http.MethodPost, "/calculator", url.Values{"np1": {"abc"}, "np2": {""}, "pim": {"7"}}, false)
	assertBody(t, rec, "<!DOCTYPE html>", `id="calculator" role="dialog"`, "Sua média é 2.3. Você precisa de 7.7 no exame.")

	got := testutil.ToFloat64(s.metrics.GradeVerdicts.WithLabelValues(string(model.ResultOneUnknownImpossible)))
	if got != 1 {
		t.Errorf("impossible verdicts = %v", got)
	}
}

func TestAPIGrade(t *testing.T) {
	s := newTestServer(t, "")
	body := `{"np1":{"value":8},"np2":{"value":6},"pim":{"unknown":true}}`
	req := httptest.NewRequest(http.MethodPost, "/api/grade?lang=en", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var got model.GradeReport
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := model.GradeReport{
		Input: model.GradeInput{NP1: model.Known(8), NP2: model.Known(6), PIM: model.UnknownGrade()},
		Result: model.GradeResult{
			Kind:    model.ResultOneUnknownNeeded,
			Needed:  7,
			Subject: model.SubjectPIM,
		},
		Message: "You need 7.0 on PIM to reach a 7 average.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIGradeKeepsZeroAverage(t *testing.T) {
	s := newTestServer(t, "")
	body := `{"np1":{"value":0},"np2":{"value":0},"pim":{"value":0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/grade?lang=en", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var raw struct {
		Result map[string]any `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"kind":         string(model.ResultAllKnownNeedsExam),
		"average":      0.0,
		"needed":       10.0,
		"max_possible": 0.0,
	}
	if diff := cmp.Diff(want, raw.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIGradeRejectsBadBody(t *testing.T) {
	s := newTestServer(t, "")
	for _, body := range []string{"not json", `{"np4":{"value":1}}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/grade", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d", body, rec.Code)
		}
	}
}

func TestAPIGradeRateLimit(t *testing.T) {
	s := newTestServer(t, "", WithAPI(APIConfig{AllowedOrigins: []string{"*"}, Rate: 1, Burst: 1}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/grade", strings.NewReader(`{}`))
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec.Code
	}
	if got := send(); got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", got)
	}
}

func TestAPIGradeCORS(t *testing.T) {
	s := newTestServer(t, "", WithAPI(APIConfig{AllowedOrigins: []string{"https://example.com"}}))
	req := httptest.NewRequest(http.MethodOptions, "/api/grade", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestNewRejectsBadAPIConfig(t *testing.T) {
	if _, err := New(testContent(), model.SiteConfig{}, WithAPI(APIConfig{Rate: 2})); err == nil {
		t.Error("New accepted a rate without burst")
	}
}

func TestHealthStaticAndMetrics(t *testing.T) {
	s := newTestServer(t, "/cricas")

	rec := s.do(http.MethodGet, "/cricas/healthz", nil, false)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body)
	}

	rec = s.do(http.MethodGet, "/cricas/static/site.css", nil, false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".carousel-track") {
		t.Errorf("static = %d", rec.Code)
	}

	rec = s.do(http.MethodGet, "/cricas/metrics", nil, false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "# TYPE") {
		t.Errorf("metrics = %d", rec.Code)
	}
}
