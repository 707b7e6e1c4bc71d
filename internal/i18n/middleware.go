package i18n

import (
	"net/http"
	"strings"
	"time"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language choice.
	LangCookieName = "cricas_lang"
)

// ResolveLang picks the language for a request: the lang query parameter,
// then the language cookie, then Accept-Language. The bool reports whether
// the choice came from the query and should be remembered.
func ResolveLang(r *http.Request) (string, bool) {
	if q := strings.TrimSpace(r.URL.Query().Get(LangParam)); q != "" {
		return Match(q).String(), true
	}
	if c, err := r.Cookie(LangCookieName); err == nil && c.Value != "" {
		return Match(c.Value).String(), false
	}
	return Match(r.Header.Get("Accept-Language")).String(), false
}

// Middleware injects a localizer for the negotiated language into every request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, persist := ResolveLang(r)
		if persist {
			http.SetCookie(w, &http.Cookie{
				Name:     LangCookieName,
				Value:    lang,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := WithLocalizer(r.Context(), NewLocalizer(lang))
		ctx = withLang(ctx, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
