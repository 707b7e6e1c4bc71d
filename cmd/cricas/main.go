package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata" // time zones for --timezone on hosts without a zoneinfo database

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/turmadocricas/cricas/internal/carousel"
	"github.com/turmadocricas/cricas/internal/content"
	"github.com/turmadocricas/cricas/internal/countdown"
	"github.com/turmadocricas/cricas/internal/effects"
	"github.com/turmadocricas/cricas/internal/handler"
	appI18n "github.com/turmadocricas/cricas/internal/i18n"
	"github.com/turmadocricas/cricas/internal/metrics"
	"github.com/turmadocricas/cricas/internal/model"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cricas",
		Short: "Turma do Cricas website and grade tools",
	}

	serve := serveCmd()
	root.AddCommand(serve, gradeCmd(), countdownCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `cricas --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("lang", "l", "pt-BR", "Default UI language (pt-BR, en)")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /cricas)")
	f.StringP("content", "c", "", "Site content YAML file (empty for the built-in content)")
	f.Int("slide-width", carousel.DefaultSlideWidth, "Carousel card width plus gap, in pixels")
	f.Duration("autoplay-interval", carousel.DefaultInterval, "Carousel autoplay period")
	f.Int("particles", effects.DefaultParticles, "Number of background particles")
	f.StringSlice("cors-origins", []string{"*"}, "Origins allowed to call the grade API")
	f.Float64("api-rate", 5, "Grade API requests per second per client (0 disables limiting)")
	f.Int("api-burst", 10, "Grade API burst size")
	addCountdownFlags(f)
	addLogFlags(f)
	return cmd
}

func addLogFlags(f *pflag.FlagSet) {
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	f.String("log-file", "", "Also write logs to this file, rotated by size")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if path := v.GetString("log-file"); path != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(out, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(out, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("CRICAS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("cricas")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/cricas")
	v.AddConfigPath("/etc/cricas")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// normalizeBasePath trims trailing slashes and ensures a leading one.
func normalizeBasePath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// siteConfig reads the site parameters shared by serve and countdown.
func siteConfig(v *viper.Viper) (model.SiteConfig, error) {
	month := v.GetInt("countdown-month")
	if month < 1 || month > 12 {
		return model.SiteConfig{}, fmt.Errorf("countdown-month %d out of range 1-12", month)
	}
	day := v.GetInt("countdown-day")
	if day < 1 || day > 31 {
		return model.SiteConfig{}, fmt.Errorf("countdown-day %d out of range 1-31", day)
	}
	loc := time.Local
	if tz := v.GetString("timezone"); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			return model.SiteConfig{}, fmt.Errorf("load timezone: %w", err)
		}
	}
	return model.SiteConfig{
		Lang:             v.GetString("lang"),
		BasePath:         normalizeBasePath(v.GetString("base-path")),
		SlideWidth:       v.GetInt("slide-width"),
		AutoplayInterval: v.GetDuration("autoplay-interval"),
		CountdownMonth:   time.Month(month),
		CountdownDay:     day,
		Location:         loc,
		Particles:        v.GetInt("particles"),
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	cfg, err := siteConfig(v)
	if err != nil {
		return err
	}

	site, err := content.Load(v.GetString("content"))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	m := metrics.New()
	h, err := handler.New(site, cfg,
		handler.WithMetrics(m),
		handler.WithAPI(handler.APIConfig{
			AllowedOrigins: v.GetStringSlice("cors-origins"),
			Rate:           rate.Limit(v.GetFloat64("api-rate")),
			Burst:          v.GetInt("api-burst"),
		}),
	)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)
	r.Use(appI18n.Middleware)

	basePath := cfg.BasePath
	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			sub.Use(h.BasePathMiddleware)
			h.Routes(sub)
		})
		r.Get(basePath, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, basePath+"/", http.StatusMovedPermanently)
		})
	} else {
		r.Use(h.BasePathMiddleware)
		h.Routes(r)
	}

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting server",
		"addr", addr,
		"lang", lang,
		"base_path", basePath,
		"members", len(site.Members),
		"countdown", fmt.Sprintf("%02d-%02d", cfg.CountdownMonth, cfg.CountdownDay),
		"timezone", cfg.Location.String(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func addCountdownFlags(f *pflag.FlagSet) {
	f.Int("countdown-month", int(countdown.DefaultMonth), "Month of the NP2 exam (1-12)")
	f.Int("countdown-day", countdown.DefaultDay, "Day of the NP2 exam")
	f.String("timezone", "", "IANA time zone of the NP2 date (empty for local time)")
}
