package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/turmadocricas/cricas/internal/countdown"
	"github.com/turmadocricas/cricas/internal/grade"
	"github.com/turmadocricas/cricas/internal/handler/views"
	appI18n "github.com/turmadocricas/cricas/internal/i18n"
	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/page"
	"github.com/turmadocricas/cricas/internal/ticker"
)

// clock drives the countdown command. Tests replace it.
var clock ticker.Clock = ticker.System{}

func gradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Compute the semester average or the grade still needed",
		Long: `Compute the semester average from NP1, NP2 and PIM.
Leave one grade out (or pass "?") to find what it must be for a 7 average.`,
		Example: "  cricas grade --np1 6.5 --np2 8\n  cricas grade --np1 7 --np2 7 --pim 7 --output json",
		Args:    cobra.NoArgs,
		RunE:    runGrade,
	}
	f := cmd.Flags()
	f.String("np1", "", "NP1 grade (empty or ? when unknown)")
	f.String("np2", "", "NP2 grade (empty or ? when unknown)")
	f.String("pim", "", "PIM grade (empty or ? when unknown)")
	f.StringP("lang", "l", "pt-BR", "Message language (pt-BR, en)")
	f.StringP("output", "o", "text", "Output format (text, json)")
	addLogFlags(f)
	return cmd
}

func countdownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Print the time left until NP2",
		Args:  cobra.NoArgs,
		RunE:  runCountdown,
	}
	f := cmd.Flags()
	f.BoolP("follow", "f", false, "Keep printing every second until NP2 starts")
	f.StringP("lang", "l", "pt-BR", "Message language (pt-BR, en)")
	f.StringP("output", "o", "text", "Output format (text, json)")
	addCountdownFlags(f)
	addLogFlags(f)
	return cmd
}

// cliGrade reads a grade flag. Unlike the web form, a blank value marks the
// grade as unknown, since an omitted flag has no checkbox next to it.
func cliGrade(s string) model.OptionalGrade {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return model.UnknownGrade()
	}
	return model.Known(grade.ParseGrade(s))
}

func langContext(ctx context.Context, lang string) (context.Context, error) {
	if err := appI18n.Init(lang); err != nil {
		return nil, fmt.Errorf("init i18n: %w", err)
	}
	return appI18n.WithLang(ctx, lang), nil
}

func checkOutputFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

func runGrade(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format := strings.ToLower(v.GetString("output"))
	if err := checkOutputFormat(format); err != nil {
		return err
	}
	ctx, err := langContext(cmd.Context(), v.GetString("lang"))
	if err != nil {
		return err
	}

	in := model.GradeInput{
		NP1: cliGrade(v.GetString("np1")),
		NP2: cliGrade(v.GetString("np2")),
		PIM: cliGrade(v.GetString("pim")),
	}
	res := grade.Calculate(in)
	report := model.GradeReport{Input: in, Result: res, Message: views.VerdictText(ctx, res)}

	w := cmd.OutOrStdout()
	if format == "json" {
		return writeJSONReport(w, report)
	}
	_, err = fmt.Fprintln(w, report.Message)
	return err
}

func runCountdown(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format := strings.ToLower(v.GetString("output"))
	if err := checkOutputFormat(format); err != nil {
		return err
	}
	cfg, err := siteConfig(v)
	if err != nil {
		return err
	}
	ctx, err := langContext(cmd.Context(), v.GetString("lang"))
	if err != nil {
		return err
	}

	target := countdown.Target(clock.Now(), cfg.CountdownMonth, cfg.CountdownDay, cfg.Location)
	w := cmd.OutOrStdout()
	var writeErr error
	timer := countdown.NewTimer(target, func(r countdown.Remaining) {
		if writeErr != nil {
			return
		}
		writeErr = writeCountdown(ctx, w, format, target, r)
	})

	if !v.GetBool("follow") {
		timer.Step(clock.Now())
		return writeErr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	step := func(now time.Time) (time.Duration, bool) {
		next, done := timer.Step(now)
		return next, done || writeErr != nil
	}
	if err := ticker.Run(ctx, clock, step); err != nil && ctx.Err() == nil {
		return err
	}
	return writeErr
}

func writeCountdown(ctx context.Context, w io.Writer, format string, target time.Time, r countdown.Remaining) error {
	msg := views.CountdownMessage(ctx, page.Countdown{Target: target, Remaining: r})
	days, hours, minutes, seconds := r.Digits()
	if format == "json" {
		return writeJSONReport(w, model.CountdownReport{
			Target:   target,
			Days:     days,
			Hours:    hours,
			Minutes:  minutes,
			Seconds:  seconds,
			Finished: r.Finished,
			Message:  msg,
		})
	}
	_, err := fmt.Fprintf(w, "%sd %s:%s:%s  %s\n", days, hours, minutes, seconds, msg)
	return err
}

func writeJSONReport(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)
	return nil
}
