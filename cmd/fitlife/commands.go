package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/fitlife/internal/api"
	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/logging"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/refresh"
	"github.com/verte-zerg/fitlife/internal/stats"
	"github.com/verte-zerg/fitlife/internal/validate"
)

const (
	defaultHistoryTrend = 3
	defaultBarWidth     = 40
)

var (
	historyLast  int
	historyTrend int
	historyPlot  bool

	watchInterval time.Duration

	logWeightDate string

	bmiRemote bool
)

// headless bundles what every non-dashboard command needs.
type headless struct {
	cfg    model.Config
	log    *logrus.Logger
	client *api.Client
}

func newHeadless(cmd *cobra.Command) (*headless, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.Stderr(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &headless{cfg: cfg, log: logger, client: newClient(cfg, logger)}, nil
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show current progress toward the goal weight",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	surface := display.NewMemory()
	r := refresh.New(h.client, surface, refresh.WithLogger(h.log))
	snap, err := r.Refresh(commandContext(cmd))
	if err != nil {
		if api.IsStatus(err, http.StatusBadRequest) {
			return fmt.Errorf("not enough data for progress, save a profile and log a weight first: %w", err)
		}
		return fmt.Errorf("failed to refresh progress: %w", err)
	}
	return printProgress(cmd.OutOrStdout(), surface, snap, barWidth())
}

func printProgress(w io.Writer, surface *display.Memory, snap model.ProgressSnapshot, width int) error {
	rows := []struct {
		label string
		slot  display.Slot
		unit  string
	}{
		{"Peso atual", display.SlotCurrentWeight, " kg"},
		{"Peso perdido", display.SlotWeightLost, " kg"},
		{"Peso restante", display.SlotWeightRemaining, " kg"},
		{"Concluído", display.SlotPercentComplete, "%"},
	}
	lines := make([]string, 0, len(rows)+3)
	for _, row := range rows {
		v, ok := surface.Value(row.slot)
		lines = append(lines, fmt.Sprintf("%-14s %s", row.label+":", format.Optional(v, ok, 1, row.unit)))
	}
	if pct, ok := surface.Value(display.SlotProgressBar); ok {
		bar := progress.New(progress.WithSolidFill("#3FA34D"), progress.WithWidth(width))
		lines = append(lines, bar.ViewAs(validate.Clamp(pct, 0, 100)/100))
	}
	switch {
	case snap.GoalReached != nil && *snap.GoalReached:
		lines = append(lines, "Meta atingida!")
	case snap.TimeEstimate != nil:
		lines = append(lines, fmt.Sprintf("Previsão da meta: %s (~%s semanas)",
			format.Date(snap.TimeEstimate.EstimatedDate), format.Number(snap.TimeEstimate.Weeks, 1)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func barWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultBarWidth
	}
	return max(10, min(60, width-2))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the weight history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to the last N weigh-ins")
	cmd.Flags().IntVar(&historyTrend, "trend", defaultHistoryTrend, "moving average window for the chart")
	cmd.Flags().BoolVar(&historyPlot, "plot", true, "draw the trend chart")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyTrend < 1 {
		return fmt.Errorf("--trend must be >= 1")
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	report := stats.BuildReport(commandContext(cmd), h.client, historyLast, historyTrend)
	return printHistory(cmd.OutOrStdout(), report, historyPlot)
}

func printHistory(w io.Writer, report stats.Report, plot bool) error {
	if err := stats.RenderSummary(w, report.Summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if len(report.Entries) == 0 {
		return nil
	}
	if err := stats.RenderHistoryTable(w, report.Entries); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if !plot || len(report.Trend) < 2 {
		return nil
	}
	var buf bytes.Buffer
	if err := stats.PlotWeights(&buf, "\nTendência "+stats.Sparkline(report.Trend), report.Trend, 0, 0); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := io.Copy(w, &buf); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print progress on a fixed interval until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runWatchCmd,
	}
	cmd.Flags().DurationVar(&watchInterval, "interval", defaultRefresh, "refresh interval")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	if watchInterval < time.Second {
		return fmt.Errorf("--interval must be at least 1s")
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface := display.NewMemory()
	out := cmd.OutOrStdout()
	var mu sync.Mutex
	poller := refresh.NewPoller(refresh.New(h.client, surface, refresh.WithLogger(h.log)), watchInterval, h.cfg.Timeout, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		line := progressLine(surface)
		if err != nil {
			line += "  (falha ao atualizar)"
		}
		_, _ = fmt.Fprintf(out, "%s  %s\n", time.Now().Format("15:04:05"), line)
	})
	if err := poller.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	poller.Stop()
	return nil
}

func progressLine(surface *display.Memory) string {
	value := func(slot display.Slot, unit string) string {
		v, ok := surface.Value(slot)
		return format.Optional(v, ok, 1, unit)
	}
	return fmt.Sprintf("atual %s  perdido %s  restante %s  %s",
		value(display.SlotCurrentWeight, " kg"),
		value(display.SlotWeightLost, " kg"),
		value(display.SlotWeightRemaining, " kg"),
		value(display.SlotPercentComplete, "%"),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newLogWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log-weight <kg>",
		Short: "Record a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogWeightCmd,
	}
	cmd.Flags().StringVar(&logWeightDate, "date", "", "date of the weigh-in (YYYY-MM-DD, default today)")
	return cmd
}

func runLogWeightCmd(cmd *cobra.Command, args []string) error {
	weight, ok := validate.ParseNumber(args[0])
	if !ok {
		return fmt.Errorf("invalid weight %q", args[0])
	}
	if !validate.IsValidWeight(weight) {
		return fmt.Errorf("weight must be between %.0f and %.0f kg", model.MinWeightKg, model.MaxWeightKg)
	}
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	ack, err := h.client.AddWeight(commandContext(cmd), model.WeightInput{Weight: weight, Date: strings.TrimSpace(logWeightDate)})
	if err != nil {
		return fmt.Errorf("failed to add weight: %w", err)
	}
	return printAck(cmd.OutOrStdout(), ack, "Peso registrado.")
}

func newDeleteWeightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-weight <date>",
		Short: "Delete the weigh-in recorded on a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteWeightCmd,
	}
}

func runDeleteWeightCmd(cmd *cobra.Command, args []string) error {
	h, err := newHeadless(cmd)
	if err != nil {
		return err
	}
	ack, err := h.client.DeleteWeight(commandContext(cmd), strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("failed to delete weight: %w", err)
	}
	return printAck(cmd.OutOrStdout(), ack, "Registro removido.")
}

func printAck(w io.Writer, ack model.Ack, fallback string) error {
	msg := ack.Message
	if msg == "" {
		msg = fallback
	}
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newBMICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bmi <kg> <m>",
		Short: "Calculate the body mass index",
		Args:  cobra.ExactArgs(2),
		RunE:  runBMICmd,
	}
	cmd.Flags().BoolVar(&bmiRemote, "remote", false, "ask the server for the classification")
	return cmd
}

func runBMICmd(cmd *cobra.Command, args []string) error {
	weight, okWeight := validate.ParseNumber(args[0])
	height, okHeight := validate.ParseNumber(args[1])
	if !okWeight || !validate.IsValidWeight(weight) {
		return fmt.Errorf("weight must be between %.0f and %.0f kg", model.MinWeightKg, model.MaxWeightKg)
	}
	if !okHeight || !validate.IsValidHeight(height) {
		return fmt.Errorf("height must be between %.1f and %.1f m", model.MinHeightM, model.MaxHeightM)
	}
	out := cmd.OutOrStdout()
	lines := []string{"IMC: " + format.Number(validate.CalculateBMI(weight, height), format.DefaultDecimals)}
	if bmiRemote {
		h, err := newHeadless(cmd)
		if err != nil {
			return err
		}
		res, err := h.client.CalculateIMC(commandContext(cmd), model.BMIInput{Weight: weight, Height: height})
		if err != nil {
			return fmt.Errorf("failed to calculate IMC: %w", err)
		}
		lines = append(lines, "Classificação: "+res.Classification)
		if res.Description != "" {
			lines = append(lines, res.Description)
		}
	}
	lines = append(lines, tooltipLines("IMC")...)
	return writeLines(out, lines)
}

func tooltipLines(label string) []string {
	tips := format.Tooltip(label)
	out := make([]string, 0, len(tips))
	for _, tip := range tips {
		out = append(out, "  ⓘ "+tip)
	}
	return out
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
