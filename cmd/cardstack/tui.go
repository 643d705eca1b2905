package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cardstack/internal/config"
	"cardstack/internal/stack"
	"cardstack/internal/trace"
	"cardstack/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// shutdownTimeout bounds the final trace flush.
const shutdownTimeout = 5 * time.Second

// newTraceManager creates the session trace manager, exporting over OTLP
// when an endpoint is configured.
func newTraceManager(ctx context.Context, c *config.Config) (*trace.Manager, error) {
	exporter, err := trace.NewOTLPExporter(ctx, c.ExporterConfig())
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		logger.Info("exporting sessions", zap.String("endpoint", c.Trace.OTLPEndpoint))
	}
	return trace.NewManager(c.Trace.MaxSessions, exporter), nil
}

// shutdownTraces flushes the exporter and reports any export failure.
func shutdownTraces(m *trace.Manager) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := m.LastExportError()
	if err != nil {
		err = fmt.Errorf("exporting session: %w", err)
	}
	return multierr.Append(err, m.Shutdown(ctx))
}

func sessionAttrs(c *config.Config, mode string, cards int) map[string]string {
	return map[string]string{
		"mode":          mode,
		"visible_count": strconv.Itoa(c.VisibleCount),
		"cards":         strconv.Itoa(cards),
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	traces, err := newTraceManager(ctx, cfg)
	if err != nil {
		return err
	}

	cards := cfg.Deck()
	obs := stack.NewTracingObserver(traces, "cardstack", sessionAttrs(cfg, "tui", len(cards)))
	app := ui.NewAppModel(ui.Options{
		Cards:        cards,
		VisibleCount: cfg.VisibleCount,
		SettleDelay:  cfg.SettleDelay,
		Params:       cfg.Params(),
		Scale: ui.CellScale{
			PointsPerCol: cfg.Container.PointsPerCol,
			PointsPerRow: cfg.Container.PointsPerRow,
		},
		Container: cfg.ContainerSize(),
		Observer:  stack.NewMultiObserver(logger, obs),
		Logger:    logger,
		Traces:    traces,
		TraceID:   obs.TraceID(),
	})
	logger.Info("session started", zap.String("trace_id", obs.TraceID()), zap.Int("cards", len(cards)))

	p := tea.NewProgram(app.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, runErr := p.Run()
	if runErr != nil {
		runErr = fmt.Errorf("running program: %w", runErr)
	}

	app.Swipe.Controller.Close()
	st := app.Swipe.Controller.State()
	logger.Info("session ended",
		zap.Int("swiped", app.Swipe.Swipes),
		zap.Int("remaining", st.Remaining()))

	return multierr.Append(runErr, shutdownTraces(traces))
}
