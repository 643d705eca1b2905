package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cardstack/internal/config"
	"cardstack/internal/deck"
	"cardstack/internal/geometry"
	"cardstack/internal/gesture"
	"cardstack/internal/sched"
	"cardstack/internal/stack"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var scriptPath string

// simulateCmd replays a gesture script without a terminal.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a scripted list of gestures headlessly",
	Long: `Replays the gestures in a YAML script against a card stack driven by a
manual clock, printing one JSON line per gesture.

Example script:

  cards: [alpha, beta, gamma]
  gestures:
    - predicted: {dx: 400}
    - direction: up
      wait: 100ms
    - translation: {dx: 20}
      predicted: {dx: 40}`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scriptPath, "script", "", "path to the gesture script (required)")
	_ = simulateCmd.MarkFlagRequired("script")
}

// Script is a replayable sequence of gestures.
type Script struct {
	Cards     []string        `yaml:"cards"`     // Labels; empty uses the configured deck
	Container *geometry.Size  `yaml:"container"` // Overrides the configured container
	Gestures  []ScriptGesture `yaml:"gestures"`
}

// ScriptGesture is one drag. Either Predicted or Direction must be set; a
// Direction flicks past the container that way.
type ScriptGesture struct {
	Translation *geometry.Vector  `yaml:"translation"` // Last drag position; defaults to half of Predicted
	Predicted   *geometry.Vector  `yaml:"predicted"`
	Direction   gesture.Direction `yaml:"direction"`
	Wait        time.Duration     `yaml:"wait"` // Clock advance after release; defaults to the settle delay
}

// Outcome is the JSON line printed for one gesture.
type Outcome struct {
	Gesture    int               `json:"gesture"`
	Refused    bool              `json:"refused,omitempty"`
	Direction  gesture.Direction `json:"direction"`
	ShownIndex int               `json:"shown_index"` // Cursor when the gesture ended
	Settled    bool              `json:"settled"`
	NextIndex  int               `json:"next_index"` // Cursor after the wait
	Remaining  int               `json:"remaining"`
}

// ParseScript decodes and checks a script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, g := range s.Gestures {
		if g.Predicted == nil && !g.Direction.IsSwipe() {
			return nil, fmt.Errorf("gestures[%d]: predicted or direction is required", i)
		}
		if g.Wait < 0 {
			return nil, fmt.Errorf("gestures[%d]: wait must not be negative", i)
		}
	}
	if s.Container != nil && (s.Container.Width <= 0 || s.Container.Height <= 0) {
		return nil, errors.New("container size must be positive")
	}
	return &s, nil
}

// predicted returns the predicted end translation for g in container.
func (g ScriptGesture) predicted(container geometry.Size) geometry.Vector {
	if g.Predicted != nil {
		return *g.Predicted
	}
	return gesture.Flick(g.Direction, container)
}

// simulation replays a script with a manual clock.
type simulation struct {
	cfg      *config.Config
	logger   *zap.Logger
	observer stack.Observer
	clock    *sched.Manual
}

// buildDeck returns the script's cards, or the configured deck.
func (s *Script) buildDeck(c *config.Config) []deck.Card {
	if len(s.Cards) == 0 {
		return c.Deck()
	}
	cards := make([]deck.Card, len(s.Cards))
	for i, label := range s.Cards {
		cards[i] = deck.New(label, deck.ColorFor(label))
	}
	return cards
}

// run replays s over cards and writes one Outcome per gesture to w.
func (sim *simulation) run(s *Script, cards []deck.Card, w io.Writer) error {
	container := sim.cfg.ContainerSize()
	if s.Container != nil {
		container = *s.Container
	}

	ctrl := stack.New(cards,
		stack.WithVisibleCount(sim.cfg.VisibleCount),
		stack.WithContainer(container),
		stack.WithSettleDelay(sim.cfg.SettleDelay),
		stack.WithParams(sim.cfg.Params()),
		stack.WithScheduler(sim.clock),
		stack.WithObserver(sim.observer),
		stack.WithLogger(sim.logger),
	)
	defer ctrl.Close()

	enc := json.NewEncoder(w)
	for i, g := range s.Gestures {
		out := Outcome{Gesture: i + 1}
		predicted := g.predicted(container)
		if ctrl.BeginDrag() {
			translation := predicted.Scale(0.5)
			if g.Translation != nil {
				translation = *g.Translation
			}
			ctrl.OnDragChanged(translation)
			out.ShownIndex = ctrl.State().ShownIndex
			out.Direction = ctrl.OnDragEnded(predicted)
		} else {
			out.Refused = true
			out.ShownIndex = ctrl.State().ShownIndex
		}

		wait := g.Wait
		if wait == 0 {
			wait = sim.cfg.SettleDelay
		}
		out.Settled = sim.clock.Advance(wait) > 0

		st := ctrl.State()
		out.NextIndex = st.ShownIndex
		out.Remaining = st.Remaining()
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("writing outcome: %w", err)
		}
	}
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	script, err := ParseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}

	traces, err := newTraceManager(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	cards := script.buildDeck(cfg)
	obs := stack.NewTracingObserver(traces, "cardstack-simulate", sessionAttrs(cfg, "simulate", len(cards)))
	sim := &simulation{
		cfg:      cfg,
		logger:   logger,
		observer: stack.NewMultiObserver(logger, obs),
		clock:    sched.NewManual(time.Now()),
	}
	runErr := sim.run(script, cards, cmd.OutOrStdout())
	logger.Info("simulation finished",
		zap.String("script", scriptPath),
		zap.Int("gestures", len(script.Gestures)),
		zap.String("trace_id", obs.TraceID()))
	return multierr.Append(runErr, shutdownTraces(traces))
}
