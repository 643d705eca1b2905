package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"cardstack/internal/config"
	"cardstack/internal/deck"
	"cardstack/internal/geometry"
	"cardstack/internal/gesture"
	"cardstack/internal/stack"
	"cardstack/internal/trace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Rows the view reserves around the card area.
const (
	headerRows = 1
	badgeRows  = 1
)

// Card size relative to the card area.
const (
	cardWidthFraction  = 0.6
	cardHeightFraction = 0.7
	minCardWidth       = 8
	minCardHeight      = 4
)

// AddCardMsg appends a random card.
type AddCardMsg struct{}

// VisibleDeltaMsg moves the visible-count slider by Delta.
type VisibleDeltaMsg struct{ Delta int }

// FlickMsg performs a complete swipe in Direction without the pointer.
type FlickMsg struct{ Direction gesture.Direction }

// CellScale converts terminal cells to points.
type CellScale struct {
	PointsPerCol float64
	PointsPerRow float64
}

// DefaultCellScale approximates a cell twice as tall as it is wide.
var DefaultCellScale = CellScale{PointsPerCol: 8, PointsPerRow: 16}

func (s CellScale) toPoints(x, y int) geometry.Vector {
	return geometry.Vector{DX: float64(x) * s.PointsPerCol, DY: float64(y) * s.PointsPerRow}
}

func (s CellScale) size(cols, rows int) geometry.Size {
	return geometry.Size{Width: float64(cols) * s.PointsPerCol, Height: float64(rows) * s.PointsPerRow}
}

// Options configures a SwipeView.
type Options struct {
	Cards        []deck.Card
	VisibleCount int
	SettleDelay  time.Duration
	Params       geometry.Params // zero value selects geometry.DefaultParams
	Scale        CellScale       // zero value selects DefaultCellScale
	Container    geometry.Size   // used until the first WindowSizeMsg
	Observer     stack.Observer
	Logger       *zap.Logger
	Rand         *rand.Rand // source for added cards; nil uses the global one

	// Traces and TraceID select the session shown by the trace screen.
	// A nil Traces disables the screen.
	Traces  *trace.Manager
	TraceID string
}

// SwipeView renders a card stack and feeds pointer and key input to its
// controller.
type SwipeView struct {
	Controller *stack.Controller[deck.Card]
	Scheduler  *ProgramScheduler
	Tracker    *DragTracker
	Scale      CellScale

	Width   int // terminal size in cells; zero until the first resize
	Height  int
	Reserve int // rows below the view kept free for the parent

	Requested int // slider value, 0..config.MaxVisibleCount
	LastSwipe gesture.Direction
	Swipes    int

	newCard func() deck.Card // test hook
	logger  *zap.Logger
}

// NewSwipeView creates the view and its controller.
func NewSwipeView(opts Options) *SwipeView {
	if opts.Params == (geometry.Params{}) {
		opts.Params = geometry.DefaultParams()
	}
	if opts.Scale.PointsPerCol <= 0 || opts.Scale.PointsPerRow <= 0 {
		opts.Scale = DefaultCellScale
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.VisibleCount == 0 {
		opts.VisibleCount = stack.DefaultVisibleCount
	}
	r := opts.Rand
	v := &SwipeView{
		Scheduler: NewProgramScheduler(),
		Tracker:   NewDragTracker(),
		Scale:     opts.Scale,
		Requested: min(max(opts.VisibleCount, 0), config.MaxVisibleCount),
		newCard:   func() deck.Card { return deck.Random(r) },
		logger:    opts.Logger,
	}
	v.Controller = stack.New(opts.Cards,
		stack.WithVisibleCount(v.Requested),
		stack.WithContainer(opts.Container),
		stack.WithSettleDelay(opts.SettleDelay),
		stack.WithParams(opts.Params),
		stack.WithScheduler(v.Scheduler),
		stack.WithOnSwipe(v.recordSwipe),
		stack.WithObserver(opts.Observer),
		stack.WithLogger(opts.Logger),
	)
	return v
}

// Init implements View.
func (v *SwipeView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *SwipeView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.Width, v.Height = msg.Width, msg.Height
		v.relayout()
	case tea.MouseMsg:
		v.handleMouse(msg)
	case FlickMsg:
		v.flick(msg.Direction)
	case AddCardMsg:
		card := v.newCard()
		v.Controller.Append(card)
		v.logger.Debug("card added", zap.String("label", card.Label), zap.Stringer("id", card.ID))
	case VisibleDeltaMsg:
		v.setRequested(v.Requested + msg.Delta)
	case settleMsg:
		msg.timer.fire()
	}
	return v, v.Scheduler.Drain()
}

// SetReserve changes the rows kept free below the view.
func (v *SwipeView) SetReserve(rows int) {
	if rows == v.Reserve {
		return
	}
	v.Reserve = max(rows, 0)
	v.relayout()
}

func (v *SwipeView) relayout() {
	if v.Width == 0 && v.Height == 0 {
		return
	}
	cols, rows := v.bodySize()
	v.Controller.SetContainer(v.Scale.size(cols, rows))
}

// bodySize returns the card area in cells.
func (v *SwipeView) bodySize() (cols, rows int) {
	if v.Width == 0 && v.Height == 0 {
		c := v.Controller.State().Container
		return int(c.Width / v.Scale.PointsPerCol), int(c.Height / v.Scale.PointsPerRow)
	}
	return v.Width, max(v.Height-headerRows-badgeRows-v.Reserve, 0)
}

func (v *SwipeView) setRequested(n int) {
	n = min(max(n, 0), config.MaxVisibleCount)
	if n == v.Requested {
		return
	}
	v.Requested = n
	v.Controller.SetVisibleCount(n)
	v.logger.Debug("visible count changed", zap.Int("visible_count", n))
}

func (v *SwipeView) recordSwipe(dir gesture.Direction) {
	v.LastSwipe = dir
	v.Swipes++
}

func (v *SwipeView) handleMouse(msg tea.MouseMsg) {
	pos := v.Scale.toPoints(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || v.Tracker.Active() {
			return
		}
		_, rows := v.bodySize()
		if msg.Y < headerRows || msg.Y >= headerRows+rows {
			return
		}
		if v.Controller.BeginDrag() {
			v.Tracker.Begin(pos)
		}
	case tea.MouseActionMotion:
		if v.Tracker.Active() {
			v.Controller.OnDragChanged(v.Tracker.Move(pos))
		}
	case tea.MouseActionRelease:
		if !v.Tracker.Active() {
			return
		}
		translation, predicted := v.Tracker.End(pos)
		v.Controller.OnDragChanged(translation)
		v.Controller.OnDragEnded(predicted)
	}
}

// flick swipes the top card with a predicted translation past the
// container in dir.
func (v *SwipeView) flick(dir gesture.Direction) {
	if !dir.IsSwipe() {
		return
	}
	predicted := gesture.Flick(dir, v.Controller.State().Container)
	if v.Tracker.Active() || !v.Controller.BeginDrag() {
		return
	}
	v.Controller.OnDragChanged(predicted.Scale(0.5))
	v.Controller.OnDragEnded(predicted)
}

// View implements View.
func (v *SwipeView) View() string {
	st := v.Controller.State()
	cols, rows := v.bodySize()

	status := fmt.Sprintf("%d of %d left · visible %d", st.Remaining(), st.Total, v.Requested)
	header := Styles.Title.Render("cardstack") + "  " + Styles.Status.Render(status)

	var body string
	frame := v.Controller.Frame()
	if len(frame) == 0 {
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			Styles.Empty.Render("No more cards · press a to add one"))
	} else {
		body = v.renderFrame(frame, cols, rows)
	}

	var out strings.Builder
	out.WriteString(header)
	if rows > 0 {
		out.WriteString("\n")
		out.WriteString(body)
	}
	out.WriteString("\n")
	out.WriteString(v.badge())
	return out.String()
}

func (v *SwipeView) renderFrame(frame []stack.Slot[deck.Card], cols, rows int) string {
	c := newCanvas(cols, rows)
	baseW := min(max(int(float64(cols)*cardWidthFraction), minCardWidth), cols)
	baseH := min(max(int(float64(rows)*cardHeightFraction), minCardHeight), rows)
	aspect := v.Scale.PointsPerRow / v.Scale.PointsPerCol

	back := slices.Clone(frame)
	slices.SortStableFunc(back, func(a, b stack.Slot[deck.Card]) int {
		return a.Transform.ZIndex - b.Transform.ZIndex
	})
	for _, slot := range back {
		t := slot.Transform
		if t.Opacity <= 0 {
			continue
		}
		c.card(cardShape{
			cx:     float64(cols)/2 + (t.TranslateX+t.DragX)/v.Scale.PointsPerCol,
			cy:     float64(rows)/2 + (t.TranslateY+t.DragY)/v.Scale.PointsPerRow,
			width:  int(math.Round(float64(baseW) * t.ScaleX)),
			height: int(math.Round(float64(baseH) * t.ScaleY)),
			shear:  math.Tan(t.RotationDegrees*math.Pi/180) * aspect,
			color:  slot.Item.Color,
			label:  slot.Item.Label,
		})
	}
	return c.Render()
}

// badge shows the direction of the last swipe.
func (v *SwipeView) badge() string {
	if !v.LastSwipe.IsSwipe() {
		return Styles.Muted.Render("drag a card or use the arrow keys")
	}
	style := Styles.BadgeOther
	if v.LastSwipe == gesture.Right {
		style = Styles.BadgeRight
	}
	return style.Render(v.LastSwipe.Label()) + " " +
		Styles.Muted.Render(fmt.Sprintf("%d swiped", v.Swipes))
}
