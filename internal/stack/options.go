package stack

import (
	"time"

	"cardstack/internal/geometry"
	"cardstack/internal/gesture"
	"cardstack/internal/sched"

	"go.uber.org/zap"
)

// DefaultVisibleCount is the number of cards shown when no option overrides it.
const DefaultVisibleCount = 4

// DefaultSettleDelay matches the duration of the outward removal animation.
// The cursor must not advance before the departing card has left the frame.
const DefaultSettleDelay = 300 * time.Millisecond

// options holds the non-generic construction settings.
type options struct {
	visibleCount int
	container    geometry.Size
	settleDelay  time.Duration
	params       geometry.Params
	scheduler    sched.Scheduler
	onSwipe      func(gesture.Direction)
	observer     Observer
	logger       *zap.Logger
}

func defaultOptions() options {
	return options{
		visibleCount: DefaultVisibleCount,
		settleDelay:  DefaultSettleDelay,
		params:       geometry.DefaultParams(),
		scheduler:    sched.Real{},
		observer:     NoopObserver{},
		logger:       zap.NewNop(),
	}
}

// Option configures a Controller.
type Option func(*options)

// WithVisibleCount sets how many cards are stacked. Values below 1 are
// clamped to 1.
func WithVisibleCount(n int) Option {
	return func(o *options) { o.visibleCount = n }
}

// WithContainer sets the initial container size used for swipe thresholds
// and stacking offsets.
func WithContainer(size geometry.Size) Option {
	return func(o *options) { o.container = size }
}

// WithSettleDelay sets the delay between a swipe and the cursor advance.
// Non-positive values keep the default.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.settleDelay = d
		}
	}
}

// WithParams overrides the stacking constants.
func WithParams(p geometry.Params) Option {
	return func(o *options) { o.params = p }
}

// WithScheduler sets the scheduler used for the settle step. The scheduler
// must not run the callback before AfterFunc returns.
func WithScheduler(s sched.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithOnSwipe registers the host callback fired once per completed swipe.
func WithOnSwipe(fn func(gesture.Direction)) Option {
	return func(o *options) { o.onSwipe = fn }
}

// WithObserver registers a lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
