// Package cocoon implements a placeholder that stands in for a creature
// which does not exist yet.
//
// A Cocoon arms a one-shot timer when it is built. Until the timer fires the
// cocoon remembers a single rally point (the most recent Move) and ignores
// Greet. When the timer fires the creator hatches the real creature, which
// greets once and then walks to the remembered rally point. From then on the
// cocoon forwards every call to the creature.
//
// The timer callback only holds a weak reference to the cocoon. A cocoon that
// every owner has dropped never hatches, and its timer is stopped when the
// garbage collector reclaims it.
package cocoon

import (
	"runtime"
	"sync"
	"time"
	"weak"

	"cocoon/internal/logging"
	"cocoon/internal/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle stage of a cocoon.
type State string

const (
	StatePending   State = "pending"   // timer armed, no creature yet
	StateCreated   State = "created"   // creature hatched; calls are forwarded
	StateCancelled State = "cancelled" // timer stopped before it fired; never hatches
)

// Option configures a Cocoon.
type Option func(*options)

type options struct {
	scheduler Scheduler
	logger    *zap.Logger
	id        string
}

// WithScheduler replaces the wall-clock scheduler, mostly for tests.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithID names the cocoon in log output. A random UUID is used otherwise.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// Cocoon stands in for a creature of type C until its creator produces one.
// It satisfies types.Creature itself.
type Cocoon[C types.Creature] struct {
	mu       sync.Mutex
	id       string
	interval time.Duration
	creator  types.Creator[C]
	creature C
	state    State
	rally    *types.Point
	timer    Timer
	hatched  chan struct{}
	done     chan struct{}
	logger   *zap.Logger
}

// New builds a pending cocoon and arms its creation timer.
func New[C types.Creature](interval time.Duration, creator types.Creator[C], opts ...Option) *Cocoon[C] {
	o := options{scheduler: RealScheduler}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Get(logging.CategoryCocoon)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	c := &Cocoon[C]{
		id:       o.id,
		interval: interval,
		creator:  creator,
		state:    StatePending,
		hatched:  make(chan struct{}),
		done:     make(chan struct{}),
		logger:   o.logger.With(zap.String("cocoon", o.id)),
	}

	// The callback must not capture c, or the pending timer would keep it alive.
	ref := weak.Make(c)
	logger := c.logger
	timer := o.scheduler.AfterFunc(interval, func() {
		self := ref.Value()
		if self == nil {
			logger.Debug("cocoon collected before hatching")
			return
		}
		self.hatch()
	})

	c.mu.Lock()
	c.timer = timer
	c.mu.Unlock()

	runtime.AddCleanup(c, func(t Timer) { t.Stop() }, timer)

	c.logger.Debug("cocoon armed", zap.Duration("interval", interval))
	return c
}

// hatch runs when the creation timer fires.
func (c *Cocoon[C]) hatch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePending {
		return
	}

	c.creature = c.creator.Create()
	c.state = StateCreated
	c.timer = nil
	c.logger.Debug("cocoon hatched", zap.Bool("rally_point", c.rally != nil))

	c.creature.Greet()
	if c.rally != nil {
		p := *c.rally
		c.rally = nil
		c.creature.Move(p)
	}

	close(c.hatched)
	close(c.done)
}

// Cancel stops the creation timer. A cancelled cocoon never hatches and its
// rally point is never delivered. Cancel is a no-op once the cocoon has
// hatched or was already cancelled.
//
// Cancellation is decided under the cocoon's lock: if the timer has fired but
// its callback has not yet taken the lock, Cancel still wins.
func (c *Cocoon[C]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePending {
		return
	}

	stopped := false
	if c.timer != nil {
		stopped = c.timer.Stop()
	}
	c.state = StateCancelled
	c.timer = nil
	c.logger.Debug("cocoon cancelled",
		zap.Bool("timer_stopped", stopped),
		zap.Bool("rally_discarded", c.rally != nil))
	c.rally = nil

	close(c.done)
}

// Greet forwards to the creature once it has hatched. Greetings sent to a
// pending cocoon are dropped, not buffered.
func (c *Cocoon[C]) Greet() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCreated {
		c.logger.Debug("greet dropped", zap.String("state", string(c.state)))
		return
	}
	c.creature.Greet()
}

// Move forwards to the creature once it has hatched. Before that, to becomes
// the rally point, replacing any earlier one.
func (c *Cocoon[C]) Move(to types.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateCreated:
		c.creature.Move(to)
	case StatePending:
		if c.rally != nil {
			c.logger.Debug("rally point replaced",
				zap.Stringer("old", *c.rally),
				zap.Stringer("new", to))
		} else {
			c.logger.Debug("rally point buffered", zap.Stringer("point", to))
		}
		p := to
		c.rally = &p
	default:
		c.logger.Debug("move dropped", zap.String("state", string(c.state)))
	}
}

// ID returns the cocoon's log identifier.
func (c *Cocoon[C]) ID() string { return c.id }

// Interval returns the creation delay the cocoon was built with.
func (c *Cocoon[C]) Interval() time.Duration { return c.interval }

// State returns the current lifecycle stage.
func (c *Cocoon[C]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Creature returns the hatched creature, or false while the cocoon is
// pending or after it was cancelled.
func (c *Cocoon[C]) Creature() (C, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creature, c.state == StateCreated
}

// RallyPoint returns the buffered destination, if any.
func (c *Cocoon[C]) RallyPoint() (types.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rally == nil {
		return types.Point{}, false
	}
	return *c.rally, true
}

// Hatched is closed after the creature has hatched and delivered its
// greeting and rally move.
func (c *Cocoon[C]) Hatched() <-chan struct{} { return c.hatched }

// Done is closed when the cocoon leaves the pending state, by hatching or by
// cancellation.
func (c *Cocoon[C]) Done() <-chan struct{} { return c.done }
