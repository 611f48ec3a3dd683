package cocoon

import (
	"context"
	"sync"
	"time"

	"cocoon/internal/logging"
	"cocoon/internal/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Brood is a group of cocoons hatching the same creature variant. Greet and
// Move fan out to every member, so a Brood is itself a types.Creature.
type Brood[C types.Creature] struct {
	mu      sync.Mutex
	creator types.Creator[C]
	opts    []Option
	members []*Cocoon[C]
	logger  *zap.Logger
}

// NewBrood creates an empty brood. opts are applied to every spawned cocoon.
func NewBrood[C types.Creature](creator types.Creator[C], opts ...Option) *Brood[C] {
	return &Brood[C]{
		creator: creator,
		opts:    opts,
		logger:  logging.Get(logging.CategoryBrood),
	}
}

// Spawn adds a cocoon that hatches after interval.
func (b *Brood[C]) Spawn(interval time.Duration) *Cocoon[C] {
	c := New(interval, b.creator, b.opts...)

	b.mu.Lock()
	b.members = append(b.members, c)
	n := len(b.members)
	b.mu.Unlock()

	b.logger.Debug("cocoon spawned",
		zap.String("cocoon", c.ID()),
		zap.Duration("interval", interval),
		zap.Int("size", n))
	return c
}

// Members returns a snapshot of the brood's cocoons in spawn order.
func (b *Brood[C]) Members() []*Cocoon[C] {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Cocoon[C], len(b.members))
	copy(out, b.members)
	return out
}

// Len returns the number of cocoons spawned so far.
func (b *Brood[C]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.members)
}

// Greet greets through every member; pending members drop it.
func (b *Brood[C]) Greet() {
	for _, c := range b.Members() {
		c.Greet()
	}
}

// Move rallies every member to the same point.
func (b *Brood[C]) Move(to types.Point) {
	for _, c := range b.Members() {
		c.Move(to)
	}
}

// Cancel cancels every member that has not hatched yet.
func (b *Brood[C]) Cancel() {
	members := b.Members()
	for _, c := range members {
		c.Cancel()
	}
	b.logger.Debug("brood cancelled", zap.Int("size", len(members)))
}

// Counts tallies members by state.
func (b *Brood[C]) Counts() map[State]int {
	counts := make(map[State]int, 3)
	for _, c := range b.Members() {
		counts[c.State()]++
	}
	return counts
}

// Wait blocks until every member has hatched or been cancelled. It returns
// ctx.Err() if the context ends first.
func (b *Brood[C]) Wait(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range b.Members() {
		g.Go(func() error {
			select {
			case <-c.Done():
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	return g.Wait()
}

var _ types.Creature = (*Brood[types.Creature])(nil)
