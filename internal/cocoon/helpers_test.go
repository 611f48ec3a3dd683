package cocoon

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"cocoon/internal/types"
)

// recorder collects creature calls in the order they happen.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// probe is a creature that reports to a recorder.
type probe struct {
	name string
	rec  *recorder
}

func (p *probe) Greet()              { p.rec.add("greet " + p.name) }
func (p *probe) Move(to types.Point) { p.rec.add("move " + p.name + " " + to.String()) }

type probeCreator struct {
	rec   *recorder
	calls atomic.Int32
}

func newProbeCreator() *probeCreator {
	return &probeCreator{rec: &recorder{}}
}

func (c *probeCreator) Create() *probe {
	n := c.calls.Add(1)
	return &probe{name: fmt.Sprintf("p%d", n), rec: c.rec}
}

// lockedBuffer is a bytes.Buffer safe for concurrent writers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimRight(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
