// Package clipboard places rendered policies on the system clipboard and
// tracks which policy was copied most recently. The copied flag clears itself
// after a short delay; a newer copy replaces both the flag and its timer.
package clipboard

import (
	"context"
	"sync"
	"time"

	sysclip "github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// DefaultResetAfter is how long the copied flag stays set.
const DefaultResetAfter = 2 * time.Second

// systemWriteAll is swapped in tests.
var systemWriteAll = sysclip.WriteAll

// Option configures a Copier.
type Option func(*Copier)

// WithWriter replaces the system clipboard writer.
func WithWriter(write func(string) error) Option {
	return func(c *Copier) {
		if write != nil {
			c.write = write
		}
	}
}

// WithLogger sets the logger used for copy failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResetAfter overrides DefaultResetAfter.
func WithResetAfter(d time.Duration) Option {
	return func(c *Copier) {
		if d > 0 {
			c.resetAfter = d
		}
	}
}

// Copier writes HTML to the clipboard. It is safe for concurrent use; the
// reset timer fires on its own goroutine.
type Copier struct {
	mu         sync.Mutex
	write      func(string) error
	logger     *zap.Logger
	resetAfter time.Duration

	copied string
	gen    uint64
	timer  *time.Timer
}

// New constructs a Copier backed by the system clipboard.
func New(opts ...Option) *Copier {
	c := &Copier{
		write:      systemWriteAll,
		logger:     zap.NewNop(),
		resetAfter: DefaultResetAfter,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Available reports whether the system clipboard has a usable backend.
func Available() bool {
	return !sysclip.Unsupported
}

// Copy writes html to the clipboard and flags id as copied. Failures are
// logged and reported as false; they never change the copied flag.
func (c *Copier) Copy(ctx context.Context, id, html string) bool {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("clipboard copy cancelled", zap.String("policy", id), zap.Error(err))
			return false
		}
	}
	if err := c.write(html); err != nil {
		c.logger.Error("clipboard copy failed", zap.String("policy", id), zap.Error(err))
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.copied = id
	c.timer = time.AfterFunc(c.resetAfter, func() { c.expire(gen) })
	c.logger.Debug("policy copied", zap.String("policy", id), zap.Int("bytes", len(html)))
	return true
}

func (c *Copier) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.copied = ""
	c.timer = nil
}

// Copied returns the id flagged as copied, or "" once the flag has reset.
func (c *Copier) Copied() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// IsCopied reports whether id is the currently flagged policy.
func (c *Copier) IsCopied(id string) bool {
	return id != "" && c.Copied() == id
}

// Close stops a pending reset and clears the flag.
func (c *Copier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.copied = ""
}
