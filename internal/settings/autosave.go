package settings

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Saver persists settings.
type Saver interface {
	TrySave() error
}

// AutosaveOption configures an Autosaver.
type AutosaveOption func(*Autosaver)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) AutosaveOption {
	return func(a *Autosaver) {
		a.clock = clock
	}
}

// Autosaver coalesces change notifications into at most one save per
// interval. It runs on the caller's goroutine and never saves in the
// background; call Flush before exit to write a pending change.
type Autosaver struct {
	saver   Saver
	limiter *rate.Limiter
	clock   func() time.Time
	logger  *zap.Logger
	pending bool
}

// NewAutosaver creates an Autosaver. A non-positive interval saves on every change.
func NewAutosaver(saver Saver, interval time.Duration, logger *zap.Logger, opts ...AutosaveOption) *Autosaver {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	a := &Autosaver{
		saver:   saver,
		limiter: rate.NewLimiter(limit, 1),
		clock:   time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Touch records a change and saves it if the interval since the previous
// save has elapsed. Otherwise the change stays pending.
func (a *Autosaver) Touch() error {
	a.pending = true
	if !a.limiter.AllowN(a.clock(), 1) {
		a.logger.Debug("autosave deferred")
		return nil
	}
	return a.save()
}

// Flush saves a pending change immediately.
func (a *Autosaver) Flush() error {
	if !a.pending {
		return nil
	}
	return a.save()
}

// Pending reports whether a change has not been saved yet.
func (a *Autosaver) Pending() bool {
	return a.pending
}

func (a *Autosaver) save() error {
	if err := a.saver.TrySave(); err != nil {
		a.logger.Error("autosave failed", zap.Error(err))
		return err
	}
	a.pending = false
	return nil
}
