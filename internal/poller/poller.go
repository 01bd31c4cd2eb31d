package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

const (
	defaultInterval = 15 * time.Second
	checkTimeout    = 3 * time.Second
	maxFailures     = 3
)

// ErrNotReady is returned by Ready while the dependency is failing.
var ErrNotReady = errors.New("dependency not ready")

// CheckFunc probes a backing dependency such as the database.
type CheckFunc func(ctx context.Context) error

// Poller runs a health check on an interval and caches the outcome so
// readiness probes never block on the dependency.
type Poller struct {
	name     string
	check    CheckFunc
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the checked dependency.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the check has succeeded and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Poller. A non-positive interval uses the default.
func New(name string, check CheckFunc, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		name:     name,
		check:    check,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "health poller started", "check", p.name, slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.checkOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "health poller stopped", "check", p.name)
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "health poller stopped", "check", p.name)
				return
			case <-p.ticker.C:
				p.checkOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Ready returns nil while the cached status is healthy. Before the first
// poll it runs the check inline.
func (p *Poller) Ready(ctx context.Context) error {
	st := p.Status()
	if st.LastAttempt.IsZero() {
		if p.check == nil {
			return nil
		}
		return p.check(ctx)
	}
	if st.IsReady() {
		return nil
	}
	if st.LastError != "" {
		return errors.Join(ErrNotReady, errors.New(st.LastError))
	}
	return ErrNotReady
}

func (p *Poller) checkOnce(ctx context.Context) {
	if p.check == nil {
		p.recordSuccess(p.now())
		return
	}
	start := p.now()
	p.recordAttempt(start)

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	err := p.check(checkCtx)
	cancel()

	if err != nil {
		// parent cancellation is shutdown, not a failing dependency
		if ctx.Err() != nil {
			return
		}
		failures := p.recordFailure(err, start)
		if failures == maxFailures {
			logging.Error(p.logger, "health check failing", err, "check", p.name, logging.FieldCount, failures)
		} else {
			logging.Warn(p.logger, "health check failed", "check", p.name, "error", err)
		}
		return
	}

	if prev := p.Status(); prev.ConsecutiveFailures >= maxFailures {
		logging.Info(p.logger, "health check recovered", "check", p.name)
	}
	p.recordSuccess(start)
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastAttempt = at
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) int {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
	p.status.LastAttempt = at
	return p.status.ConsecutiveFailures
}

// Status returns a snapshot of the recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
