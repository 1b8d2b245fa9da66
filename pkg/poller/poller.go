package poller

import (
	"context"
	"time"
)

// Outcome is the terminal state of a polling run
type Outcome int

const (
	// Done means the check function reported completion
	Done Outcome = iota
	// Canceled means the context was canceled before completion
	Canceled
	// MaxAttemptsReached means the attempt cap was hit without completion
	MaxAttemptsReached
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Canceled:
		return "canceled"
	case MaxAttemptsReached:
		return "max_attempts_reached"
	default:
		return "unknown"
	}
}

// CheckFunc is invoked once per attempt. Returning done stops the poller;
// returning an error stops it immediately.
type CheckFunc func(ctx context.Context, attempt int) (done bool, err error)

// Config controls the polling cadence
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// Poller runs a check function on a fixed interval with an attempt cap.
// The first attempt fires after one interval, matching a status poll that
// starts right after an async operation is kicked off.
type Poller struct {
	interval    time.Duration
	maxAttempts int
}

func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 200
	}
	return &Poller{
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Run blocks until the check completes, errors, the context is canceled,
// or the attempt cap is reached.
func (p *Poller) Run(ctx context.Context, check CheckFunc) (Outcome, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return Canceled, ctx.Err()
		case <-ticker.C:
			done, err := check(ctx, attempt)
			if err != nil {
				return Canceled, err
			}
			if done {
				return Done, nil
			}
		}
	}

	return MaxAttemptsReached, nil
}
