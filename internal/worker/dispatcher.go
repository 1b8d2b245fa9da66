package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/igabay/booking-api/internal/email"
	"github.com/igabay/booking-api/internal/model"
	"github.com/igabay/booking-api/internal/repository"
	"github.com/igabay/booking-api/pkg/logger"
)

const maxRetries = 3

type DispatcherConfig struct {
	BatchSize    int
	PollInterval time.Duration
	RetryDelay   time.Duration
}

// Dispatcher drains pending notification rows and delivers them. In-app
// rows were already fanned out at creation time; here they are just marked
// sent. Email rows go through the SMTP sender with bounded retries.
type Dispatcher struct {
	repo    repository.NotificationRepository
	sender  email.Sender
	config  DispatcherConfig
	logger  *logger.Logger
	metrics *dispatcherMetrics
}

type dispatcherMetrics struct {
	processed prometheus.Counter
	failed    prometheus.Counter
	latency   prometheus.Histogram
}

var (
	metricsOnce sync.Once
	metricsInst *dispatcherMetrics
)

// newDispatcherMetrics registers once on the default registry; tests may
// construct several dispatchers in one process.
func newDispatcherMetrics() *dispatcherMetrics {
	metricsOnce.Do(func() {
		metricsInst = buildDispatcherMetrics()
	})
	return metricsInst
}

func buildDispatcherMetrics() *dispatcherMetrics {
	return &dispatcherMetrics{
		processed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "dispatcher",
			Name:      "notifications_processed_total",
			Help:      "Total number of notifications delivered",
		}),
		failed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "booking",
			Subsystem: "dispatcher",
			Name:      "notifications_failed_total",
			Help:      "Total number of notification deliveries that failed",
		}),
		latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "booking",
			Subsystem: "dispatcher",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent delivering one notification",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
}

func NewDispatcher(repo repository.NotificationRepository, sender email.Sender, config DispatcherConfig, log *logger.Logger) *Dispatcher {
	if config.BatchSize <= 0 {
		config.BatchSize = 20
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 30 * time.Second
	}

	return &Dispatcher{
		repo:    repo,
		sender:  sender,
		config:  config,
		logger:  log,
		metrics: newDispatcherMetrics(),
	}
}

// Start runs the dispatch loop until the context is canceled
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return
		case <-ticker.C:
			d.processBatch(ctx)
		}
	}
}

func (d *Dispatcher) processBatch(ctx context.Context) {
	pending, err := d.repo.FetchPending(ctx, d.config.BatchSize)
	if err != nil {
		d.logger.Error(err, "failed to fetch pending notifications")
		return
	}

	for _, n := range pending {
		start := time.Now()
		if err := d.dispatch(ctx, n); err != nil {
			d.metrics.failed.Inc()
			d.markFailed(ctx, n, err)
		} else {
			d.metrics.processed.Inc()
			d.markSent(ctx, n)
		}
		d.metrics.latency.Observe(time.Since(start).Seconds())
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, n *model.Notification) error {
	switch n.Channel {
	case model.NotificationChannelEmail:
		return d.sender.Send(ctx, n.Recipient, n.Subject, n.Content)
	default:
		// in-app rows are delivered via the broker at creation time
		return nil
	}
}

func (d *Dispatcher) markSent(ctx context.Context, n *model.Notification) {
	now := time.Now()
	n.Status = model.NotificationStatusSent
	n.SentAt = &now
	if err := d.repo.Update(ctx, n); err != nil {
		d.logger.Error(err, "failed to mark notification sent")
	}
}

func (d *Dispatcher) markFailed(ctx context.Context, n *model.Notification, cause error) {
	n.RetryCount++
	n.LastError = cause.Error()

	if n.RetryCount >= maxRetries {
		n.Status = model.NotificationStatusFailed
		n.NextRetryAt = nil
	} else {
		n.Status = model.NotificationStatusRetrying
		next := time.Now().Add(d.config.RetryDelay * time.Duration(n.RetryCount))
		n.NextRetryAt = &next
	}

	if err := d.repo.Update(ctx, n); err != nil {
		d.logger.Error(err, "failed to record notification failure")
	}
}
