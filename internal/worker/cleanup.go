package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/blog-auth-server/internal/logger"
	"github.com/dtroode/blog-auth-server/internal/model"
)

const namespace = "blog_auth"

// Cleanup periodically purges expired refresh tokens from stores that have
// no native expiry.
type Cleanup struct {
	purger   model.ExpiredTokenPurger
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time

	mPurged prometheus.Counter
	mErr    prometheus.Counter
}

func NewCleanup(purger model.ExpiredTokenPurger, interval time.Duration, reg prometheus.Registerer, logger *logger.Logger) *Cleanup {
	f := promauto.With(reg)
	return &Cleanup{
		purger:   purger,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		mPurged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_purged_total",
			Help:      "Expired refresh tokens removed by the cleanup worker.",
		}),
		mErr: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_errors_total",
			Help:      "Cleanup passes that failed.",
		}),
	}
}

func (c *Cleanup) tick(ctx context.Context) {
	n, err := c.purger.DeleteExpired(ctx, c.now())
	if err != nil {
		c.mErr.Inc()
		c.logger.Warn("Cleanup worker: purge failed", "error", err.Error())
		return
	}
	if n > 0 {
		c.mPurged.Add(float64(n))
		c.logger.Debug("Cleanup worker: purged expired tokens", "count", n)
	}
}

// Run purges once immediately and then every interval until ctx is done.
func (c *Cleanup) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}
