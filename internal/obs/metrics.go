package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dtroode/blog-auth-server/internal/model"
)

const namespace = "blog_auth"

// TokenMetrics counts token lifecycle outcomes.
type TokenMetrics struct {
	issued   prometheus.Counter
	rotated  prometheus.Counter
	revoked  prometheus.Counter
	failures *prometheus.CounterVec
}

func NewTokenMetrics(reg prometheus.Registerer) *TokenMetrics {
	f := promauto.With(reg)
	return &TokenMetrics{
		issued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Token pairs issued after authentication.",
		}),
		rotated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_rotated_total",
			Help:      "Successful refresh token rotations.",
		}),
		revoked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_revoked_total",
			Help:      "Explicit refresh token revocations.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotation_failures_total",
			Help:      "Rejected rotations by internal reason.",
		}, []string{"reason"}),
	}
}

func (m *TokenMetrics) TokenIssued()  { m.issued.Inc() }
func (m *TokenMetrics) TokenRotated() { m.rotated.Inc() }
func (m *TokenMetrics) TokenRevoked() { m.revoked.Inc() }

func (m *TokenMetrics) RotationFailed(reason model.InvalidTokenReason) {
	m.failures.WithLabelValues(string(reason)).Inc()
}

// RegisterDroppedEvents exposes the number of audit events dropped because
// the dispatch buffer was full.
func RegisterDroppedEvents(reg prometheus.Registerer, dropped func() uint64) {
	promauto.With(reg).NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Audit events dropped because the dispatch buffer was full.",
	}, func() float64 { return float64(dropped()) })
}
