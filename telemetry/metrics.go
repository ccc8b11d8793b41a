// Package telemetry provides Prometheus metrics, correlation-id aware logging
// helpers, and OpenTelemetry tracing setup.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	RunsStarted         prometheus.Counter
	TokenFailures       prometheus.Counter
	ClipsCreated        prometheus.Counter
	ClipsFailed         prometheus.Counter
	AnnouncementsPosted prometheus.Counter
	AnnouncementsFailed prometheus.Counter

	// Histograms (seconds)
	RunDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		RunsStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_runs_started_total", Help: "Number of clip pipeline runs started"})
		TokenFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_token_failures_total", Help: "Number of failed Twitch access token fetches"})
		ClipsCreated = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_created_total", Help: "Number of clips successfully created"})
		ClipsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_create_failures_total", Help: "Number of failed clip creations"})
		AnnouncementsPosted = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_announcements_posted_total", Help: "Number of Discord announcements posted"})
		AnnouncementsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "clip_announcement_failures_total", Help: "Number of failed Discord announcements"})
		RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "clip_run_duration_seconds", Help: "Total clip pipeline run duration seconds", Buckets: prometheus.DefBuckets})
	})
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
