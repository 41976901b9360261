package stats

import (
	"context"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const defaultRefreshInterval = time.Minute

// Summarizer is the part of the report service the runner depends on.
type Summarizer interface {
	Summary(ctx context.Context) (*domain.ProgramSummary, error)
}

type RunnerConfig struct {
	RefreshInterval time.Duration
}

// Runner periodically folds the program summary into Prometheus gauges.
type Runner struct {
	summaries Summarizer
	config    RunnerConfig
	done      chan struct{}

	participants prometheus.Gauge
	completed    prometheus.Gauge
	reports      prometheus.Gauge
	livestock    *prometheus.GaugeVec
}

func NewRunner(summaries Summarizer, reg prometheus.Registerer, config RunnerConfig) *Runner {
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = defaultRefreshInterval
	}

	r := &Runner{
		summaries: summaries,
		config:    config,
		done:      make(chan struct{}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ternak",
			Name:      "participants",
			Help:      "Registered participants.",
		}),
		completed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ternak",
			Name:      "participants_completed",
			Help:      "Participants that reported every quarter of the cycle.",
		}),
		reports: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ternak",
			Name:      "reports",
			Help:      "Quarterly reports on file.",
		}),
		livestock: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ternak",
			Name:      "livestock_headcount",
			Help:      "Program-wide livestock headcount.",
		}, []string{"kind"}),
	}
	reg.MustRegister(r.participants, r.completed, r.reports, r.livestock)
	return r
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run refreshes the gauges immediately and then on every tick until ctx is
// cancelled. A failed refresh keeps the previous values.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "stats").Logger()
	defer close(r.done)

	ticker := time.NewTicker(r.config.RefreshInterval)
	defer ticker.Stop()

	for {
		if err := r.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to refresh program stats")
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("stats refresh stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) Refresh(ctx context.Context) error {
	summary, err := r.summaries.Summary(ctx)
	if err != nil {
		return err
	}

	reports := 0
	for _, p := range summary.Participants {
		reports += p.ReportCount
	}

	r.participants.Set(float64(len(summary.Participants)))
	r.completed.Set(float64(summary.Completed))
	r.reports.Set(float64(reports))
	r.livestock.WithLabelValues("initial").Set(float64(summary.TotalInitial))
	r.livestock.WithLabelValues("current").Set(float64(summary.TotalCurrent))
	return nil
}
