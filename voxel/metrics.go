package voxel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultLabel = "result"
	stageLabel  = "stage"
)

// Metrics instruments voxelization passes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	passes        *prometheus.CounterVec
	cellsSampled  prometheus.Counter
	occupiedCells prometheus.Gauge
	stageDuration *prometheus.HistogramVec
}

// NewMetrics creates the pass metrics and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		passes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxelize_passes_total",
			Help: "The number of voxelization passes by result.",
		}, []string{resultLabel}),

		cellsSampled: f.NewCounter(prometheus.CounterOpts{
			Name: "voxelize_cells_sampled_total",
			Help: "The number of grid cells sampled.",
		}),

		occupiedCells: f.NewGauge(prometheus.GaugeOpts{
			Name: "voxelize_occupied_cells",
			Help: "The number of occupied cells in the last rendered pass.",
		}),

		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voxelize_stage_duration_seconds",
			Help:    "The time spent in each pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{stageLabel}),
	}
}

func (m *Metrics) countPass(err error) {
	if m == nil {
		return
	}
	m.passes.With(prometheus.Labels{resultLabel: passResult(err)}).Inc()
}

func (m *Metrics) observeStage(s State, start time.Time) {
	if m == nil {
		return
	}
	m.stageDuration.
		With(prometheus.Labels{stageLabel: s.String()}).
		Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeGrid(cells, occupied int) {
	if m == nil {
		return
	}
	m.cellsSampled.Add(float64(cells))
	m.occupiedCells.Set(float64(occupied))
}
