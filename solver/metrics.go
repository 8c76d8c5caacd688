package solver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"pipeflow/component"
)

// Metrics 求解指标
type Metrics struct {
	Solves     *prometheus.CounterVec // 按结果统计的求解次数
	Iterations prometheus.Histogram   // 每次求解的牛顿迭代次数
	Residual   prometheus.Gauge       // 最近一次求解的残差
}

// NewMetrics 在 reg 上注册求解指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Solves: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeflow_solves_total",
				Help: "Total number of pipe flow solves by outcome",
			},
			[]string{"outcome"},
		),
		Iterations: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pipeflow_newton_iterations",
				Help:    "Newton iterations per solve",
				Buckets: prometheus.LinearBuckets(1, 2, 10),
			},
		),
		Residual: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "pipeflow_residual",
				Help: "Infinity norm of the residual at the last iteration",
			},
		),
	}
}

// Outcome 求解结果分类
func Outcome(err error) string {
	switch {
	case err == nil:
		return "converged"
	case errors.Is(err, ErrNotConverged):
		return "not_converged"
	case errors.Is(err, ErrSingular):
		return "singular"
	case errors.Is(err, component.ErrConfig):
		return "config"
	}
	return "error"
}

func (m *Metrics) observe(report Report, err error) {
	m.Solves.WithLabelValues(Outcome(err)).Inc()
	if report.Iterations > 0 {
		m.Iterations.Observe(float64(report.Iterations))
		m.Residual.Set(report.Residual)
	}
}
