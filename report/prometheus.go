package report

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"pngbench/bench"
)

// Prometheus writes the results in the Prometheus text exposition format so
// they can be fed to a textfile collector or pushgateway.
func Prometheus(w io.Writer, times *bench.Times) error {
	reg := prometheus.NewRegistry()
	best := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pngbench",
		Name:      "best_duration_seconds",
		Help:      "Fastest observed run per implementation.",
	}, []string{"op", "implementation"})
	failures := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pngbench",
		Name:      "failures",
		Help:      "Runs that returned an error, still included in the best time.",
	}, []string{"op", "implementation"})
	runs := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pngbench",
		Name:      "runs",
		Help:      "Runs per implementation.",
	}, []string{"op"})
	reg.MustRegister(best, failures, runs)

	runs.WithLabelValues(times.Op).Set(float64(times.Runs))
	for _, s := range times.Samples {
		if !s.Observed() {
			continue
		}
		best.WithLabelValues(times.Op, s.Name).Set(float64(s.Best) / 1e9)
		failures.WithLabelValues(times.Op, s.Name).Set(float64(s.Failures))
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}
	return nil
}
