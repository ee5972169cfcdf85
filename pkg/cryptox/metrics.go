package cryptox

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hashDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "posts_password_hash_duration_seconds",
		Help:    "Wall time of password hash and verify calls, including time spent waiting for a worker",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"op"})

	poolInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "posts_password_pool_inflight",
		Help: "Number of password jobs currently running on the worker pool",
	})
)

func observeHash(op string, start time.Time) {
	hashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
