package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NavLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nav_loads_total",
			Help: "NAV resource loads by result",
		},
		[]string{"result"},
	)

	NavRowsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nav_rows_rejected_total",
			Help: "CSV rows rejected because their date or value could not be parsed",
		},
	)

	NavPoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nav_points",
			Help: "Points in the loaded NAV series",
		},
	)

	ChartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_renders_total",
			Help: "Chart renders by result (ok, cached, empty, error)",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)
