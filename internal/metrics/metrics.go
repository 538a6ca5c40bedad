// Package metrics declares the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HydrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfx_settings_hydrations_total",
		Help: "Settings page loads by how the preference cookie was applied.",
	}, []string{"outcome"})

	SavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfx_settings_saves_total",
		Help: "Settings save attempts by outcome.",
	}, []string{"outcome"})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfx_settings_validation_failures_total",
		Help: "Required widgets found empty at save time.",
	}, []string{"widget"})

	WidgetEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "surfx_widget_events_total",
		Help: "Widget interactions handled, by action.",
	}, []string{"action"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "surfx_request_duration_seconds",
		Help:    "Time to answer a request, by matched route.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	}, []string{"route"})

	SearchRedirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "surfx_search_redirects_total",
		Help: "Searches redirected to the index because the query was blank.",
	})
)
