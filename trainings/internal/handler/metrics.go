package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainings_enrollments_total",
			Help: "Total number of group training enrollments by list.",
		},
		[]string{"list"},
	)

	individualTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainings_individual_transitions_total",
			Help: "Total number of individual training status changes by target status.",
		},
		[]string{"status"},
	)
)
