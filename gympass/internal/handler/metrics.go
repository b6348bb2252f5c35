package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gympass_purchases_total",
		Help: "Number of purchased gym passes by offer.",
	}, []string{"offer"})

	entriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gympass_entries_total",
		Help: "Entry checks at the reception by result.",
	}, []string{"result"})
)
