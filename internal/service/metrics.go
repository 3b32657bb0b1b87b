package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation counters, registered on the default registry so an embedding
// process can expose them alongside its own.
var (
	gamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cffa_games_created_total",
		Help: "Games added through the lifecycle service.",
	})
	gamesEdited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cffa_games_edited_total",
		Help: "Games edited through the lifecycle service.",
	})
	gamesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cffa_games_deleted_total",
		Help: "Games deleted through the lifecycle service.",
	})
	summaryRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cffa_summary_rebuilds_total",
		Help: "Full summary recomputations.",
	})
	transactionsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cffa_transactions_added_total",
		Help: "Payments recorded through the transaction service.",
	})
)
