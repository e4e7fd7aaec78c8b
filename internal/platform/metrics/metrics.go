// Package metrics provides Prometheus instrumentation for the trading backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersTotal counts executed orders, partitioned by side.
	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trading_orders_total",
		Help: "Total number of orders executed",
	}, []string{"side"})

	// OrderRejections counts orders rejected by the ledger, partitioned by side.
	OrderRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trading_order_rejections_total",
		Help: "Orders rejected by the account ledger",
	}, []string{"side"})

	// LeaderboardBuildDuration tracks how long a full leaderboard ranking takes.
	LeaderboardBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trading_leaderboard_build_seconds",
		Help:    "Duration of a full leaderboard valuation and ranking pass",
		Buckets: prometheus.DefBuckets,
	})

	// QuoteLookups counts quote-provider calls, partitioned by outcome.
	QuoteLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trading_quote_lookups_total",
		Help: "Quote provider lookups",
	}, []string{"outcome"})
)
