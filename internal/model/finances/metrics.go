package finances

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"max.ks1230/ledger-bot/internal/entity/ledger"
	"max.ks1230/ledger-bot/internal/model/savings"
)

var (
	transactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "finances",
			Name:      "transactions_total",
		},
		[]string{"type"},
	)
	allocatedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "finances",
			Name:      "allocated_amount_total",
			Help:      "Income moved into savings goals, in currency units.",
		},
	)
)

func observeTransaction(rec ledger.Transaction, allocs []ledger.Allocation) {
	transactionsRecorded.WithLabelValues(string(rec.Type)).Inc()
	if len(allocs) > 0 {
		allocatedAmount.Add(savings.Total(allocs).InexactFloat64())
	}
}
