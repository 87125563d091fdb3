package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LedgerApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nrxpay_ledger_applies_total",
		Help: "Balance mutations applied, by kind and currency",
	}, []string{"kind", "currency"})

	LedgerRefusals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nrxpay_ledger_refusals_total",
		Help: "Balance mutations refused, by reason",
	}, []string{"reason"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nrxpay_status_transitions_total",
		Help: "Submission status transitions, by kind and target status",
	}, []string{"kind", "status"})

	GameRounds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nrxpay_game_rounds_total",
		Help: "Settled game rounds, by game",
	}, []string{"game"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
