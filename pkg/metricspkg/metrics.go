// Package metricspkg records generation outcomes as prometheus counters.
package metricspkg

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

const namespace = "datagen"

// Label values of the outcome label.
const (
	OutcomeRealized  = "realized"
	OutcomeDiscarded = "discarded"
)

// Recorder holds the counters exported by the server.
type Recorder struct {
	datasets     prometheus.Counter
	clients      prometheus.Counter
	transactions *prometheus.CounterVec
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		datasets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_total",
			Help:      "Number of generated datasets.",
		}),
		clients: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_total",
			Help:      "Number of clients in generated datasets.",
		}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Number of synthesized transaction candidates by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	for _, c := range []prometheus.Collector{r.datasets, r.clients, r.transactions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Record adds the outcome of one generation run.
func (r *Recorder) Record(ds domain.Dataset, stats domain.SynthesisStats) {
	r.datasets.Inc()
	r.clients.Add(float64(len(ds.Clients)))

	r.transactions.WithLabelValues(string(domain.KindDeposit), OutcomeRealized).Add(float64(stats.Deposits))
	r.transactions.WithLabelValues(string(domain.KindWithdrawal), OutcomeRealized).Add(float64(stats.Withdrawals))
	r.transactions.WithLabelValues(string(domain.KindTransfer), OutcomeRealized).Add(float64(stats.Transfers))
	r.transactions.WithLabelValues(string(domain.KindWithdrawal), OutcomeDiscarded).Add(float64(stats.DiscardedWithdrawals))
	r.transactions.WithLabelValues(string(domain.KindTransfer), OutcomeDiscarded).Add(float64(stats.DiscardedTransfers))
}
