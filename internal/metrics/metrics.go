package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minesweeper"

type Metrics struct {
	GamesStarted  *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec
	Moves         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the game collectors on a fresh registry. activeSessions
// is sampled on every scrape.
func New(activeSessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		GamesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games created, by difficulty.",
		}, []string{"difficulty"}),
		GamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached a terminal state, by outcome.",
		}, []string{"outcome"}),
		Moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Accepted moves, by kind.",
		}, []string{"kind"}),
		gatherer: reg,
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions currently held in memory.",
	}, func() float64 {
		return float64(activeSessions())
	})

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
