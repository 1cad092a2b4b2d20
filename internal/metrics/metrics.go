// Package metrics exports Prometheus counters for the game server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "towerstack"

// Metrics holds the server's collectors on a private registry so several
// servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	clients   prometheus.Gauge
	sessions  prometheus.Counter
	games     *prometheus.CounterVec
	layers    prometheus.Counter
	topScore  prometheus.Gauge
	finalSize prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clients_connected",
			Help:      "Number of connected players.",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total player sessions since start.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activations_total",
			Help:      "Player activations by outcome.",
		}, []string{"outcome"}),
		layers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layers_placed_total",
			Help:      "Layers successfully placed across all games.",
		}),
		topScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "top_score",
			Help:      "Highest score reached since start.",
		}),
		finalSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at the end of each game.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 35, 50, 75, 100},
		}),
	}
	m.registry.MustRegister(m.clients, m.sessions, m.games, m.layers, m.topScore, m.finalSize)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ClientConnected records a new player session.
func (m *Metrics) ClientConnected() {
	m.clients.Inc()
	m.sessions.Inc()
}

// ClientDisconnected records a player leaving.
func (m *Metrics) ClientDisconnected() {
	m.clients.Dec()
}

// GameStarted records an Idle to Running transition.
func (m *Metrics) GameStarted() {
	m.games.WithLabelValues("started").Inc()
}

// LayerPlaced records a successful cut.
func (m *Metrics) LayerPlaced() {
	m.games.WithLabelValues("cut").Inc()
	m.layers.Inc()
}

// GameOver records a miss and the score it ended with.
func (m *Metrics) GameOver(score int) {
	m.games.WithLabelValues("miss").Inc()
	m.finalSize.Observe(float64(score))
}

// TopScore records the current record.
func (m *Metrics) TopScore(score int) {
	m.topScore.Set(float64(score))
}
