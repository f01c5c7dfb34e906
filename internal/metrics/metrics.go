package metrics

import (
	"github.com/danielpatrickdp/mindreader/internal/game"
	"github.com/prometheus/client_golang/prometheus"
)

// #region recorder
// Recorder exports per-driver game counters.
type Recorder struct {
	turns          *prometheus.CounterVec
	predictorWins  *prometheus.CounterVec
	guesses        *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

// NewRecorder registers the game metrics on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindreader",
			Name:      "turns_total",
			Help:      "Turns played, by driver",
		}, []string{"driver"}),
		predictorWins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindreader",
			Name:      "predictor_wins_total",
			Help:      "Turns where the prediction matched the opponent, by driver",
		}, []string{"driver"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindreader",
			Name:      "guesses_total",
			Help:      "Turns whose prediction came from the random source, by driver",
		}, []string{"driver"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mindreader",
			Name:      "sessions_active",
			Help:      "Sessions currently open",
		}),
	}
	for _, c := range []prometheus.Collector{r.turns, r.predictorWins, r.guesses, r.sessionsActive} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// #endregion recorder

// #region observe
// Observe counts one played turn.
func (r *Recorder) Observe(driver string, turn game.Turn) {
	r.turns.WithLabelValues(driver).Inc()
	if turn.PredictorWon() {
		r.predictorWins.WithLabelValues(driver).Inc()
	}
	if turn.Guessed {
		r.guesses.WithLabelValues(driver).Inc()
	}
}

// SessionOpened increments the active session gauge.
func (r *Recorder) SessionOpened() { r.sessionsActive.Inc() }

// SessionClosed decrements the active session gauge.
func (r *Recorder) SessionClosed() { r.sessionsActive.Dec() }

// #endregion observe
