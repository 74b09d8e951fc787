package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "minesweeper_games_started_total",
			Help: "Games created through NewGame or resumed from a save",
		},
	)
	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_actions_total",
			Help: "Reveal and flag actions applied to a live game",
		},
		[]string{"action"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_finished_total",
			Help: "Games that reached a terminal state",
		},
		[]string{"result"},
	)
	SavedGames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_saved_games_total",
			Help: "Saved-game operations",
		},
		[]string{"op"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(Actions)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(SavedGames)
	prometheus.MustRegister(HTTPDuration)
}
