package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GamesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alias_games_created_total",
			Help: "Total games created",
		},
	)
	RoundsPlayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alias_rounds_played_total",
			Help: "Total rounds ended",
		},
	)
	WordsGuessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alias_words_guessed_total",
			Help: "Total words guessed successfully",
		},
	)
	WordsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alias_words_skipped_total",
			Help: "Total words skipped",
		},
	)
	ActiveGames = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alias_active_games",
			Help: "Number of active game sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(GamesCreated)
	prometheus.MustRegister(RoundsPlayed)
	prometheus.MustRegister(WordsGuessed)
	prometheus.MustRegister(WordsSkipped)
	prometheus.MustRegister(ActiveGames)
}
