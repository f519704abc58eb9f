package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tictactelnet",
		Name:      "connections_accepted_total",
		Help:      "TCP connections accepted by the telnet server.",
	})

	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tictactelnet",
		Name:      "rooms_created_total",
		Help:      "Rooms successfully created.",
	})

	RoomsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tictactelnet",
		Name:      "rooms_expired_total",
		Help:      "Rooms abandoned because no opponent joined in time.",
	})

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tictactelnet",
		Name:      "active_rooms",
		Help:      "Rooms currently live in the registry.",
	})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tictactelnet",
		Name:      "games_finished_total",
		Help:      "Finished games by verdict.",
	}, []string{"verdict"})
)
