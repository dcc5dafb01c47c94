package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodscout_messages_dispatched_total",
		Help: "Inbound messages handed to the dialog engine.",
	})

	SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodscout_sessions_started_total",
		Help: "Dialog sessions created by trigger matches.",
	}, []string{"dialog"})

	SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodscout_sessions_completed_total",
		Help: "Dialog sessions that ran to completion.",
	}, []string{"dialog"})

	SessionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodscout_sessions_failed_total",
		Help: "Dialog sessions terminated by a handler error.",
	}, []string{"dialog"})

	SessionsExpired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodscout_sessions_expired_total",
		Help: "Dialog sessions evicted for inactivity.",
	}, []string{"dialog"})

	ProviderErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodscout_provider_errors_total",
		Help: "Failed calls to the business-search provider.",
	})
)
