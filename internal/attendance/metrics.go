package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classtrack_sessions_started_total",
		Help: "Attendance sessions created by faculty.",
	})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classtrack_submissions_total",
		Help: "Attendance code submissions by outcome.",
	}, []string{"result"})
)
