package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_check_ins_total",
		Help: "Successful check-ins.",
	})

	CheckOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_check_outs_total",
		Help: "Successful check-outs.",
	})

	AbsenceRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_absence_requests_total",
		Help: "Absence and permission requests filed.",
	})

	StateConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_state_conflicts_total",
		Help: "Rejected attendance mutations (duplicate check-in etc).",
	})

	DailyReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_reports_generated_total",
		Help: "Daily reports created by the builder.",
	})

	DailyReportsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "daily_reports_skipped_total",
		Help: "Builder runs skipped because the date was already reported.",
	})
)
