package application

import "expvar"

// Counters published on /api/debug/vars when debug metrics are enabled.
var (
	registeredTotal     = expvar.NewInt("accounts_registered_total")
	confirmedTotal      = expvar.NewInt("accounts_confirmed_total")
	notifyFailedTotal   = expvar.NewInt("notifications_failed_total")
	backgroundTaskPanic = expvar.NewInt("background_task_panics_total")
)
