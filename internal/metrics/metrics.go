// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint of the HTTP API.
package metrics

import "expvar"

// Operation counters.
var (
	Dispatches      = expvar.NewInt("focusflow_dispatch_total")
	PersistWrites   = expvar.NewInt("focusflow_persist_writes_total")
	PersistFailures = expvar.NewInt("focusflow_persist_failures_total")
	PersistDropped  = expvar.NewInt("focusflow_persist_superseded_total")
	Restores        = expvar.NewInt("focusflow_restore_total")
	FallbackOps     = expvar.NewInt("focusflow_storage_fallback_total")
	Imports         = expvar.NewInt("focusflow_import_total")
	IdeasPurged     = expvar.NewInt("focusflow_lifecycle_purged_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
