package constants

// Exchange topology.
const (
	ExchangeDashboard     = "casatrack_exchange"
	ExchangeDashboardType = "direct"
)

// Queue names.
const (
	QueueNoteCountDeltas = "note_count_deltas"
)

// Routing keys.
const (
	RoutingKeyNoteCountDelta = "note.count.delta"
)
