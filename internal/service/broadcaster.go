package service

// Broadcaster interface for pushing lead events to connected operator
// dashboards (avoids import cycle with the ws package)
type Broadcaster interface {
	BroadcastHotLead(payload interface{})
}
