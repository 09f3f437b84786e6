package repository

// NamedSink pairs a sink name with its repository. Repo is nil when the
// sink's connection failed to initialize at startup; the coordinator skips
// such sinks and records a zero count for them.
type NamedSink struct {
	Name string
	Repo TicketRepository
}

// SinkRegistry holds the configured sinks in registration order. It is
// constructed once at startup and passed by handle into the coordinator;
// there is no ambient global sink state.
type SinkRegistry struct {
	sinks []NamedSink
}

// NewSinkRegistry creates an empty registry
func NewSinkRegistry() *SinkRegistry {
	return &SinkRegistry{}
}

// Register adds a sink under the given name. Pass a nil repo to record a
// sink whose connection could not be initialized.
func (r *SinkRegistry) Register(name string, repo TicketRepository) {
	r.sinks = append(r.sinks, NamedSink{Name: name, Repo: repo})
}

// Sinks returns the registered sinks in registration order
func (r *SinkRegistry) Sinks() []NamedSink {
	return r.sinks
}

// Len returns the number of registered sinks
func (r *SinkRegistry) Len() int {
	return len(r.sinks)
}
