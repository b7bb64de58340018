package gateway

// Event is published once for every classified error the gateway returns.
// A listener outside the HTTP layer owns what happens next (user facing
// notification, redirect to login on KindAuthExpired); the gateway itself
// never talks to the UI.
type Event struct {
	Kind    string
	Message string
}

// Sink receives classified events. Notify must not block: it is called on
// the request path before control returns to the caller.
type Sink interface {
	Notify(Event)
}

// SinkFunc allows a plain function as a Sink
type SinkFunc func(Event)

func (f SinkFunc) Notify(ev Event) {
	f(ev)
}

// discardSink is used when no sink is configured
type discardSink struct{}

func (discardSink) Notify(Event) {}
