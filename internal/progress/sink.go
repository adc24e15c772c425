package progress

import "context"

// Sink consumes individual progress events. Implementations must be safe for
// repeated calls and should honor ctx deadlines.
type Sink interface {
	Consume(ctx context.Context, evt Event) error
	Close(ctx context.Context) error
}

// Emitter publishes individual events; Fanout satisfies this interface so
// the archiver stays agnostic about where events end up.
type Emitter interface {
	Emit(evt Event)
}
