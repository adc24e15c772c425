package progress

import (
	"context"

	"go.uber.org/zap"
)

// Fanout delivers each event synchronously to every configured sink. The
// archiver is single-threaded, so no buffering layer sits between the
// emitter and its sinks.
type Fanout struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewFanout wires sinks behind the Emitter interface.
func NewFanout(logger *zap.Logger, sinks ...Sink) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fanout{sinks: sinks, logger: logger}
}

// Emit validates evt and hands it to each sink. Sink failures are logged and
// never propagate; losing an observation must not fail the task it observed.
func (f *Fanout) Emit(evt Event) {
	if err := evt.Validate(); err != nil {
		f.logger.Warn("Dropping invalid progress event", zap.Error(err))
		return
	}
	for _, s := range f.sinks {
		if err := s.Consume(context.Background(), evt); err != nil {
			f.logger.Warn("Progress sink rejected event",
				zap.String("stage", string(evt.Stage)),
				zap.Error(err),
			)
		}
	}
}

// Close shuts down every sink, returning the first error encountered.
func (f *Fanout) Close(ctx context.Context) error {
	var firstErr error
	for _, s := range f.sinks {
		if err := s.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
