package sinks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pagearchiver/internal/progress"
)

func TestLogSinkEmitsStructuredFields(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	sink := NewLogSink(zap.New(core))

	evt := progress.Event{
		RunID: uuid.New(),
		TS:    time.Now().UTC(),
		Stage: progress.StageTaskDone,
		Seq:   2,
		URL:   "http://b.test/",
		Path:  "pages/page_002.html",
		Bytes: 64,
		Dur:   40 * time.Millisecond,
	}
	require.NoError(t, sink.Consume(context.Background(), evt))

	entries := observed.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "TASK_DONE", fields["stage"])
	require.EqualValues(t, 2, fields["seq"])
	require.Equal(t, "http://b.test/", fields["url"])
	require.Equal(t, "pages/page_002.html", fields["path"])
	require.EqualValues(t, 64, fields["bytes"])
}

func TestLogSinkNilLoggerIsSafe(t *testing.T) {
	sink := NewLogSink(nil)
	evt := progress.Event{RunID: uuid.New(), TS: time.Now(), Stage: progress.StageRunStart}
	require.NoError(t, sink.Consume(context.Background(), evt))
	require.NoError(t, sink.Close(context.Background()))
}
