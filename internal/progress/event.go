// Package progress defines the event structures emitted by the archiver so
// callers can observe a run without the orchestrator touching any global
// logger or metrics state.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the type of milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageRunStart  Stage = "RUN_START"
	StageRunDone   Stage = "RUN_DONE"
	StageTaskSkip  Stage = "TASK_SKIP"
	StageTaskDone  Stage = "TASK_DONE"
	StageTaskError Stage = "TASK_ERROR"
)

// Event captures a single milestone of an archive run.
type Event struct {
	// RunID identifies the process execution emitting the event.
	RunID uuid.UUID
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which run or task milestone occurred.
	Stage Stage
	// Seq is the 1-based sequence identifier; zero for run-level events.
	Seq int
	// Total is the URL list length for this run.
	Total int
	// URL is the fetch target for task-level events.
	URL string
	// Path is the stored page location for TASK_DONE events.
	Path string
	// Bytes carries the stored content size for TASK_DONE events.
	Bytes int64
	// Reason holds the failure classification for TASK_ERROR events.
	Reason string
	// Dur captures fetch latency for tasks and wall time for RUN_DONE.
	Dur time.Duration
	// Succeeded, Skipped, and Failed are populated on RUN_DONE.
	Succeeded int
	Skipped   int
	Failed    int
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == uuid.Nil {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageRunStart, StageRunDone:
	case StageTaskSkip, StageTaskDone:
		if e.Seq < 1 {
			return errors.New("task events require a sequence identifier")
		}
	case StageTaskError:
		if e.Seq < 1 {
			return errors.New("task events require a sequence identifier")
		}
		if e.Reason == "" {
			return errors.New("task error requires a reason")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}
