// Package archive defines the core types shared across the fetch pipeline
// and implements the sequential orchestrator that drives it.
package archive

import "time"

// TaskState represents the lifecycle state of a single fetch task.
type TaskState string

// Task states reported while a run is in flight.
const (
	TaskPending   TaskState = "pending"
	TaskSkipped   TaskState = "skipped"
	TaskFetching  TaskState = "fetching"
	TaskSucceeded TaskState = "succeeded"
	TaskFailed    TaskState = "failed"
)

// Page is the raw content returned by a Fetcher plus transport metadata.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// Stats accumulates task outcomes for one run. It is never persisted.
type Stats struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
}
