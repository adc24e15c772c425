package archive

import (
	"context"
	"time"
)

// Source yields the ordered fetch targets for a run.
type Source interface {
	Load() ([]string, error)
}

// Ledger records completed sequence identifiers durably. Append must be
// flush-durable before it returns; a later process start must observe the
// entry through LoadCompleted.
type Ledger interface {
	LoadCompleted() (map[int]struct{}, error)
	Append(id int, url string) error
}

// PageStore persists raw page content under a sequence identifier and
// returns the path written.
type PageStore interface {
	Save(id int, body []byte) (string, error)
}

// Fetcher retrieves one URL synchronously, returning classified failures
// as *FetchError values.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// Clock returns the current time (swappable in tests).
type Clock interface {
	Now() time.Time
}
