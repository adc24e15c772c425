package archive

import (
	"errors"
	"fmt"
)

// ErrEmptySource aborts a run when the URL list is missing or empty.
var ErrEmptySource = errors.New("url list is empty")

// FetchErrorKind classifies why a fetch attempt failed.
type FetchErrorKind string

// Failure classifications produced by Fetcher implementations. Every kind is
// treated identically for control flow; the kind only drives reporting.
const (
	FetchTimeout               FetchErrorKind = "timeout"
	FetchConnectionFailure     FetchErrorKind = "connection_failure"
	FetchHTTPStatus            FetchErrorKind = "http_status"
	FetchUnexpectedContentType FetchErrorKind = "unexpected_content_type"
	FetchOther                 FetchErrorKind = "other"
)

// FetchError is the classified failure returned by a Fetcher.
type FetchError struct {
	Kind FetchErrorKind
	// StatusCode is set when Kind is FetchHTTPStatus.
	StatusCode int
	// ContentType records the observed media type for
	// FetchUnexpectedContentType failures.
	ContentType string
	Err         error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch failed: http status %d", e.StatusCode)
	case FetchUnexpectedContentType:
		return fmt.Sprintf("fetch failed: unexpected content type %q", e.ContentType)
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("fetch failed (%s)", e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyFetchError extracts the failure kind from err, defaulting to
// FetchOther for errors that did not originate from a Fetcher.
func ClassifyFetchError(err error) FetchErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FetchOther
}
