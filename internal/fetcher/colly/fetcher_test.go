package collyfetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagearchiver/internal/archive"
)

func testConfig(timeout time.Duration) Config {
	return Config{
		UserAgent: "pagearchiver-test/1.0",
		Timeout:   timeout,
	}
}

func fetchErr(t *testing.T, err error) *archive.FetchError {
	t.Helper()
	var fe *archive.FetchError
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "pagearchiver-test/1.0", r.UserAgent())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(testConfig(5*time.Second), nil)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Equal(t, []byte("<html>ok</html>"), page.Body)
	require.Contains(t, page.ContentType, "text/html")
	require.Greater(t, page.Duration, time.Duration(0))
}

func TestFetchHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(testConfig(5*time.Second), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	fe := fetchErr(t, err)
	require.Equal(t, archive.FetchHTTPStatus, fe.Kind)
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestFetchUnexpectedContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	f := New(testConfig(5*time.Second), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	fe := fetchErr(t, err)
	require.Equal(t, archive.FetchUnexpectedContentType, fe.Kind)
	require.Equal(t, "application/json", fe.ContentType)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	f := New(testConfig(100*time.Millisecond), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	fe := fetchErr(t, err)
	require.Equal(t, archive.FetchTimeout, fe.Kind)
}

func TestFetchConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(testConfig(time.Second), nil)
	_, err := f.Fetch(context.Background(), url)
	fe := fetchErr(t, err)
	require.Equal(t, archive.FetchConnectionFailure, fe.Kind)
}

func TestFetchInvalidURL(t *testing.T) {
	f := New(testConfig(time.Second), nil)
	_, err := f.Fetch(context.Background(), "not-a-url")
	fe := fetchErr(t, err)
	require.Equal(t, archive.FetchOther, fe.Kind)
}

func TestFetchRepeatedURL(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>again</html>"))
	}))
	defer srv.Close()

	f := New(testConfig(5*time.Second), nil)
	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	require.Equal(t, 2, hits, "duplicate list entries are independent tasks")
}

func TestClassifyDefaultsToOther(t *testing.T) {
	fe := classify(nil, errors.New("mystery"))
	require.Equal(t, archive.FetchOther, fe.Kind)
}
