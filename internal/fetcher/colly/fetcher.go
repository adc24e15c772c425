// Package collyfetcher implements archive.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"pagearchiver/internal/archive"
)

const defaultTimeout = 15 * time.Second

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher performs one synchronous GET per call through a cloned Colly
// collector. There is no retry: a failed URL stays unfetched until a later
// run attempts it again.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// New builds a Fetcher with a pooled transport shared by all fetches.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []colly.CollectorOption{}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	base := colly.NewCollector(opts...)
	// Duplicate URLs in the list are independent tasks.
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{
		cfg:           cfg,
		baseCollector: base,
		logger:        logger,
	}
}

// Fetch retrieves rawURL and classifies the outcome. A transport-level
// success whose Content-Type does not indicate HTML is returned as an
// unexpected-content-type failure.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (archive.Page, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	start := time.Now()
	collector.OnResponse(func(r *colly.Response) {
		contentType := ""
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
		if !strings.Contains(contentType, "text/html") {
			send(fetchResult{err: &archive.FetchError{
				Kind:        archive.FetchUnexpectedContentType,
				ContentType: contentType,
			}})
			return
		}
		send(fetchResult{page: archive.Page{
			URL:         rawURL,
			StatusCode:  r.StatusCode,
			ContentType: contentType,
			Body:        append([]byte{}, r.Body...),
			Duration:    time.Since(start),
		}})
	})

	collector.OnError(func(r *colly.Response, err error) {
		send(fetchResult{err: classify(r, err)})
	})

	// In synchronous mode Visit surfaces fetch errors as its return value
	// too; the OnError callback has already classified those with response
	// context, so prefer the channel result when one exists.
	if err := collector.Visit(rawURL); err != nil {
		collector.Wait()
		select {
		case res := <-resultCh:
			if res.err != nil {
				return archive.Page{}, res.err
			}
			return archive.Page{}, classify(nil, err)
		default:
			return archive.Page{}, classify(nil, err)
		}
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return archive.Page{}, err
		}
		if res.err != nil {
			f.logger.Debug("Fetch classified as failure",
				zap.String("url", rawURL),
				zap.Error(res.err),
			)
		}
		return res.page, res.err
	default:
		return archive.Page{}, &archive.FetchError{
			Kind: archive.FetchOther,
			Err:  errors.New("collector produced no result"),
		}
	}
}

type fetchResult struct {
	page archive.Page
	err  error
}

// classify maps transport and protocol failures onto the archive error
// taxonomy. Colly reports non-2xx responses through OnError with the status
// code populated; everything else arrives as a bare error.
func classify(r *colly.Response, err error) *archive.FetchError {
	if r != nil && r.StatusCode > 0 {
		return &archive.FetchError{
			Kind:       archive.FetchHTTPStatus,
			StatusCode: r.StatusCode,
			Err:        err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &archive.FetchError{Kind: archive.FetchTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &archive.FetchError{Kind: archive.FetchConnectionFailure, Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &archive.FetchError{Kind: archive.FetchConnectionFailure, Err: err}
	}
	return &archive.FetchError{Kind: archive.FetchOther, Err: err}
}
