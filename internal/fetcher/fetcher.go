// Package fetcher performs resilient HTTP fetches of external pages.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/riftline/guidecrawl/internal/config"
	"github.com/riftline/guidecrawl/internal/logger"
)

// Page is a fetched HTML page. Discarded after extraction.
type Page struct {
	// URL is the URL the page was fetched from
	URL string
	// Body is the raw response body
	Body []byte
	// StatusCode is the final HTTP status
	StatusCode int
}

// Error reports a fetch that failed after retry exhaustion.
type Error struct {
	// URL is the fetched URL
	URL string
	// LastStatus is the last HTTP status observed, or 0 for transport errors
	LastStatus int
	// Attempts is the number of attempts made
	Attempts int
	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s failed after %d attempts: status %d", e.URL, e.Attempts, e.LastStatus)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error { return e.Err }

// Interface fetches a single page.
type Interface interface {
	// Fetch issues a GET for the URL, retrying transient failures.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Fetcher implements Interface on top of a resty client with bounded retries
// and linearly increasing backoff. Politeness delays between fetches are the
// orchestrator's concern, not handled here.
type Fetcher struct {
	client      *resty.Client
	maxAttempts int
	logger      logger.Interface
}

// New creates a fetcher from the crawler configuration.
func New(cfg *config.CrawlerConfig, log logger.Interface) *Fetcher {
	backoff := cfg.RetryBackoff

	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(cfg.MaxAttempts - 1).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			// Linear backoff: attempt N waits N*backoff before the next try.
			return time.Duration(resp.Request.Attempt) * backoff, nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices
		})

	return &Fetcher{
		client:      client,
		maxAttempts: cfg.MaxAttempts,
		logger:      log,
	}
}

// Fetch issues a GET for the URL. A non-2xx status or transport error is
// retried with backoff; once attempts are exhausted a *Error is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		attempts := f.maxAttempts
		if resp != nil && resp.Request != nil && resp.Request.Attempt > 0 {
			attempts = resp.Request.Attempt
		}
		f.logger.Warn("Fetch failed", "url", url, "attempts", attempts, "error", err)
		return nil, &Error{URL: url, Attempts: attempts, Err: err}
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		f.logger.Warn("Fetch returned non-success status",
			"url", url,
			"status", status,
			"attempts", resp.Request.Attempt)
		return nil, &Error{URL: url, LastStatus: status, Attempts: resp.Request.Attempt}
	}

	f.logger.Debug("Fetched page", "url", url, "status", status, "bytes", len(resp.Body()))

	return &Page{
		URL:        url,
		Body:       resp.Body(),
		StatusCode: status,
	}, nil
}
