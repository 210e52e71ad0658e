package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("page not found")

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// Fetcher downloads product pages, retrying transport errors, 429 and 5xx
// with exponential backoff. Other 4xx responses fail immediately.
type Fetcher struct {
	Client          *http.Client
	UserAgent       string
	MaxRetries      uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Log             *zap.Logger
}

func NewFetcher(log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		Client:          defaultHTTPClient,
		UserAgent:       "Mozilla/5.0",
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     time.Minute,
		Log:             log,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = defaultHTTPClient
	}
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}

	op := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", f.UserAgent)
		req.Header.Set("Accept", "text/html")

		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return "", backoff.Permanent(fmt.Errorf("%s: %w", url, ErrNotFound))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return "", fmt.Errorf("%s: status %d", url, resp.StatusCode)
		case resp.StatusCode >= 400:
			return "", backoff.Permanent(fmt.Errorf("%s: status %d", url, resp.StatusCode))
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", url, err)
		}
		return string(b), nil
	}

	b := backoff.NewExponentialBackOff()
	if f.InitialInterval > 0 {
		b.InitialInterval = f.InitialInterval
	}
	if f.MaxInterval > 0 {
		b.MaxInterval = f.MaxInterval
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(f.MaxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("fetch failed, retrying", zap.String("url", url), zap.Duration("next", next), zap.Error(err))
		}),
	)
}
