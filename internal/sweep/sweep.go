// Package sweep probes bookmark URLs concurrently and reports the ones whose
// servers answer with an error status.
//
// Dead-link policy: a bookmark is dead iff a probe completes with an HTTP
// status >= 400; any 4xx or 5xx counts. A transport failure (timeout, refused
// connection, DNS error) is inconclusive and never marks a bookmark dead, so
// a transient network blip cannot delete a live link.
package sweep

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/dmarinov/linkshelf/pkg/types"
)

// deadStatusThreshold is the lowest HTTP status treated as a dead link.
const deadStatusThreshold = http.StatusBadRequest

// Sweeper fans probes out over a bounded worker pool shared by one sweep and
// joins them before reporting. A Sweeper is safe for concurrent use; each
// Dead call owns its pool for the duration of the call.
type Sweeper struct {
	client  *http.Client
	workers int
	timeout time.Duration
	limiter *rate.Limiter
	log     *slog.Logger
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithClient replaces the HTTP client used for probes.
func WithClient(c *http.Client) Option {
	return func(s *Sweeper) { s.client = c }
}

// WithLogger sets the logger for probe failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sweeper) { s.log = l }
}

// WithRate caps the sweep at probesPerSecond across all workers.
// A zero or negative rate disables the cap.
func WithRate(probesPerSecond float64) Option {
	return func(s *Sweeper) {
		if probesPerSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(probesPerSecond), 1)
		}
	}
}

// New creates a Sweeper with the given pool size and per-probe timeout.
// Non-positive values fall back to the config defaults.
func New(workers int, timeout time.Duration, opts ...Option) *Sweeper {
	if workers <= 0 {
		workers = types.DefaultProbeWorkers
	}
	if timeout <= 0 {
		timeout = types.DefaultProbeTimeout
	}
	s := &Sweeper{
		client:  &http.Client{},
		workers: workers,
		timeout: timeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dead probes every bookmark concurrently and returns the ones confirmed
// dead. The call blocks until every issued probe has completed (fan-in
// barrier). Cancelling ctx stops issuing new probes; in-flight probes run to
// their own timeout. Probe errors are logged, never returned.
func (s *Sweeper) Dead(ctx context.Context, bookmarks []types.Bookmark) []types.Bookmark {
	var (
		mu   sync.Mutex
		dead []types.Bookmark
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, b := range bookmarks {
		b := b
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return nil
				}
			}
			if s.probeDead(gctx, b) {
				mu.Lock()
				dead = append(dead, b)
				mu.Unlock()
			}
			return nil
		})
	}

	// Probes never return errors, so Wait is a pure join barrier.
	_ = g.Wait()
	return dead
}

// probeDead issues one bounded request for the bookmark's URL and reports
// whether the response confirms a dead link.
func (s *Sweeper) probeDead(ctx context.Context, b types.Bookmark) bool {
	status, err := s.probe(ctx, http.MethodHead, b.URL)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		// Some servers reject HEAD outright; retry with GET before judging.
		status, err = s.probe(ctx, http.MethodGet, b.URL)
	}
	if err != nil {
		// Inconclusive: the server could not be reached, not an error answer.
		s.log.Warn("probe failed, keeping bookmark",
			"title", b.Title, "url", b.URL, "error", err)
		return false
	}
	return status >= deadStatusThreshold
}

func (s *Sweeper) probe(ctx context.Context, method, url string) (int, error) {
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(pctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
