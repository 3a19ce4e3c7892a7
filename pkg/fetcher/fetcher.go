package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/amosWeiskopf/pagewords/internal/apperrors"
	"github.com/amosWeiskopf/pagewords/internal/logger"
	"github.com/amosWeiskopf/pagewords/pkg/utils"
)

const defaultUserAgent = "pagewords/1.0"

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches pages over HTTP(S), consulting an optional cache first
type HTTPFetcher struct {
	client  *http.Client
	cache   *Cache
	limiter *rate.Limiter
	opts    Options
	logger  *slog.Logger
}

// New creates a fetcher. A nil cache disables caching.
func New(cache *Cache, opts Options) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}

	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &HTTPFetcher{
		client:  &http.Client{Timeout: opts.Timeout, Jar: jar},
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		opts:    opts,
		logger:  logger.WithComponent("fetcher"),
	}
}

// Fetch returns the HTML for source. A cached entry is returned verbatim
// without touching the network; otherwise the page is downloaded, stored in
// the cache and returned. All failures carry apperrors.ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if f.cache != nil && !f.opts.Refresh {
		content, ok, err := f.cache.Get(source)
		if err != nil {
			return "", apperrors.Fetch(source, err)
		}
		if ok {
			f.logger.Debug("cache hit", "source", source, "path", f.cache.Path(source))
			return content, nil
		}
	}

	content, err := f.download(ctx, source)
	if err != nil {
		return "", apperrors.Fetch(source, err)
	}

	if f.cache != nil {
		if err := f.cache.Put(source, content); err != nil {
			f.logger.Warn("cache write failed", "source", source, "error", err)
		} else {
			f.logger.Debug("cached page", "source", source, "path", f.cache.Path(source))
		}
	}
	return content, nil
}

func (f *HTTPFetcher) download(ctx context.Context, source string) (string, error) {
	if !utils.IsValidURL(source) {
		return "", fmt.Errorf("invalid URL: %q is not an absolute http(s) URL", source)
	}
	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if f.opts.RespectRobots && !f.isAllowedByRobots(ctx, u) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	content, err := readLines(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	f.logger.Info("fetched page",
		"source", source,
		"status", resp.StatusCode,
		"bytes", len(content),
		"elapsed", time.Since(start),
	)
	return content, nil
}

// isAllowedByRobots reports whether the page may be fetched. An unreachable
// or unparsable robots.txt allows everything.
func (f *HTTPFetcher) isAllowedByRobots(ctx context.Context, u *url.URL) bool {
	robotsURL := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}

	if err := f.limiter.Wait(ctx); err != nil {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("robots.txt unavailable", "url", robotsURL.String(), "error", err)
		return true
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	allowed := robots.TestAgent(path, f.opts.UserAgent)
	if !allowed {
		f.logger.Info("skipped page disallowed by robots.txt", "source", u.String())
	}
	return allowed
}
