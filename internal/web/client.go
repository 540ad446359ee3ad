package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http/httpproxy"
	"golang.org/x/time/rate"

	"github.com/local-mcps/claude-docs-mcp/config"
	"github.com/local-mcps/claude-docs-mcp/internal/common"
)

// Client performs single GET requests with a fixed timeout. Failures come back
// as *common.Error values of kind transport or status; the client neither logs
// nor retries.
type Client struct {
	config  *config.WebConfig
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(cfg *config.WebConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFunc(cfg)

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		config:  cfg,
		http:    createHTTPClient(cfg, transport),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func createHTTPClient(cfg *config.WebConfig, transport http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if !cfg.FollowRedirects {
				return http.ErrUseLastResponse
			}
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// proxyFunc prefers the configured proxy and falls back to the usual
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY variables. Loopback targets are never proxied.
func proxyFunc(cfg *config.WebConfig) func(*http.Request) (*url.URL, error) {
	pc := httpproxy.FromEnvironment()
	if cfg.ProxyURL != "" {
		pc = &httpproxy.Config{
			HTTPProxy:  cfg.ProxyURL,
			HTTPSProxy: cfg.ProxyURL,
			NoProxy:    cfg.NoProxy,
		}
	}
	fn := pc.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return fn(req.URL)
	}
}

// Get fetches rawURL and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	if _, err := common.ValidateHTTPURL(rawURL); err != nil {
		return "", common.NewError(common.KindValidation, "refusing to fetch "+rawURL, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", common.NewError(common.KindTransport, "rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", common.NewError(common.KindTransport, "build request", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return "", common.Errorf(common.KindStatus, "%s for url: %s", resp.Status, rawURL)
	}

	limitedReader := io.LimitReader(resp.Body, int64(c.config.MaxResponseSizeBytes))
	content, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", transportError(err)
	}

	return string(content), nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return common.NewError(common.KindTransport, common.ErrRequestTimeout.Error(), err)
	}
	return common.NewError(common.KindTransport, "request failed", err)
}
