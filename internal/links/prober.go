// Package links probes external URLs referenced by a charm repository.
// Probing happens before rule evaluation; rules only see the recorded
// outcomes and never touch the network themselves.
package links

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Outcome records the result of probing a single URL.
type Outcome struct {
	URL        string `json:"url"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Prober checks whether a URL resolves.
type Prober interface {
	Probe(ctx context.Context, url string) Outcome
}

// DefaultTimeout matches the per-request timeout the review workflow has
// always used for link checks.
const DefaultTimeout = 5 * time.Second

// HTTPProber probes URLs with HEAD requests, following redirects.
type HTTPProber struct {
	Client *http.Client
}

// NewHTTPProber returns a prober with a timeout-bounded client.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProber{
		Client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, url string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Outcome{URL: url, Error: err.Error()}
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return Outcome{URL: url, Error: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	return Outcome{
		URL:        url,
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
	}
}

// ProbeAll probes each unique URL and returns outcomes keyed by URL.
// URLs are probed in sorted order so repeated runs behave identically.
func ProbeAll(ctx context.Context, p Prober, urls []string) map[string]Outcome {
	unique := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if u != "" {
			unique[u] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(unique))
	for u := range unique {
		ordered = append(ordered, u)
	}
	sort.Strings(ordered)

	outcomes := make(map[string]Outcome, len(ordered))
	for _, u := range ordered {
		outcomes[u] = p.Probe(ctx, u)
	}
	return outcomes
}
