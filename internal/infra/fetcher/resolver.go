package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newslab/internal/usecase/collect"
)

// defaultAggregatorHosts lists feed hosts whose item links point at an
// interstitial page rather than the publisher. Links from other hosts pass
// through as-is.
var defaultAggregatorHosts = map[string]bool{
	"news.google.com": true,
}

// CanonicalResolver implements collect.URLResolver. For aggregator links it
// fetches the interstitial page and extracts the publisher URL: the
// <link rel="canonical"> element if present, otherwise the first anchor
// pointing off the aggregator host. Resolution is best effort and never
// fails; any error returns the input link unchanged, so dedup still works
// on the aggregator URL.
type CanonicalResolver struct {
	client *http.Client
	config ContentFetchConfig
	hosts  map[string]bool
}

// NewCanonicalResolver creates a CanonicalResolver with the given
// configuration.
func NewCanonicalResolver(config ContentFetchConfig) *CanonicalResolver {
	resolver := &CanonicalResolver{
		config: config,
		hosts:  defaultAggregatorHosts,
	}

	// Same redirect policy as the content fetcher: aggregator pages
	// redirect to the publisher, and each hop is re-validated.
	resolver.client = &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= resolver.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", collect.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), resolver.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return resolver
}

// Resolve maps an aggregator link to its publisher URL.
func (r *CanonicalResolver) Resolve(ctx context.Context, link string) string {
	host := hostname(link)
	if host == "" || !r.hosts[host] {
		return link
	}

	canonical, err := r.fetchCanonical(ctx, link, host)
	if err != nil {
		slog.Debug("canonical resolution failed, keeping aggregator link",
			slog.String("url", link),
			slog.Any("error", err))
		return link
	}
	if canonical == "" {
		return link
	}
	return canonical
}

func (r *CanonicalResolver) fetchCanonical(ctx context.Context, link, aggregatorHost string) (string, error) {
	if err := validateURL(link, r.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgentString)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", collect.ErrInvalidURL
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Some interstitials redirect all the way to the publisher; the final
	// request URL is then already canonical.
	if resp.Request != nil && resp.Request.URL != nil {
		if finalHost := resp.Request.URL.Hostname(); finalHost != "" && !r.hosts[finalHost] {
			return resp.Request.URL.String(), nil
		}
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		if external(href, aggregatorHost) {
			return href, nil
		}
	}

	canonical := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if external(href, aggregatorHost) {
			canonical = href
			return false
		}
		return true
	})

	return canonical, nil
}

// external reports whether href is an absolute http(s) URL on a host other
// than the aggregator.
func external(href, aggregatorHost string) bool {
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return false
	}
	h := hostname(href)
	return h != "" && h != aggregatorHost
}

func hostname(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

var _ collect.URLResolver = (*CanonicalResolver)(nil)
