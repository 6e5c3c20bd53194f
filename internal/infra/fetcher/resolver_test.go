package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// aggregatorResolver returns a resolver that treats the given test server as
// an aggregator host, so the interstitial-parsing path is exercised.
func aggregatorResolver(t *testing.T, server *httptest.Server) *CanonicalResolver {
	t.Helper()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}

	r := NewCanonicalResolver(testFetchConfig())
	r.hosts = map[string]bool{u.Hostname(): true}
	return r
}

func TestCanonicalResolver_NonAggregatorPassthrough(t *testing.T) {
	r := NewCanonicalResolver(testFetchConfig())

	link := "https://example.com/story"
	if got := r.Resolve(context.Background(), link); got != link {
		t.Errorf("Resolve(%q) = %q, want unchanged", link, got)
	}
}

func TestCanonicalResolver_CanonicalLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head>
<link rel="canonical" href="https://publisher.example.com/story"/>
</head><body><p>redirecting...</p></body></html>`)
	}))
	defer server.Close()

	r := aggregatorResolver(t, server)

	got := r.Resolve(context.Background(), server.URL+"/articles/abc123")
	if got != "https://publisher.example.com/story" {
		t.Errorf("Resolve() = %q, want canonical link", got)
	}
}

func TestCanonicalResolver_FirstExternalAnchor(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body>
<a href="/internal/nav">menu</a>
<a href="%s/other">same host</a>
<a href="https://publisher.example.com/full-story">Read the full story</a>
</body></html>`, server.URL)
	}))
	defer server.Close()

	r := aggregatorResolver(t, server)

	got := r.Resolve(context.Background(), server.URL+"/articles/abc123")
	if got != "https://publisher.example.com/full-story" {
		t.Errorf("Resolve() = %q, want first external anchor", got)
	}
}

func TestCanonicalResolver_NoCanonicalFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><a href="/only/internal">internal</a></body></html>`)
	}))
	defer server.Close()

	r := aggregatorResolver(t, server)

	link := server.URL + "/articles/abc123"
	if got := r.Resolve(context.Background(), link); got != link {
		t.Errorf("Resolve(%q) = %q, want fallback to input", link, got)
	}
}

func TestCanonicalResolver_FetchErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	r := aggregatorResolver(t, server)

	link := server.URL + "/articles/abc123"
	if got := r.Resolve(context.Background(), link); got != link {
		t.Errorf("Resolve(%q) = %q, want fallback to input on error", link, got)
	}
}

func TestCanonicalResolver_RedirectLoopFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	}))
	defer server.Close()

	cfg := testFetchConfig()
	cfg.MaxRedirects = 2
	r := NewCanonicalResolver(cfg)
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	r.hosts = map[string]bool{u.Hostname(): true}

	link := server.URL + "/articles/abc123"
	if got := r.Resolve(context.Background(), link); got != link {
		t.Errorf("Resolve(%q) = %q, want fallback once the redirect cap is hit", link, got)
	}
}

func TestCanonicalResolver_RedirectToBadSchemeFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "ftp://publisher.example.com/story")
		w.WriteHeader(http.StatusFound)
	}))
	defer server.Close()

	r := aggregatorResolver(t, server)

	link := server.URL + "/articles/abc123"
	if got := r.Resolve(context.Background(), link); got != link {
		t.Errorf("Resolve(%q) = %q, want fallback when a redirect target fails validation", link, got)
	}
}
