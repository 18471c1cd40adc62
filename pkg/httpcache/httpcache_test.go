package httpcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// memCache is a minimal in-memory Cacher for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) GetSet(ctx context.Context, key string, fetch func(context.Context) ([]byte, error), _ ...time.Duration) ([]byte, error) {
	m.mu.Lock()
	if v, ok := m.data[key]; ok {
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.data[key] = v
	m.mu.Unlock()
	return v, nil
}

func (*memCache) TTL() time.Duration { return time.Minute }

func TestURLToKey(t *testing.T) {
	a := URLToKey("https://linktr.ee/artist")
	b := URLToKey("https://linktr.ee/artist")
	c := URLToKey("https://linktr.ee/other")

	if a != b {
		t.Error("URLToKey not deterministic")
	}
	if a == c {
		t.Error("URLToKey collision for different URLs")
	}
	if len(a) != 64 {
		t.Errorf("URLToKey length = %d, want 64", len(a))
	}
}

func TestFetchURLNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "hello")
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		t.Fatal(err)
	}

	body, err := FetchURL(context.Background(), nil, srv.Client(), req, nil)
	if err != nil {
		t.Fatalf("FetchURL() error: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("FetchURL() = %q, want %q", body, "hello")
	}
}

func TestFetchURLUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		fmt.Fprint(w, "payload")
	}))
	defer srv.Close()

	cache := newMemCache()
	ctx := context.Background()

	for range 2 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
		if err != nil {
			t.Fatal(err)
		}
		body, err := FetchURL(ctx, cache, srv.Client(), req, nil)
		if err != nil {
			t.Fatalf("FetchURL() error: %v", err)
		}
		if string(body) != "payload" {
			t.Errorf("FetchURL() = %q, want %q", body, "payload")
		}
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second call should be a cache hit)", hits)
	}
}

func TestFetchURLCachesHTTPErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := newMemCache()
	ctx := context.Background()

	for range 2 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, http.NoBody)
		if err != nil {
			t.Fatal(err)
		}
		_, err = FetchURL(ctx, cache, srv.Client(), req, nil)
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("FetchURL() error = %v, want HTTPError", err)
		}
		if httpErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
		}
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (404 should be served from cache)", hits)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &HTTPError{StatusCode: http.StatusInternalServerError}, true},
		{"bad gateway", &HTTPError{StatusCode: http.StatusBadGateway}, true},
		{"not found", &HTTPError{StatusCode: http.StatusNotFound}, false},
		{"forbidden", &HTTPError{StatusCode: http.StatusForbidden}, false},
		{"network error", errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 404, URL: "https://linktr.ee/missing"}
	want := "HTTP 404 fetching https://linktr.ee/missing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
