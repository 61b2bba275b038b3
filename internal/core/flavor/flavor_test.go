package flavor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/herdsync/herdsync/internal/core/observability/log"
)

func TestFallbackIndexing(t *testing.T) {
	n := len(fallbackTable)
	require.Equal(t, fallbackTable[0], Fallback(1))
	require.Equal(t, fallbackTable[2], Fallback(3))
	// Wraps around (level-1) mod n.
	require.Equal(t, fallbackTable[0], Fallback(n+1))
	// Degenerate levels never panic.
	require.Equal(t, fallbackTable[0], Fallback(0))
	require.Equal(t, fallbackTable[0], Fallback(-3))
}

func TestHTTPProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "4", r.URL.Query().Get("level"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"The Far Field","description":"Past the creek."}`))
	}))
	defer ts.Close()

	p := NewHTTPProvider(ts.URL, time.Second)
	got, err := p.Flavor(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, Text{Title: "The Far Field", Description: "Past the creek."}, got)
}

func TestSourceFallsBackOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	src := NewSource(NewHTTPProvider(ts.URL, time.Second), log.Nop())
	got := src.Get(context.Background(), 2)
	require.Equal(t, Fallback(2), got)
}

func TestSourceFallsBackOnUnreachable(t *testing.T) {
	src := NewSource(NewHTTPProvider("http://127.0.0.1:1", 50*time.Millisecond), log.Nop())
	got := src.Get(context.Background(), 1)
	require.Equal(t, Fallback(1), got)
}

func TestSourceNilProvider(t *testing.T) {
	src := NewSource(nil, log.Nop())
	require.Equal(t, Fallback(5), src.Get(context.Background(), 5))
}

func TestSourceRejectsEmptyTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	src := NewSource(NewHTTPProvider(ts.URL, time.Second), log.Nop())
	require.Equal(t, Fallback(1), src.Get(context.Background(), 1))
}
