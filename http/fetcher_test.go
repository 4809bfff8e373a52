package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knakagawa/shingidoc"
	shingihttp "github.com/knakagawa/shingidoc/http"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "Application/PDF")
		w.Write([]byte("%PDF-1.7 content"))
	}))
	t.Cleanup(srv.Close)

	f := shingihttp.NewFetcher()
	result, err := f.Fetch(context.Background(), srv.URL+"/doc.pdf")

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/doc.pdf", result.URL)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "application/pdf", result.ContentType, "content type is lowercased")
	assert.Equal(t, []byte("%PDF-1.7 content"), result.Body)
	assert.False(t, result.UsedBrowserHeaders)
}

func TestFetcher_Fetch_RetriesBlockedWithBrowserHeaders(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.Contains(r.UserAgent(), "Mozilla") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	f := shingihttp.NewFetcher()
	result, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, result.UsedBrowserHeaders)
	assert.Equal(t, []byte("ok"), result.Body)
}

func TestFetcher_Fetch_NoRetryOnHardFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	f := shingihttp.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "404 is not retried")
	assert.Equal(t, shingidoc.EUNAVAILABLE, shingidoc.ErrorCode(err))
}

func TestFetcher_Fetch_PersistentBlockFails(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	f := shingihttp.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load(), "blocked status gets exactly one retry")
}

func TestFetcher_Fetch_SizeLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 1024))
	}))
	t.Cleanup(srv.Close)

	f := shingihttp.NewFetcher(shingihttp.WithMaxBytes(512))
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
