// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mercer/pkg/types"
)

func init() {
	RetryBaseDelay = time.Millisecond
}

func statusSequence(t *testing.T, statuses ...int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(&calls, 1))
		if n > len(statuses) {
			n = len(statuses)
		}
		w.WriteHeader(statuses[n-1])
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestDoWithRetry_ThrottledThenOK(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		calls    int32
	}{
		{"immediate success", []int{200}, 1},
		{"429 then 200", []int{429, 429, 200}, 3},
		{"503 then 200", []int{503, 200}, 2},
		{"500 passes through", []int{500}, 1},
		{"404 passes through", []int{404, 200}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, calls := statusSequence(t, tt.statuses...)
			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, 5)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.calls, atomic.LoadInt32(calls))
		})
	}
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	ts, calls := statusSequence(t, http.StatusTooManyRequests)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 2)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestDoWithRetry_DefaultMaxRetries(t *testing.T) {
	ts, calls := statusSequence(t, http.StatusServiceUnavailable)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 0)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, int32(defaultMaxRetries+1), atomic.LoadInt32(calls))
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts, _ := statusSequence(t, http.StatusTooManyRequests)

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoff(t *testing.T) {
	old := MaxRetryAfter
	MaxRetryAfter = 10 * time.Second
	defer func() { MaxRetryAfter = old }()

	assert.Equal(t, 3*time.Second, backoff("3", 0))
	assert.Equal(t, 10*time.Second, backoff("120", 0))
	assert.Equal(t, RetryBaseDelay, backoff("", 0))
	assert.Equal(t, 4*RetryBaseDelay, backoff("soon", 2))
}

func TestFetch(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	cfg := types.HTTPConfig{UserAgent: "mercer-test", MaxRetries: 1}
	body, err := Fetch(context.Background(), ts.Client(), ts.URL+"/ok", cfg)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "mercer-test", gotUA)

	_, err = Fetch(context.Background(), ts.Client(), ts.URL+"/missing", cfg)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}
