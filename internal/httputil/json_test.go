// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Status string `json:"status"`
}

func TestGetJSON_Success(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK"}`))
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, ts.URL, "place-scout/test", &p)
	require.NoError(t, err)
	assert.Equal(t, "OK", p.Status)
	assert.Equal(t, "place-scout/test", gotUA)
}

func TestGetJSON_NoRetryOnFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "places/search", "", &p)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "slow down", se.Body)
	assert.Contains(t, err.Error(), "places/search")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetJSON_BadBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, ts.URL, "", &p)
	assert.ErrorContains(t, err, "parsing response")
}

func TestGetJSON_TransportErrorIsRedacted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	reqURL := ts.URL + "?key=secret-key"

	var p payload
	err := GetJSON(context.Background(), client, reqURL, "places/details", "", &p)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "error leaks key: %v", err)
	assert.Contains(t, err.Error(), "places/details")
}
