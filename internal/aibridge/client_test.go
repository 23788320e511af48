package aibridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altan/schoolhub/internal/app/models/dto"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
)

func analyzeRequest() dto.AnalyzeRequest {
	return dto.AnalyzeRequest{
		Task: "attendance_summary",
		Data: map[string]interface{}{"studentId": float64(5)},
	}
}

func newClientFor(server *httptest.Server, attempts int) *Client {
	return NewClient(Config{
		BaseURL:       server.URL,
		Timeout:       2 * time.Second,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
	})
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotPath string
	var gotTask string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req dto.AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotTask = req.Task

		json.NewEncoder(w).Encode(dto.AnalyzeResult{Success: true, Response: "looks fine"})
	}))
	defer server.Close()

	client := newClientFor(server, 3)
	result, err := client.Analyze(context.Background(), analyzeRequest())

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/analyze", gotPath)
	assert.Equal(t, "attendance_summary", gotTask)
	assert.True(t, result.Success)
	assert.Equal(t, "looks fine", result.Response)
}

func TestAnalyzeRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(dto.AnalyzeResult{Success: true})
	}))
	defer server.Close()

	client := newClientFor(server, 3)
	result, err := client.Analyze(context.Background(), analyzeRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAnalyzeExhaustedRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClientFor(server, 3)
	_, err := client.Analyze(context.Background(), analyzeRequest())

	assert.ErrorIs(t, err, apperrors.ErrAIBridgeUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAnalyzeDoesNotRetryApplicationFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.AnalyzeResult{Success: false, Error: "unknown task"})
	}))
	defer server.Close()

	client := newClientFor(server, 3)
	result, err := client.Analyze(context.Background(), analyzeRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "unknown task", result.Error)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnalyzeContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:       server.URL,
		Timeout:       2 * time.Second,
		RetryAttempts: 5,
		RetryDelay:    time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Analyze(ctx, analyzeRequest())
		done <- err
	}()

	// Cancel while the client is waiting out the retry delay.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Analyze did not return after cancellation")
	}
}

func TestAnalyzeZeroAttemptsStillTriesOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(dto.AnalyzeResult{Success: true})
	}))
	defer server.Close()

	client := newClientFor(server, 0)
	result, err := client.Analyze(context.Background(), analyzeRequest())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
