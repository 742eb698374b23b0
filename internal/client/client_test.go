package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpggio/sellerconsole/internal/client"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RetriesRetryableFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Server temporarily unavailable. Please try again.","code":"SERVER_ERROR","retryable":true}}`))
			return
		}
		assert.Equal(t, "Qualified", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"lead_007","name":"Ana Silva","score":90}],"pagination":{"currentPage":2,"totalPages":2,"total":21,"limit":20}}}`))
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.Options{Retries: 2, Backoff: time.Millisecond})
	res, err := c.ListLeads(context.Background(), query.Query{Status: "Qualified", Page: 2})
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
	require.Len(t, res.Items, 1)
	require.Equal(t, "lead_007", res.Items[0].ID)
	require.Equal(t, 21, res.Pagination.Total)
}

func TestClient_StopsOnPermanentFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Lead not found","code":"LEAD_NOT_FOUND","retryable":false}}`))
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.Options{Retries: 5, Backoff: time.Millisecond})
	_, err := c.GetLead(context.Background(), "lead_404")
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "LEAD_NOT_FOUND", client.CodeOf(err))
	require.False(t, client.IsRetryable(err))

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Failed to delete opportunity","code":"DELETE_OPPORTUNITY_FAILED","retryable":true}}`))
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, client.Options{Retries: 1, Backoff: time.Millisecond})
	err := c.DeleteOpportunity(context.Background(), "opp_1")
	require.True(t, client.IsRetryable(err))
	require.Equal(t, int32(2), calls.Load())
}
