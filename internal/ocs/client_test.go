package ocs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return client, server
}

func TestRequestGeneratesTransactionID(t *testing.T) {
	var gotTxID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTxID = r.Header.Get("X-Transaction-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	_, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.NoError(t, err)

	require.NotEmpty(t, gotTxID)
	_, parseErr := uuid.Parse(gotTxID)
	assert.NoError(t, parseErr, "generated transaction id should be a UUID")
}

func TestRequestForwardsTransactionID(t *testing.T) {
	var gotTxID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTxID = r.Header.Get("X-Transaction-ID")
		w.Write([]byte(`{}`))
	})

	_, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "tx-fixed-123")
	require.NoError(t, err)
	assert.Equal(t, "tx-fixed-123", gotTxID)
}

func TestRequestAttachesStaticHeaders(t *testing.T) {
	var headers http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	_, err := client.Post(context.Background(), "/subscribers", map[string]string{"subscriberId": "SUB1"}, "")
	require.NoError(t, err)

	assert.Equal(t, "test-key", headers.Get("X-API-Key"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
}

func TestRequestQueryParameters(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	query := url.Values{}
	query.Set("msisdn", "436602238811")
	_, err := client.Get(context.Background(), "/subscribers/lookup", query, "")
	require.NoError(t, err)
	assert.Equal(t, "436602238811", gotQuery.Get("msisdn"))
}

func TestRequestNoContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := client.Delete(context.Background(), "/subscribers/SUB1", "")
	require.NoError(t, err)
	assert.Nil(t, result, "204 must yield no value, not an empty object")
}

func TestRequestReturnsRawBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"subscriberId":"SUB1","currentState":"active"}`))
	})

	result, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(result, &decoded))
	assert.Equal(t, "SUB1", decoded["subscriberId"])
}

func TestRequestUpstreamErrorWithMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Entity not found","details":{"entityId":"SUB1"}}`))
	})

	_, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Entity not found", apiErr.Message)
	assert.Equal(t, "SUB1", apiErr.Details["entityId"])
}

func TestRequestUpstreamErrorRawTextFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestRequestUpstreamErrorEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusForbidden), apiErr.Message)
}

func TestRequestNetworkErrorMapsTo503(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Service Unavailable")
}

func TestRequestUnmarshalableBodyMapsTo500(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Post(context.Background(), "/subscribers", func() {}, "")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Internal Client Error")
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{APIKey: "k"})
	require.Error(t, err)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL + "/", APIKey: "k"})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/subscribers/SUB1", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "/subscribers/SUB1", gotPath)
}
