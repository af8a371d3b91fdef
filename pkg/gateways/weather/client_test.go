package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testTimeout = 2 * time.Second

func TestCurrentByCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/24.123/120.456", r.URL.Path)
		w.Write([]byte(`{"weather": "Cloudy", "location": "Taipei", "uvIndex": 3}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, testTimeout)
	result := client.CurrentByCoordinates(context.Background(), "24.123", "120.456")
	assert.True(t, result.Success)
	assert.Equal(t, "Cloudy", result.Data.Weather)
	assert.Equal(t, "Taipei", result.Data.Location)
	assert.Empty(t, result.Msg)
}

func TestCurrentByCoordinatesWhenServerErrorThenNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, testTimeout)
	result := client.CurrentByCoordinates(context.Background(), "24.123", "120.456")
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.NotEmpty(t, result.Msg)
}

func TestCurrentByCoordinatesWhenMalformedResponseThenNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, testTimeout)
	result := client.CurrentByCoordinates(context.Background(), "24.123", "120.456")
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
}

func TestCurrentByCoordinatesWhenServiceUnreachableThenNoData(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", testTimeout)
	result := client.CurrentByCoordinates(context.Background(), "24.123", "120.456")
	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.NotEmpty(t, result.Msg)
}

func TestCurrentByCoordinatesWhenContextCancelledThenNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewHTTPClient(server.URL, testTimeout)
	result := client.CurrentByCoordinates(ctx, "24.123", "120.456")
	assert.False(t, result.Success)
}
