package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecosense/eco-ingest/pkg/entities"
)

// Client requests current weather for a coordinate pair. Implementations
// never return an error: every failure mode is folded into the result
// envelope so the caller can fall back to defaults.
type Client interface {
	CurrentByCoordinates(ctx context.Context, lat, long string) entities.WeatherResult
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) CurrentByCoordinates(ctx context.Context, lat, long string) entities.WeatherResult {
	requestURL := fmt.Sprintf("%s/%s/%s", c.baseURL, lat, long)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return noData(err.Error())
	}

	response, err := c.client.Do(request)
	if err != nil {
		return noData(err.Error())
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return noData(fmt.Sprintf("unexpected status code %d", response.StatusCode))
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return noData(err.Error())
	}

	data := entities.WeatherData{}
	if err := json.Unmarshal(body, &data); err != nil {
		return noData(err.Error())
	}

	return entities.WeatherResult{Success: true, Data: &data}
}

func noData(msg string) entities.WeatherResult {
	return entities.WeatherResult{Success: false, Data: nil, Msg: msg}
}
