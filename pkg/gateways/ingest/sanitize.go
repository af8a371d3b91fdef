package ingest

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/jmoiron/sqlx/types"
)

const (
	maxCoordinateLength   = 20
	maxTextLength         = 100
	maxWeatherLabelLength = 50

	defaultWeatherType = "clear/sunny"
)

// The sanitizers below are pure and total: every field independently
// degrades to nil instead of failing the record.

// sanitizeNumber keeps finite numbers only, rounded to two decimal places,
// half away from zero.
func sanitizeNumber(value interface{}) *float64 {
	var number float64
	switch v := value.(type) {
	case float64:
		number = v
	case float32:
		number = float64(v)
	case int:
		number = float64(v)
	case int64:
		number = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		number = parsed
	default:
		return nil
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return nil
	}
	rounded := math.Round(number*100) / 100
	return &rounded
}

// sanitizeString coerces scalar values to text and truncates to maxLength
// characters, never splitting a rune. Absent values and composite shapes
// yield nil, never an empty stand-in.
func sanitizeString(value interface{}, maxLength int) *string {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	case bool:
		text = strconv.FormatBool(v)
	case json.Number:
		text = v.String()
	default:
		return nil
	}
	if runes := []rune(text); len(runes) > maxLength {
		text = string(runes[:maxLength])
	}
	return &text
}

// sanitizeBool accepts strict booleans only; "true" and 1 are not booleans.
func sanitizeBool(value interface{}) *bool {
	v, ok := value.(bool)
	if !ok {
		return nil
	}
	return &v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

// sanitizeTimestamp resolves a string, an epoch-milliseconds number or an
// already parsed instant to UTC. Unparseable values yield nil.
func sanitizeTimestamp(value interface{}) *time.Time {
	switch v := value.(type) {
	case time.Time:
		instant := v.UTC()
		return &instant
	case float64:
		instant := time.UnixMilli(int64(v)).UTC()
		return &instant
	case int64:
		instant := time.UnixMilli(v).UTC()
		return &instant
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				instant := parsed.UTC()
				return &instant
			}
		}
		return nil
	default:
		return nil
	}
}

// sanitizeDetection passes the nested detection payload through verbatim
// when it is a structured object; arrays and primitives yield nil.
func sanitizeDetection(value interface{}) types.JSONText {
	object, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	data, err := json.Marshal(object)
	if err != nil {
		return nil
	}
	return types.JSONText(data)
}

func sanitizeWeather(result entities.WeatherResult) (string, *string) {
	weatherType := defaultWeatherType
	var location *string
	if result.Success && result.Data != nil {
		if result.Data.Weather != "" {
			weatherType = *sanitizeString(result.Data.Weather, maxWeatherLabelLength)
		}
		if result.Data.Location != "" {
			location = sanitizeString(result.Data.Location, maxTextLength)
		}
	}
	return weatherType, location
}

// buildLogRecord assembles the storage-ready record for one reading plus its
// enrichment result. GPS coordinates stay text: devices report them in
// arbitrary string formats and they are stored as reported.
func buildLogRecord(reading entities.Reading, weatherResult entities.WeatherResult) *entities.LogRecord {
	payload := reading.Payload
	weatherType, location := sanitizeWeather(weatherResult)
	return &entities.LogRecord{
		DeviceID:      reading.DeviceID,
		CwaType:       weatherType,
		CwaLocation:   location,
		CwaTemp:       sanitizeNumber(payload["esp_temp"]),
		CwaHumidity:   sanitizeNumber(payload["esp_humidity"]),
		CwaDailyHigh:  sanitizeNumber(payload["esp_daily_high"]),
		CwaDailyLow:   sanitizeNumber(payload["esp_daily_low"]),
		LocalTemp:     sanitizeNumber(payload["local_temp"]),
		LocalHumidity: sanitizeNumber(payload["local_humidity"]),
		LocalGpsLat:   sanitizeString(payload["local_gps_lat"], maxCoordinateLength),
		LocalGpsLong:  sanitizeString(payload["local_gps_long"], maxCoordinateLength),
		RecordedAt:    sanitizeTimestamp(payload["timestamp"]),
		DeviceStatus:  sanitizeBool(payload["device_status"]),
		LightOn:       sanitizeBool(payload["light_on"]),
		Detection:     sanitizeDetection(payload["detection"]),
	}
}
