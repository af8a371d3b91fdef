package ingest

import (
	"encoding/json"
	"errors"

	"github.com/ecosense/eco-ingest/pkg/entities"
)

// requiredMarkerField is the numeric field a payload must carry to count as
// telemetry at all.
const requiredMarkerField = "esp_temp"

var (
	errMalformedPayload = errors.New("payload is not a well-formed JSON object")
	errNotTelemetry     = errors.New("payload is missing the esp_temp marker")
)

// decodeReading turns raw data-channel bytes into a Reading, or rejects.
// A decodable payload without a numeric marker is "not telemetry", which is
// a different rejection than malformed JSON.
func decodeReading(deviceID string, body []byte) (entities.Reading, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return entities.Reading{}, errMalformedPayload
	}
	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return entities.Reading{}, errMalformedPayload
	}
	if _, ok := payload[requiredMarkerField].(float64); !ok {
		return entities.Reading{}, errNotTelemetry
	}
	return entities.Reading{DeviceID: deviceID, Payload: payload}, nil
}
