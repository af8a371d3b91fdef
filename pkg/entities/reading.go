package entities

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	ChannelStatus         string = "status"
	ChannelData           string = "data"
	ChannelServerResponse string = "server_response"
)

// Reading is the decoded payload of one data-channel message. It lives only
// for the duration of that message's processing and is never mutated after
// construction.
type Reading struct {
	DeviceID string
	Payload  map[string]interface{}
}

type WeatherData struct {
	Weather  string `json:"weather"`
	Location string `json:"location"`
}

// WeatherResult is the enrichment envelope. Success false means "no data";
// it is never an error to the caller.
type WeatherResult struct {
	Success bool
	Data    *WeatherData
	Msg     string
}

// LogRecord is the sanitized, storage-ready form of a Reading. Nil pointers
// persist as SQL NULL.
type LogRecord struct {
	DeviceID      string         `db:"device_id"`
	CwaType       string         `db:"cwa_type"`
	CwaLocation   *string        `db:"cwa_location"`
	CwaTemp       *float64       `db:"cwa_temp"`
	CwaHumidity   *float64       `db:"cwa_humidity"`
	CwaDailyHigh  *float64       `db:"cwa_daily_high"`
	CwaDailyLow   *float64       `db:"cwa_daily_low"`
	LocalTemp     *float64       `db:"local_temp"`
	LocalHumidity *float64       `db:"local_humidity"`
	LocalGpsLat   *string        `db:"local_gps_lat"`
	LocalGpsLong  *string        `db:"local_gps_long"`
	RecordedAt    *time.Time     `db:"recorded_at"`
	DeviceStatus  *bool          `db:"device_status"`
	LightOn       *bool          `db:"light_on"`
	Detection     types.JSONText `db:"detection"`
}
