package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/google/uuid"
)

const canonicalUUIDLength = 36

var (
	ErrMalformedTopic = errors.New("malformed topic")
	ErrInvalidDevice  = errors.New("device id is not a canonical UUID")
	ErrUnknownChannel = errors.New("unknown channel")
)

// Topic is the parsed form of an inbound `<namespace>/<deviceId>/<channel>`
// topic string.
type Topic struct {
	Namespace string
	DeviceID  string
	Channel   string
}

// ParseTopic validates and splits a raw topic. The device segment must be a
// dashed RFC-4122 UUID and the channel one of the fixed set. Pure function,
// no side effects.
func ParseTopic(raw string) (Topic, error) {
	segments := strings.Split(raw, "/")
	if len(segments) != 3 {
		return Topic{}, ErrMalformedTopic
	}
	namespace, deviceID, channel := segments[0], segments[1], segments[2]
	if namespace == "" {
		return Topic{}, ErrMalformedTopic
	}

	if len(deviceID) != canonicalUUIDLength {
		return Topic{}, ErrInvalidDevice
	}
	parsed, err := uuid.Parse(deviceID)
	if err != nil {
		return Topic{}, ErrInvalidDevice
	}
	if parsed.Variant() != uuid.RFC4122 || parsed.Version() < 1 || parsed.Version() > 5 {
		return Topic{}, ErrInvalidDevice
	}

	switch channel {
	case entities.ChannelStatus, entities.ChannelData, entities.ChannelServerResponse:
	default:
		return Topic{}, ErrUnknownChannel
	}

	return Topic{Namespace: namespace, DeviceID: deviceID, Channel: channel}, nil
}

// DeviceTopic builds the topic for one device channel.
func DeviceTopic(namespace, deviceID, channel string) string {
	return fmt.Sprintf("%s/%s/%s", namespace, deviceID, channel)
}
