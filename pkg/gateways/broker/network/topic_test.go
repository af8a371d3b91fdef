package network

import (
	"testing"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/stretchr/testify/assert"
)

const testDeviceID = "0b7f55c7-77f9-4f06-9b6a-2f2a8706a1d6"

func TestParseTopic(t *testing.T) {
	topic, err := ParseTopic("eco_clients/" + testDeviceID + "/data")
	assert.Nil(t, err)
	assert.Equal(t, "eco_clients", topic.Namespace)
	assert.Equal(t, testDeviceID, topic.DeviceID)
	assert.Equal(t, entities.ChannelData, topic.Channel)
}

func TestParseTopicWhenStatusChannel(t *testing.T) {
	topic, err := ParseTopic("eco_clients/" + testDeviceID + "/status")
	assert.Nil(t, err)
	assert.Equal(t, entities.ChannelStatus, topic.Channel)
}

func TestParseTopicWhenServerResponseChannel(t *testing.T) {
	topic, err := ParseTopic("eco_clients/" + testDeviceID + "/server_response")
	assert.Nil(t, err)
	assert.Equal(t, entities.ChannelServerResponse, topic.Channel)
}

func TestParseTopicWhenTooFewSegmentsThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/" + testDeviceID)
	assert.Equal(t, ErrMalformedTopic, err)
}

func TestParseTopicWhenTooManySegmentsThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/" + testDeviceID + "/data/extra")
	assert.Equal(t, ErrMalformedTopic, err)
}

func TestParseTopicWhenEmptyNamespaceThenReturnError(t *testing.T) {
	_, err := ParseTopic("/" + testDeviceID + "/data")
	assert.Equal(t, ErrMalformedTopic, err)
}

func TestParseTopicWhenDeviceIDNotUUIDThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/not-a-uuid/data")
	assert.Equal(t, ErrInvalidDevice, err)
}

func TestParseTopicWhenDeviceIDMissingDashesThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/0b7f55c777f94f069b6a2f2a8706a1d6/data")
	assert.Equal(t, ErrInvalidDevice, err)
}

func TestParseTopicWhenDeviceIDHasInvalidVersionThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/0b7f55c7-77f9-0f06-9b6a-2f2a8706a1d6/data")
	assert.Equal(t, ErrInvalidDevice, err)
}

func TestParseTopicWhenDeviceIDHasInvalidVariantThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/0b7f55c7-77f9-4f06-1b6a-2f2a8706a1d6/data")
	assert.Equal(t, ErrInvalidDevice, err)
}

func TestParseTopicWhenUnknownChannelThenReturnError(t *testing.T) {
	_, err := ParseTopic("eco_clients/" + testDeviceID + "/telemetry")
	assert.Equal(t, ErrUnknownChannel, err)
}

func TestDeviceTopic(t *testing.T) {
	topic := DeviceTopic("eco_clients", testDeviceID, entities.ChannelServerResponse)
	assert.Equal(t, "eco_clients/"+testDeviceID+"/server_response", topic)
}
