package opusbridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

// Operation names.
const (
	OpVersion       = "version"
	OpEncoderCreate = "encoder.create"
	OpDecoderCreate = "decoder.create"
	OpDestroy       = "destroy"
	OpEncoderCtlSet = "encoder.ctl_set"
	OpEncoderCtlGet = "encoder.ctl_get"
	OpDecoderCtlSet = "decoder.ctl_set"
	OpDecoderCtlGet = "decoder.ctl_get"
)

// Request is a single bridge call.
type Request struct {
	ID          uint64       `json:"id" msgpack:"id"`
	Op          string       `json:"op" msgpack:"op"`
	Handle      int32        `json:"handle,omitempty" msgpack:"handle,omitempty"`
	SampleRate  int          `json:"sample_rate,omitempty" msgpack:"sample_rate,omitempty"`
	Channels    int          `json:"channels,omitempty" msgpack:"channels,omitempty"`
	Application int          `json:"application,omitempty" msgpack:"application,omitempty"`
	Request     opus.Request `json:"request,omitempty" msgpack:"request,omitempty"`
	Value       int32        `json:"value,omitempty" msgpack:"value,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID      uint64      `json:"id" msgpack:"id"`
	Handle  int32       `json:"handle,omitempty" msgpack:"handle,omitempty"`
	Status  opus.Status `json:"status" msgpack:"status"`
	Value   int32       `json:"value" msgpack:"value"`
	Version string      `json:"version,omitempty" msgpack:"version,omitempty"`
	Error   string      `json:"error,omitempty" msgpack:"error,omitempty"`
}

// RemoteError is a bridge-level failure reported by the server.
type RemoteError struct {
	Op      string
	Message string
	Status  opus.Status
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("opusbridge: %s: %s", e.Op, e.Message)
}

// Unwrap returns the libopus status behind the failure, if any, so that
// errors.Is(err, opus.BadArg) works across the bridge.
func (e *RemoteError) Unwrap() error {
	if e.Status == opus.OK {
		return nil
	}
	return e.Status
}

var errUnsupportedMessage = errors.New("opusbridge: unsupported websocket message type")

// Marshal encodes v for the given WebSocket message type: msgpack for
// binary messages, JSON for text messages.
func Marshal(messageType int, v any) ([]byte, error) {
	switch messageType {
	case websocket.BinaryMessage:
		return msgpack.Marshal(v)
	case websocket.TextMessage:
		return json.Marshal(v)
	}
	return nil, errUnsupportedMessage
}

// Unmarshal decodes data received as the given WebSocket message type.
func Unmarshal(messageType int, data []byte, v any) error {
	switch messageType {
	case websocket.BinaryMessage:
		return msgpack.Unmarshal(data, v)
	case websocket.TextMessage:
		return json.Unmarshal(data, v)
	}
	return errUnsupportedMessage
}
