package opus

import (
	"errors"
	"fmt"
)

// Status is a libopus return code. Zero is success, negative values are
// errors. Status implements error so it can be wrapped and matched with
// errors.Is.
type Status int32

// libopus status codes.
const (
	OK             Status = 0
	BadArg         Status = -1
	BufferTooSmall Status = -2
	InternalError  Status = -3
	InvalidPacket  Status = -4
	Unimplemented  Status = -5
	InvalidState   Status = -6
	AllocFail      Status = -7
)

// ErrClosed is returned by typed accessors on a closed Encoder or Decoder.
var ErrClosed = errors.New("opus: handle is closed")

// Error returns the same text as opus_strerror.
func (s Status) Error() string {
	switch s {
	case OK:
		return "success"
	case BadArg:
		return "invalid argument"
	case BufferTooSmall:
		return "buffer too small"
	case InternalError:
		return "internal error"
	case InvalidPacket:
		return "corrupted stream"
	case Unimplemented:
		return "request not implemented"
	case InvalidState:
		return "invalid state"
	case AllocFail:
		return "memory allocation failed"
	}
	return "unknown error"
}

// Name returns the C macro name of the status, e.g. "OPUS_BAD_ARG".
func (s Status) Name() string {
	switch s {
	case OK:
		return "OPUS_OK"
	case BadArg:
		return "OPUS_BAD_ARG"
	case BufferTooSmall:
		return "OPUS_BUFFER_TOO_SMALL"
	case InternalError:
		return "OPUS_INTERNAL_ERROR"
	case InvalidPacket:
		return "OPUS_INVALID_PACKET"
	case Unimplemented:
		return "OPUS_UNIMPLEMENTED"
	case InvalidState:
		return "OPUS_INVALID_STATE"
	case AllocFail:
		return "OPUS_ALLOC_FAIL"
	}
	return fmt.Sprintf("OPUS_STATUS(%d)", int32(s))
}

// Err returns nil for OK and s otherwise.
func (s Status) Err() error {
	if s == OK {
		return nil
	}
	return s
}

// CtlError describes a control request that libopus rejected.
type CtlError struct {
	Op      string
	Request Request
	Value   int32
	Status  Status
}

func (e *CtlError) Error() string {
	if e.Request.Direction() == DirectionSet {
		return fmt.Sprintf("opus: %s %s(%d): %s", e.Op, e.Request, e.Value, e.Status.Error())
	}
	return fmt.Sprintf("opus: %s %s: %s", e.Op, e.Request, e.Status.Error())
}

// Unwrap returns the underlying Status.
func (e *CtlError) Unwrap() error {
	return e.Status
}
