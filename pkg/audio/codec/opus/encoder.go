package opus

// For go build: use pkg-config to find system libopus

/*
#cgo pkg-config: opus
#include <opus.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// Encoder owns a libopus encoder instance.
//
// An Encoder is not safe for concurrent use; callers sharing one across
// goroutines must serialize access themselves.
type Encoder struct {
	sampleRate int
	channels   int
	cEnc       *C.OpusEncoder
}

// NewEncoder creates a new Opus encoder.
//
// Parameters:
//   - sampleRate: Sample rate of input signal (8000, 12000, 16000, 24000, or 48000)
//   - channels: Number of channels (1 or 2)
//   - application: Intended application type (ApplicationVoIP, ApplicationAudio, etc.)
//
// Arguments are validated by libopus; a rejected argument yields an error
// wrapping the returned Status.
func NewEncoder(sampleRate, channels, application int) (*Encoder, error) {
	var err C.int
	cEnc := C.opus_encoder_create(C.opus_int32(sampleRate), C.int(channels), C.int(application), &err)
	if err != C.OPUS_OK {
		return nil, fmt.Errorf("opus: encoder create failed: %w", Status(err))
	}
	return &Encoder{
		sampleRate: sampleRate,
		channels:   channels,
		cEnc:       cEnc,
	}, nil
}

// NewVoIPEncoder creates a new Opus encoder optimized for voice.
func NewVoIPEncoder(sampleRate, channels int) (*Encoder, error) {
	return NewEncoder(sampleRate, channels, ApplicationVoIP)
}

// NewAudioEncoder creates a new Opus encoder optimized for music/audio.
func NewAudioEncoder(sampleRate, channels int) (*Encoder, error) {
	return NewEncoder(sampleRate, channels, ApplicationAudio)
}

// Close releases the encoder resources. It is safe to call more than once.
func (e *Encoder) Close() {
	if e.cEnc != nil {
		C.opus_encoder_destroy(e.cEnc)
		e.cEnc = nil
	}
}

// Closed reports whether Close has been called.
func (e *Encoder) Closed() bool {
	return e.cEnc == nil
}

// Handle returns the underlying OpusEncoder pointer for use with
// EncoderCtlSet and EncoderCtlGet, or nil after Close.
func (e *Encoder) Handle() unsafe.Pointer {
	return unsafe.Pointer(e.cEnc)
}

// CtlSet sends a set request through the encoder shim.
// A closed encoder returns InvalidState without calling libopus.
func (e *Encoder) CtlSet(req Request, value int32) Status {
	if e.cEnc == nil {
		return InvalidState
	}
	return EncoderCtlSet(unsafe.Pointer(e.cEnc), req, value)
}

// CtlGet sends a get request through the encoder shim.
// A closed encoder returns InvalidState without calling libopus.
func (e *Encoder) CtlGet(req Request) (int32, Status) {
	if e.cEnc == nil {
		return 0, InvalidState
	}
	var v int32
	st := EncoderCtlGet(unsafe.Pointer(e.cEnc), req, &v)
	return v, st
}

// SampleRate returns the sample rate this encoder was created with.
func (e *Encoder) SampleRate() int {
	return e.sampleRate
}

// Channels returns the number of channels of this encoder.
func (e *Encoder) Channels() int {
	return e.channels
}
