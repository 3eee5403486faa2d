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

// Decoder owns a libopus decoder instance.
type Decoder struct {
	sampleRate int
	channels   int
	cDec       *C.OpusDecoder
}

// NewDecoder creates a new Opus decoder.
//
// Parameters:
//   - sampleRate: Sample rate to decode at (8000, 12000, 16000, 24000, or 48000)
//   - channels: Number of channels (1 or 2)
func NewDecoder(sampleRate, channels int) (*Decoder, error) {
	var err C.int
	cDec := C.opus_decoder_create(C.opus_int32(sampleRate), C.int(channels), &err)
	if err != C.OPUS_OK {
		return nil, fmt.Errorf("opus: decoder create failed: %w", Status(err))
	}
	return &Decoder{
		sampleRate: sampleRate,
		channels:   channels,
		cDec:       cDec,
	}, nil
}

// Close releases the decoder resources. It is safe to call more than once.
func (d *Decoder) Close() {
	if d.cDec != nil {
		C.opus_decoder_destroy(d.cDec)
		d.cDec = nil
	}
}

// Closed reports whether Close has been called.
func (d *Decoder) Closed() bool {
	return d.cDec == nil
}

// Handle returns the underlying OpusDecoder pointer for use with
// DecoderCtlSet and DecoderCtlGet, or nil after Close.
func (d *Decoder) Handle() unsafe.Pointer {
	return unsafe.Pointer(d.cDec)
}

// CtlSet sends a set request through the decoder shim.
// A closed decoder returns InvalidState without calling libopus.
func (d *Decoder) CtlSet(req Request, value int32) Status {
	if d.cDec == nil {
		return InvalidState
	}
	return DecoderCtlSet(unsafe.Pointer(d.cDec), req, value)
}

// CtlGet sends a get request through the decoder shim.
// A closed decoder returns InvalidState without calling libopus.
func (d *Decoder) CtlGet(req Request) (int32, Status) {
	if d.cDec == nil {
		return 0, InvalidState
	}
	var v int32
	st := DecoderCtlGet(unsafe.Pointer(d.cDec), req, &v)
	return v, st
}

// SampleRate returns the sample rate of this decoder.
func (d *Decoder) SampleRate() int {
	return d.sampleRate
}

// Channels returns the number of channels of this decoder.
func (d *Decoder) Channels() int {
	return d.channels
}
