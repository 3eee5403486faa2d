package opus

// For go build: use pkg-config to find system libopus.
// ctl_shim.c is compiled with the same flags.

/*
#cgo pkg-config: opus
#include "ctl_shim.h"
*/
import "C"
import "unsafe"

// EncoderCtlSet calls encoder_ctl_set, passing value by value.
//
// st must point to a live OpusEncoder. Nothing is validated here: an invalid
// request is rejected by libopus itself and its status is returned as is.
func EncoderCtlSet(st unsafe.Pointer, req Request, value int32) Status {
	return Status(C.encoder_ctl_set(st, C.int(req), C.int(value)))
}

// EncoderCtlGet calls encoder_ctl_get, letting libopus write the queried
// value into *value.
func EncoderCtlGet(st unsafe.Pointer, req Request, value *int32) Status {
	return Status(C.encoder_ctl_get(st, C.int(req), (*C.int)(unsafe.Pointer(value))))
}

// DecoderCtlSet calls decoder_ctl_set, passing value by value.
//
// st must point to a live OpusDecoder.
func DecoderCtlSet(st unsafe.Pointer, req Request, value int32) Status {
	return Status(C.decoder_ctl_set(st, C.int(req), C.int(value)))
}

// DecoderCtlGet calls decoder_ctl_get, letting libopus write the queried
// value into *value.
func DecoderCtlGet(st unsafe.Pointer, req Request, value *int32) Status {
	return Status(C.decoder_ctl_get(st, C.int(req), (*C.int)(unsafe.Pointer(value))))
}

// Controller is implemented by anything that accepts Opus control requests.
// Encoder routes through the encoder shim and Decoder through the decoder
// shim.
type Controller interface {
	CtlSet(req Request, value int32) Status
	CtlGet(req Request) (int32, Status)
}

func setCtl(c Controller, op string, req Request, value int32) error {
	if st := c.CtlSet(req, value); st != OK {
		return &CtlError{Op: op, Request: req, Value: value, Status: st}
	}
	return nil
}

func getCtl(c Controller, op string, req Request) (int32, error) {
	v, st := c.CtlGet(req)
	if st != OK {
		return 0, &CtlError{Op: op, Request: req, Status: st}
	}
	return v, nil
}

func boolValue(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
