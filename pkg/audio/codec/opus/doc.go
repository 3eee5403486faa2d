// Package opus provides libopus encoder and decoder handles and a
// fixed-arity control interface over them.
//
// libopus configures encoders and decoders through the variadic functions
// opus_encoder_ctl and opus_decoder_ctl. cgo cannot call variadic C
// functions, and neither can most foreign function bridges, so this package
// compiles four small C entry points (see ctl_shim.h) with fixed signatures:
//
//	int encoder_ctl_set(void *state, int request, int value);
//	int encoder_ctl_get(void *state, int request, int *value);
//	int decoder_ctl_set(void *state, int request, int value);
//	int decoder_ctl_get(void *state, int request, int *value);
//
// EncoderCtlSet, EncoderCtlGet, DecoderCtlSet and DecoderCtlGet are the Go
// side of the same functions. They perform no validation and return the
// libopus status unchanged.
//
// Encoder and Decoder own a libopus instance and expose typed accessors
// (Bitrate, Complexity, Gain, ...) built on the same shim. EncoderSettings
// describes a reusable set of encoder controls that can be applied to any
// Controller.
//
// This package does not encode or decode audio.
package opus
