// Package opusbridge exposes Opus encoder and decoder controls to callers
// that cannot hold native pointers, such as browser or WebGL clients.
//
// Callers refer to instances by small integer ids issued by a Registry. Ids
// start at 1; 0 is never a valid handle. Every control operation is
// forwarded to the fixed-arity shim in package opus and the libopus status
// is returned unchanged in Response.Status. Failures that belong to the
// bridge itself (unknown id, wrong instance kind, malformed request) are
// reported in Response.Error instead.
//
// The Server speaks a request/response protocol over WebSocket. Binary
// messages carry msgpack, text messages carry JSON, and each response uses
// the same encoding as its request. Every connection owns its own Registry,
// which is destroyed when the connection closes.
//
// Example:
//
//	c, err := opusbridge.Dial(ctx, "ws://localhost:7070/opus", nil)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	id, err := c.CreateEncoder(ctx, 48000, 1, opus.ApplicationVoIP)
//	st, err := c.EncoderCtlSet(ctx, id, opus.SetBitrate, 24000)
package opusbridge
