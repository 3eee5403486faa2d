package opusbridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

// Dispatcher executes bridge requests against a Registry.
type Dispatcher struct {
	reg    *Registry
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. If logger is nil, slog.Default() is
// used.
func NewDispatcher(reg *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{reg: reg, logger: logger}
}

// Handle executes req and returns its response. It never returns a nil
// response; failures are described in Response.Error.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID, Handle: req.Handle}
	if err := ctx.Err(); err != nil {
		return fail(resp, err)
	}

	switch req.Op {
	case OpVersion:
		resp.Version = opus.Version()

	case OpEncoderCreate:
		id, err := d.reg.CreateEncoder(req.SampleRate, req.Channels, req.Application)
		if err != nil {
			return fail(resp, err)
		}
		resp.Handle = id

	case OpDecoderCreate:
		id, err := d.reg.CreateDecoder(req.SampleRate, req.Channels)
		if err != nil {
			return fail(resp, err)
		}
		resp.Handle = id

	case OpDestroy:
		if err := d.reg.Destroy(req.Handle); err != nil {
			return fail(resp, err)
		}

	case OpEncoderCtlSet, OpDecoderCtlSet:
		// libopus reads the argument of a get request as a pointer.
		if req.Request.Known() && req.Request.Direction() == opus.DirectionGet {
			return fail(resp, fmt.Errorf("%s is not a set request", req.Request))
		}
		st, err := d.reg.CtlSet(req.Handle, opKind(req.Op), req.Request, req.Value)
		if err != nil {
			return fail(resp, err)
		}
		resp.Status = st

	case OpEncoderCtlGet, OpDecoderCtlGet:
		v, st, err := d.reg.CtlGet(req.Handle, opKind(req.Op), req.Request)
		if err != nil {
			return fail(resp, err)
		}
		resp.Status = st
		resp.Value = v

	default:
		return fail(resp, fmt.Errorf("unknown op %q", req.Op))
	}

	if d.logger.Enabled(ctx, slog.LevelDebug) {
		d.logger.Debug("bridge call",
			"op", req.Op,
			"handle", resp.Handle,
			"request", req.Request.String(),
			"status", resp.Status.Name())
	}
	return resp
}

func opKind(op string) Kind {
	switch op {
	case OpEncoderCtlSet, OpEncoderCtlGet, OpEncoderCreate:
		return KindEncoder
	}
	return KindDecoder
}

func fail(resp Response, err error) Response {
	resp.Error = err.Error()
	var st opus.Status
	if errors.As(err, &st) {
		resp.Status = st
	}
	return resp
}
