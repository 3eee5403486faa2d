package opusbridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

// ErrClientClosed is returned by calls made after Close.
var ErrClientClosed = errors.New("opusbridge: client is closed")

// DialOptions configures Dial.
type DialOptions struct {
	// JSON sends text messages with JSON payloads instead of binary msgpack.
	JSON bool

	// Header is sent with the WebSocket handshake.
	Header http.Header

	// HandshakeTimeout defaults to 10 seconds.
	HandshakeTimeout time.Duration
}

// Client is a bridge client. Calls are sent one at a time; concurrent
// callers wait for each other.
type Client struct {
	conn        *websocket.Conn
	messageType int

	mu     sync.Mutex
	nextID uint64

	closeOnce sync.Once
	closed    atomic.Bool
}

// Dial connects to a bridge server at url. opts may be nil.
func Dial(ctx context.Context, url string, opts *DialOptions) (*Client, error) {
	if opts == nil {
		opts = &DialOptions{}
	}
	timeout := opts.HandshakeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, url, opts.Header)
	if err != nil {
		return nil, fmt.Errorf("opusbridge: failed to connect: %w", err)
	}
	mt := websocket.BinaryMessage
	if opts.JSON {
		mt = websocket.TextMessage
	}
	return &Client{conn: conn, messageType: mt}, nil
}

// Call sends req and waits for its response. The request ID is assigned by
// the client. A response carrying a bridge error is returned as
// *RemoteError; libopus statuses of control calls are returned in
// Response.Status without an error.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		return Response{}, ErrClientClosed
	}

	c.nextID++
	req.ID = c.nextID

	deadline, _ := ctx.Deadline()
	c.conn.SetWriteDeadline(deadline)
	c.conn.SetReadDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	data, err := Marshal(c.messageType, req)
	if err != nil {
		return Response{}, fmt.Errorf("opusbridge: encode %s: %w", req.Op, err)
	}
	if err := c.conn.WriteMessage(c.messageType, data); err != nil {
		return Response{}, c.wrapErr(ctx, req.Op, err)
	}

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			return Response{}, c.wrapErr(ctx, req.Op, err)
		}
		var resp Response
		if err := Unmarshal(mt, data, &resp); err != nil {
			return Response{}, fmt.Errorf("opusbridge: decode %s: %w", req.Op, err)
		}
		if resp.ID != req.ID {
			continue
		}
		if resp.Error != "" {
			return resp, &RemoteError{Op: req.Op, Message: resp.Error, Status: resp.Status}
		}
		return resp, nil
	}
}

func (c *Client) wrapErr(ctx context.Context, op string, err error) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("opusbridge: %s: %w", op, ctxErr)
	}
	return fmt.Errorf("opusbridge: %s: %w", op, err)
}

// Version returns the libopus version string of the server.
func (c *Client) Version(ctx context.Context) (string, error) {
	resp, err := c.Call(ctx, Request{Op: OpVersion})
	if err != nil {
		return "", err
	}
	return resp.Version, nil
}

// CreateEncoder creates an encoder on the server and returns its id.
func (c *Client) CreateEncoder(ctx context.Context, sampleRate, channels, application int) (int32, error) {
	resp, err := c.Call(ctx, Request{
		Op:          OpEncoderCreate,
		SampleRate:  sampleRate,
		Channels:    channels,
		Application: application,
	})
	if err != nil {
		return 0, err
	}
	return resp.Handle, nil
}

// CreateDecoder creates a decoder on the server and returns its id.
func (c *Client) CreateDecoder(ctx context.Context, sampleRate, channels int) (int32, error) {
	resp, err := c.Call(ctx, Request{
		Op:         OpDecoderCreate,
		SampleRate: sampleRate,
		Channels:   channels,
	})
	if err != nil {
		return 0, err
	}
	return resp.Handle, nil
}

// Destroy releases the instance behind id.
func (c *Client) Destroy(ctx context.Context, id int32) error {
	_, err := c.Call(ctx, Request{Op: OpDestroy, Handle: id})
	return err
}

// EncoderCtlSet forwards a set request to an encoder.
func (c *Client) EncoderCtlSet(ctx context.Context, id int32, req opus.Request, value int32) (opus.Status, error) {
	resp, err := c.Call(ctx, Request{Op: OpEncoderCtlSet, Handle: id, Request: req, Value: value})
	return resp.Status, err
}

// EncoderCtlGet forwards a get request to an encoder.
func (c *Client) EncoderCtlGet(ctx context.Context, id int32, req opus.Request) (int32, opus.Status, error) {
	resp, err := c.Call(ctx, Request{Op: OpEncoderCtlGet, Handle: id, Request: req})
	return resp.Value, resp.Status, err
}

// DecoderCtlSet forwards a set request to a decoder.
func (c *Client) DecoderCtlSet(ctx context.Context, id int32, req opus.Request, value int32) (opus.Status, error) {
	resp, err := c.Call(ctx, Request{Op: OpDecoderCtlSet, Handle: id, Request: req, Value: value})
	return resp.Status, err
}

// DecoderCtlGet forwards a get request to a decoder.
func (c *Client) DecoderCtlGet(ctx context.Context, id int32, req opus.Request) (int32, opus.Status, error) {
	resp, err := c.Call(ctx, Request{Op: OpDecoderCtlGet, Handle: id, Request: req})
	return resp.Value, resp.Status, err
}

// Close sends a close frame and closes the connection. The server destroys
// every instance created through this client.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}
