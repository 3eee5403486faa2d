package opusbridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

var (
	// ErrUnknownHandle is returned for ids that were never issued or were
	// already destroyed.
	ErrUnknownHandle = errors.New("opusbridge: unknown handle")
	// ErrWrongKind is returned when an encoder operation names a decoder id
	// or the other way around.
	ErrWrongKind = errors.New("opusbridge: handle has the wrong kind")
	// ErrRegistryClosed is returned after Close.
	ErrRegistryClosed = errors.New("opusbridge: registry is closed")
)

// Kind distinguishes encoder and decoder entries.
type Kind uint8

const (
	KindEncoder Kind = iota + 1
	KindDecoder
)

func (k Kind) String() string {
	switch k {
	case KindEncoder:
		return "encoder"
	case KindDecoder:
		return "decoder"
	}
	return "unknown"
}

type entry struct {
	mu   sync.Mutex
	kind Kind
	enc  *opus.Encoder
	dec  *opus.Decoder
}

func (e *entry) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enc != nil {
		e.enc.Close()
	}
	if e.dec != nil {
		e.dec.Close()
	}
}

// Registry maps integer ids to live encoder and decoder instances.
//
// Registry is safe for concurrent use. Control calls on the same id are
// serialized; calls on different ids run in parallel.
type Registry struct {
	mu      sync.Mutex
	next    int32
	entries map[int32]*entry
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int32]*entry)}
}

func (r *Registry) add(e *entry) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrRegistryClosed
	}
	r.next++
	r.entries[r.next] = e
	return r.next, nil
}

// CreateEncoder creates an encoder and returns its id.
func (r *Registry) CreateEncoder(sampleRate, channels, application int) (int32, error) {
	enc, err := opus.NewEncoder(sampleRate, channels, application)
	if err != nil {
		return 0, err
	}
	id, err := r.add(&entry{kind: KindEncoder, enc: enc})
	if err != nil {
		enc.Close()
		return 0, err
	}
	return id, nil
}

// CreateDecoder creates a decoder and returns its id.
func (r *Registry) CreateDecoder(sampleRate, channels int) (int32, error) {
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return 0, err
	}
	id, err := r.add(&entry{kind: KindDecoder, dec: dec})
	if err != nil {
		dec.Close()
		return 0, err
	}
	return id, nil
}

// Destroy releases the instance behind id. Destroy waits for a control call
// in progress on the same id to finish.
func (r *Registry) Destroy(id int32) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}
	e.close()
	return nil
}

// Kind returns the kind of the instance behind id.
func (r *Registry) Kind(id int32) (Kind, error) {
	e, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return e.kind, nil
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close destroys every instance. Later creations fail with
// ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[int32]*entry)
	r.closed = true
	r.mu.Unlock()

	for _, e := range entries {
		e.close()
	}
}

func (r *Registry) lookup(id int32) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}
	return e, nil
}

func (r *Registry) lookupKind(id int32, kind Kind) (*entry, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %d is a %s", ErrWrongKind, id, e.kind)
	}
	return e, nil
}

// CtlSet forwards a set request to the instance behind id through the
// encoder or decoder shim, depending on kind. The returned Status is the
// libopus result; the error is set only for bridge failures.
func (r *Registry) CtlSet(id int32, kind Kind, req opus.Request, value int32) (opus.Status, error) {
	e, err := r.lookupKind(id, kind)
	if err != nil {
		return opus.OK, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch kind {
	case KindEncoder:
		if e.enc.Closed() {
			return opus.OK, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
		}
		return opus.EncoderCtlSet(e.enc.Handle(), req, value), nil
	default:
		if e.dec.Closed() {
			return opus.OK, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
		}
		return opus.DecoderCtlSet(e.dec.Handle(), req, value), nil
	}
}

// CtlGet forwards a get request to the instance behind id.
func (r *Registry) CtlGet(id int32, kind Kind, req opus.Request) (int32, opus.Status, error) {
	e, err := r.lookupKind(id, kind)
	if err != nil {
		return 0, opus.OK, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var v int32
	switch kind {
	case KindEncoder:
		if e.enc.Closed() {
			return 0, opus.OK, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
		}
		st := opus.EncoderCtlGet(e.enc.Handle(), req, &v)
		return v, st, nil
	default:
		if e.dec.Closed() {
			return 0, opus.OK, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
		}
		st := opus.DecoderCtlGet(e.dec.Handle(), req, &v)
		return v, st, nil
	}
}
