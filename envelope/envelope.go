// Package envelope implements the optional user-data transform pipeline
// described in spec §4.6: serialize, then compress, applied to a
// high-level message before it becomes CONNECT/ACK custom data or USER
// plaintext. Neither transform touches the negotiation state machine or
// the AEAD layer -- Envelope only ever runs at the edges of a message.
package envelope

import "fmt"

// Serializer turns a high-level Go value into bytes and back. none is the
// zero-cost passthrough used when the caller already hands PKSTL raw
// bytes.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Compressor shrinks a serialized payload before it goes on the wire.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Envelope composes a Serializer and a Compressor. Either may be the noop
// variant, in which case that stage is a passthrough.
type Envelope struct {
	Serializer Serializer
	Compressor Compressor
}

// New builds an Envelope from the two pluggable stages. Passing nil for
// either uses the noop variant, matching spec §4.6's "either may be
// absent" wording.
func New(s Serializer, c Compressor) *Envelope {
	if s == nil {
		s = NoneSerializer{}
	}
	if c == nil {
		c = NoopCompressor{}
	}
	return &Envelope{Serializer: s, Compressor: c}
}

// Pack serializes then compresses v, producing the bytes PKSTL hands to
// the framing/crypto layers as custom data or USER plaintext.
func (e *Envelope) Pack(v any) ([]byte, error) {
	raw, err := e.Serializer.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("envelope: serialize: %w", err)
	}
	compressed, err := e.Compressor.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}
	return compressed, nil
}

// Unpack reverses Pack: decompress then deserialize into v.
func (e *Envelope) Unpack(data []byte, v any) error {
	raw, err := e.Compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("envelope: decompress: %w", err)
	}
	if err := e.Serializer.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("envelope: deserialize: %w", err)
	}
	return nil
}
