// Package wire implements the PKSTL framing codec: the fixed header and
// trailer that wrap every message exchanged between two peers, independent
// of what the message type's content means.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// MessageType identifies the kind of payload carried by a frame.
type MessageType uint16

const (
	MsgUser    MessageType = 0
	MsgConnect MessageType = 1
	MsgAck     MessageType = 2
)

func (t MessageType) String() string {
	switch t {
	case MsgUser:
		return "USER"
	case MsgConnect:
		return "CONNECT"
	case MsgAck:
		return "ACK"
	default:
		return fmt.Sprintf("MessageType(%d)", uint16(t))
	}
}

const (
	// headerSize is MAGIC || VERSION || ENCAPSULATED_LEN || MSG_TYPE.
	headerSize = 18
	// SignatureSize is the trailer length for CONNECT and ACK frames.
	SignatureSize = 64
	// Version is the only protocol version this codec understands.
	Version uint32 = 1
	// DefaultMaxFrameSize bounds ENCAPSULATED_LEN absent an explicit override.
	DefaultMaxFrameSize uint64 = 40 << 20
)

// Magic is the four-byte value every frame must start with.
var Magic = [4]byte{0xE2, 0xC2, 0xE2, 0xD2}

var (
	// ErrNeedMore indicates the buffer does not yet hold a complete frame.
	ErrNeedMore = errors.New("wire: need more bytes")
	// ErrBadMagic indicates the first four bytes did not match Magic.
	ErrBadMagic = errors.New("wire: bad magic")
	// ErrUnsupportedVersion indicates the VERSION field is not 1.
	ErrUnsupportedVersion = errors.New("wire: unsupported version")
	// ErrTooLong indicates ENCAPSULATED_LEN exceeds the configured maximum.
	ErrTooLong = errors.New("wire: frame too long")
)

// RawMessage is one fully parsed frame, trailer separated from content.
type RawMessage struct {
	Type      MessageType
	Content   []byte
	Signature []byte // present iff Type is MsgConnect or MsgAck
}

func hasSignature(t MessageType) bool {
	return t == MsgConnect || t == MsgAck
}

// Encode prepends the header and appends the trailer (if any) for msgType.
// trailer must be nil for MsgUser and exactly SignatureSize bytes otherwise;
// callers assemble the signature themselves (it is computed over header ||
// payload, which Encode has not yet produced when the caller signs).
func Encode(msgType MessageType, payload []byte, trailer []byte) []byte {
	if hasSignature(msgType) && len(trailer) != SignatureSize {
		panic(fmt.Sprintf("wire: %s frame requires a %d-byte trailer, got %d", msgType, SignatureSize, len(trailer)))
	}
	if !hasSignature(msgType) && len(trailer) != 0 {
		panic(fmt.Sprintf("wire: %s frame must not carry a trailer", msgType))
	}

	encapsulatedLen := uint64(2 + len(payload))
	out := make([]byte, headerSize+len(payload)+len(trailer))
	copy(out[0:4], Magic[:])
	binary.BigEndian.PutUint32(out[4:8], Version)
	binary.BigEndian.PutUint64(out[8:16], encapsulatedLen)
	binary.BigEndian.PutUint16(out[16:18], uint16(msgType))
	copy(out[headerSize:], payload)
	copy(out[headerSize+len(payload):], trailer)
	return out
}

// HeaderAndPayload returns the bytes a CONNECT/ACK signature must cover:
// the header plus the payload, i.e. everything Encode emits before the
// trailer. Exposed so callers can sign before the trailer exists.
func HeaderAndPayload(msgType MessageType, payload []byte) []byte {
	encapsulatedLen := uint64(2 + len(payload))
	out := make([]byte, headerSize+len(payload))
	copy(out[0:4], Magic[:])
	binary.BigEndian.PutUint32(out[4:8], Version)
	binary.BigEndian.PutUint64(out[8:16], encapsulatedLen)
	binary.BigEndian.PutUint16(out[16:18], uint16(msgType))
	copy(out[headerSize:], payload)
	return out
}

// TryParse attempts to decode exactly one frame from the front of buf. On
// success it advances buf past the consumed bytes. maxFrameSize of 0 means
// DefaultMaxFrameSize.
func TryParse(buf *bytes.Buffer, maxFrameSize uint64) (*RawMessage, error) {
	if maxFrameSize == 0 {
		maxFrameSize = DefaultMaxFrameSize
	}

	b := buf.Bytes()
	if len(b) < headerSize {
		return nil, ErrNeedMore
	}
	if !bytes.Equal(b[0:4], Magic[:]) {
		return nil, ErrBadMagic
	}
	version := binary.BigEndian.Uint32(b[4:8])
	if version != Version {
		return nil, ErrUnsupportedVersion
	}
	encapsulatedLen := binary.BigEndian.Uint64(b[8:16])
	if encapsulatedLen < 2 {
		return nil, fmt.Errorf("wire: encapsulated length %d shorter than MSG_TYPE field", encapsulatedLen)
	}
	if encapsulatedLen > maxFrameSize {
		return nil, ErrTooLong
	}
	msgType := MessageType(binary.BigEndian.Uint16(b[16:18]))

	trailerLen := 0
	if hasSignature(msgType) {
		trailerLen = SignatureSize
	}

	total := headerSize + int(encapsulatedLen-2) + trailerLen
	if len(b) < total {
		return nil, ErrNeedMore
	}

	content := make([]byte, encapsulatedLen-2)
	copy(content, b[headerSize:headerSize+int(encapsulatedLen-2)])

	var sig []byte
	if trailerLen > 0 {
		sig = make([]byte, trailerLen)
		copy(sig, b[headerSize+int(encapsulatedLen-2):total])
	}

	buf.Next(total)
	return &RawMessage{Type: msgType, Content: content, Signature: sig}, nil
}
