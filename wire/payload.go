package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// SigAlgo identifies the signature scheme used to sign a CONNECT message.
// It is carried on the wire so a future scheme can be added without
// changing the frame layout.
type SigAlgo uint32

const SigAlgoEd25519 SigAlgo = 1

const (
	epkSize       = 32
	sigAlgoSize   = 4
	sigPubKeySize = 32
	challengeSize = 32

	connectFixedSize = epkSize + sigAlgoSize + sigPubKeySize // 68
	ackFixedSize     = challengeSize                          // 32
)

var (
	// ErrUnsupportedSigAlgo is returned when a CONNECT frame names an
	// unknown signature algorithm.
	ErrUnsupportedSigAlgo = errors.New("wire: unsupported signature algorithm")
	// ErrPayloadTooShort is returned when a CONNECT/ACK payload is smaller
	// than its fixed-size prefix.
	ErrPayloadTooShort = errors.New("wire: payload shorter than fixed prefix")
)

// ConnectPayload is the decoded MSG_CONTENT of a CONNECT frame.
type ConnectPayload struct {
	EPK        [epkSize]byte
	SigAlgo    SigAlgo
	SigPubKey  [sigPubKeySize]byte
	CustomData []byte
}

// EncodeConnect serializes a ConnectPayload to MSG_CONTENT bytes.
func EncodeConnect(p ConnectPayload) []byte {
	out := make([]byte, connectFixedSize+len(p.CustomData))
	copy(out[0:epkSize], p.EPK[:])
	binary.BigEndian.PutUint32(out[epkSize:epkSize+sigAlgoSize], uint32(p.SigAlgo))
	copy(out[epkSize+sigAlgoSize:connectFixedSize], p.SigPubKey[:])
	copy(out[connectFixedSize:], p.CustomData)
	return out
}

// DecodeConnect parses MSG_CONTENT bytes of a CONNECT frame. It does not
// reject unknown SigAlgo values itself -- callers check that against the
// set of algorithms they support, since wire has no notion of which
// algorithms exist.
func DecodeConnect(content []byte) (ConnectPayload, error) {
	if len(content) < connectFixedSize {
		return ConnectPayload{}, fmt.Errorf("%w: CONNECT needs >= %d bytes, got %d", ErrPayloadTooShort, connectFixedSize, len(content))
	}
	var p ConnectPayload
	copy(p.EPK[:], content[0:epkSize])
	p.SigAlgo = SigAlgo(binary.BigEndian.Uint32(content[epkSize : epkSize+sigAlgoSize]))
	copy(p.SigPubKey[:], content[epkSize+sigAlgoSize:connectFixedSize])
	if n := len(content) - connectFixedSize; n > 0 {
		p.CustomData = make([]byte, n)
		copy(p.CustomData, content[connectFixedSize:])
	}
	return p, nil
}

// AckPayload is the decoded MSG_CONTENT of an ACK frame.
type AckPayload struct {
	Challenge  [challengeSize]byte
	CustomData []byte
}

// EncodeAck serializes an AckPayload to MSG_CONTENT bytes.
func EncodeAck(p AckPayload) []byte {
	out := make([]byte, ackFixedSize+len(p.CustomData))
	copy(out[0:challengeSize], p.Challenge[:])
	copy(out[ackFixedSize:], p.CustomData)
	return out
}

// DecodeAck parses MSG_CONTENT bytes of an ACK frame.
func DecodeAck(content []byte) (AckPayload, error) {
	if len(content) < ackFixedSize {
		return AckPayload{}, fmt.Errorf("%w: ACK needs >= %d bytes, got %d", ErrPayloadTooShort, ackFixedSize, len(content))
	}
	var p AckPayload
	copy(p.Challenge[:], content[0:challengeSize])
	if n := len(content) - ackFixedSize; n > 0 {
		p.CustomData = make([]byte, n)
		copy(p.CustomData, content[ackFixedSize:])
	}
	return p, nil
}
