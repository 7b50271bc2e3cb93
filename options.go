package pkstl

import (
	"crypto/ed25519"

	"github.com/librelois/pkstl/envelope"
	"github.com/librelois/pkstl/internal/logger"
	"github.com/librelois/pkstl/wire"
)

// Options holds the plain, usually-set configuration knobs, following the
// teacher's session.Config style of a flat struct rather than functional
// options for the common case.
type Options struct {
	// MaxFrameSize bounds ENCAPSULATED_LEN on parse; frames declaring a
	// larger length are rejected with ErrTooLong before any payload bytes
	// are consumed. Zero means wire.DefaultMaxFrameSize (40 MiB).
	MaxFrameSize uint64
}

// Option customizes a handful of knobs that are commonly left unset, where
// a functional option reads better than a pointer-typed zero value on
// Options itself: the pinned remote identity, the user-data envelope and
// the diagnostic logger.
type Option func(*SecureLayer)

// WithExpectedRemotePubkey pins the peer's long-term Ed25519 identity.
// If the peer's CONNECT carries a different SIG_PUBKEY, negotiation fails
// with ErrUnexpectedRemotePubkey.
func WithExpectedRemotePubkey(pub ed25519.PublicKey) Option {
	return func(l *SecureLayer) {
		l.expectedRemotePubkey = append(ed25519.PublicKey(nil), pub...)
	}
}

// WithEnvelope attaches a user-data envelope (serializer + compressor) to
// the layer. Without this option, custom data and USER plaintext are
// passed through as raw bytes.
func WithEnvelope(e *envelope.Envelope) Option {
	return func(l *SecureLayer) {
		l.envelope = e
	}
}

// WithLogger attaches a structured logger. The layer emits one line per
// state transition and per rejected frame; it never logs on its own
// initiative beyond that, and never blocks on the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *SecureLayer) {
		l.logger = log
	}
}

// WithMaxFrameSize overrides Options.MaxFrameSize via the functional-option
// path, for callers who otherwise only use With* options.
func WithMaxFrameSize(n uint64) Option {
	return func(l *SecureLayer) {
		l.maxFrameSize = n
	}
}

// WithAckCustomData sets the custom data the layer attaches to the ACK it
// builds automatically upon receiving the peer's CONNECT (spec §6's
// "or implicit upon receiving remote CONNECT").
func WithAckCustomData(data []byte) Option {
	return func(l *SecureLayer) {
		l.ackCustomData = append([]byte(nil), data...)
	}
}

func resolveMaxFrameSize(opts Options) uint64 {
	if opts.MaxFrameSize == 0 {
		return wire.DefaultMaxFrameSize
	}
	return opts.MaxFrameSize
}
