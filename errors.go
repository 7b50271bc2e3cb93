package pkstl

import (
	"errors"

	"github.com/librelois/pkstl/cryptosuite"
	"github.com/librelois/pkstl/wire"
)

// Sentinel errors for the negotiation state machine and session crypto,
// following the teacher's convention of package-level sentinel error
// values checked with errors.Is rather than a custom error-code enum.
var (
	// ErrNeedMore is re-exported from wire; it is not a failure, it just
	// means the caller must supply more bytes before progress can be made.
	ErrNeedMore = wire.ErrNeedMore

	// Framing errors.
	ErrBadMagic           = wire.ErrBadMagic
	ErrUnsupportedVersion = wire.ErrUnsupportedVersion
	ErrTooLong            = wire.ErrTooLong

	// Authentication errors.
	ErrUnsupportedSigAlgo     = wire.ErrUnsupportedSigAlgo
	ErrInvalidSignature       = cryptosuite.ErrInvalidSignature
	ErrInvalidChallenge       = errors.New("pkstl: challenge does not match local EPK digest")
	ErrUnexpectedRemotePubkey = errors.New("pkstl: remote signature public key does not match the pinned identity")

	// Protocol sequencing errors.
	ErrInvalidState      = errors.New("pkstl: operation not valid in the current negotiation state")
	ErrUnexpectedConnect = errors.New("pkstl: CONNECT or ACK received out of sequence")
	ErrAckBeforeConnect  = errors.New("pkstl: ACK received before peer's CONNECT")
	ErrTooEarly          = errors.New("pkstl: USER message received before negotiation completed")

	// Session-crypto errors.
	ErrAuthenticationFailed = cryptosuite.ErrAuthenticationFailed
	ErrNonceExhausted       = cryptosuite.ErrNonceExhausted

	// Envelope errors (recoverable -- the frame is dropped but the
	// session survives if the failure is local to an outbound message
	// that was never transmitted).
	ErrSerializationFailed = errors.New("pkstl: user-data envelope serialization failed")
	ErrCompressionFailed   = errors.New("pkstl: user-data envelope compression failed")

	// ErrClosed is returned by any operation on a layer that has been
	// explicitly closed. A layer that transitioned to FAILED instead keeps
	// returning the error that failed it.
	ErrClosed = errors.New("pkstl: layer is closed")
)
