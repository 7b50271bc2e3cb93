package cryptosuite

import (
	"crypto/ed25519"
	"errors"
)

// SigAlgo identifies a signature scheme variant, mirroring the wire tag
// carried in CONNECT (see wire.SigAlgo). Kept as a distinct type here so
// cryptosuite does not need to import the wire package for one constant.
type SigAlgo uint32

const SigAlgoEd25519 SigAlgo = 1

// ErrInvalidSignature is returned by Verify when the signature does not
// match the message under the given public key.
var ErrInvalidSignature = errors.New("cryptosuite: invalid signature")

// Signer produces a signature over an arbitrary message. PKSTL is
// polymorphic over this interface so a new signature scheme can be added
// without changing the negotiation state machine; today only Ed25519 is
// registered (see SigAlgoEd25519).
type Signer interface {
	Algo() SigAlgo
	Sign(message []byte) []byte
}

// Verifier checks a signature produced by the corresponding Signer.
type Verifier interface {
	Algo() SigAlgo
	Verify(pub []byte, message, signature []byte) error
}

// Ed25519Signer signs with a long-term identity key pair.
type Ed25519Signer struct {
	identity *IdentityKeyPair
}

// NewEd25519Signer wraps identity as a Signer.
func NewEd25519Signer(identity *IdentityKeyPair) *Ed25519Signer {
	return &Ed25519Signer{identity: identity}
}

func (s *Ed25519Signer) Algo() SigAlgo { return SigAlgoEd25519 }

func (s *Ed25519Signer) Sign(message []byte) []byte {
	return s.identity.Sign(message)
}

// Ed25519Verifier verifies Ed25519 signatures against a caller-supplied
// public key (the peer's, learned from its CONNECT frame).
type Ed25519Verifier struct{}

func (Ed25519Verifier) Algo() SigAlgo { return SigAlgoEd25519 }

func (Ed25519Verifier) Verify(pub []byte, message, signature []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, signature) {
		return ErrInvalidSignature
	}
	return nil
}
