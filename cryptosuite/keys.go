// Package cryptosuite provides the signature and key-agreement primitives
// PKSTL negotiates with: an Ed25519 long-term identity, a one-shot X25519
// ephemeral key pair, HMAC-SHA384 seed derivation and a ChaCha20-Poly1305
// AEAD with a per-direction frame counter.
package cryptosuite

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// IdentityKeyPair is a node's long-term Ed25519 signing key. It never
// rotates within PKSTL's scope; see spec §9's "no re-keying" note.
type IdentityKeyPair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// GenerateIdentity creates a new random Ed25519 identity key pair.
func GenerateIdentity() (*IdentityKeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptosuite: generate identity: %w", err)
	}
	return &IdentityKeyPair{priv: priv, pub: pub}, nil
}

// NewIdentityFromSeed reconstructs an identity key pair from a stored
// 32-byte Ed25519 seed, mirroring the teacher's NewEd25519KeyPair
// constructor for keys loaded from storage rather than freshly generated.
func NewIdentityFromSeed(seed []byte) (*IdentityKeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("cryptosuite: identity seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &IdentityKeyPair{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

// PublicKey returns the 32-byte Ed25519 public key.
func (k *IdentityKeyPair) PublicKey() ed25519.PublicKey { return k.pub }

// Sign signs message with the identity's private key.
func (k *IdentityKeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// EphemeralKeyPair is the one-shot X25519 key pair generated per session
// and used only for the DH step; it is discarded immediately after seed
// derivation (spec §3).
type EphemeralKeyPair struct {
	priv *ecdh.PrivateKey
	pub  []byte
}

// GenerateEphemeral creates a new random X25519 ephemeral key pair.
func GenerateEphemeral() (*EphemeralKeyPair, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptosuite: generate ephemeral: %w", err)
	}
	return &EphemeralKeyPair{priv: priv, pub: priv.PublicKey().Bytes()}, nil
}

// PublicKey returns the 32-byte wire representation of the ephemeral
// public key (the EPK carried in CONNECT).
func (k *EphemeralKeyPair) PublicKey() []byte {
	out := make([]byte, len(k.pub))
	copy(out, k.pub)
	return out
}

// DeriveSharedPoint runs X25519 ECDH against peerEPK and returns the raw
// 32-byte shared point (not hashed -- DeriveSeed does the mixing, per
// spec §4.4).
func (k *EphemeralKeyPair) DeriveSharedPoint(peerEPK []byte) ([]byte, error) {
	if k.priv == nil {
		return nil, fmt.Errorf("cryptosuite: ephemeral key already destroyed")
	}
	peerPub, err := ecdh.X25519().NewPublicKey(peerEPK)
	if err != nil {
		return nil, fmt.Errorf("cryptosuite: invalid peer EPK: %w", err)
	}
	shared, err := k.priv.ECDH(peerPub)
	if err != nil {
		return nil, fmt.Errorf("cryptosuite: ECDH: %w", err)
	}
	return shared, nil
}

// Destroy releases the reference to the ephemeral private key and zeroes
// the cached public key bytes; the memory held by the ecdh.PrivateKey
// itself is not overwritten. Safe to call more than once.
func (k *EphemeralKeyPair) Destroy() {
	k.priv = nil
	for i := range k.pub {
		k.pub[i] = 0
	}
}
