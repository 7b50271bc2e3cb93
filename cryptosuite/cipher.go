package cryptosuite

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrNonceExhausted is returned once a direction's frame counter would
	// wrap past 2^64, per spec §4.4. The session is unusable afterwards.
	ErrNonceExhausted = errors.New("cryptosuite: nonce counter exhausted")
	// ErrAuthenticationFailed is returned when AEAD verification fails on
	// Open -- a tampered frame or a counter desynchronization.
	ErrAuthenticationFailed = errors.New("cryptosuite: authentication failed")
)

// DirectionalCipher wraps ChaCha20-Poly1305 keyed by the session seed, with
// a monotonically increasing 64-bit counter XORed into the low 8 bytes of
// the nonce base. The seed's nonce base is static for the life of the
// session, so per spec §4.4 each direction MUST keep an independent
// counter; reusing the base nonce across frames without this counter
// would break ChaCha20-Poly1305's confidentiality guarantee entirely.
type DirectionalCipher struct {
	aead    cipher.AEAD
	base    [nonceBaseSize]byte
	aad     [aadSize]byte
	counter uint64
	done    bool // true once the counter has been exhausted
}

// NewDirectionalCipher builds one directional cipher from a session seed.
// A session needs two of these, one per direction, each with its own
// independent counter starting at 0.
func NewDirectionalCipher(seed *Seed) (*DirectionalCipher, error) {
	aead, err := chacha20poly1305.New(seed.AEADKey[:])
	if err != nil {
		return nil, fmt.Errorf("cryptosuite: create AEAD: %w", err)
	}
	return &DirectionalCipher{aead: aead, base: seed.NonceBase, aad: seed.AAD}, nil
}

func (c *DirectionalCipher) nonceFor(counter uint64) [chacha20poly1305.NonceSize]byte {
	var n [chacha20poly1305.NonceSize]byte
	copy(n[:], c.base[:])
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], counter)
	for i := 0; i < 8; i++ {
		n[4+i] ^= ctr[i]
	}
	return n
}

// Seal encrypts and authenticates plaintext under the current counter
// value, then advances the counter. The associated data is the seed's
// fixed 4-byte AAD tag (spec §4.4).
func (c *DirectionalCipher) Seal(plaintext []byte) ([]byte, error) {
	if c.done {
		return nil, ErrNonceExhausted
	}
	if c.counter == math.MaxUint64 {
		c.done = true
	}
	nonce := c.nonceFor(c.counter)
	c.counter++
	return c.aead.Seal(nil, nonce[:], plaintext, c.aad[:]), nil
}

// Open decrypts and verifies ciphertext against the current counter value,
// then advances the counter. A tag mismatch leaves the counter advanced
// regardless, since the frame is rejected and the session is failed
// either way (spec §4.5).
func (c *DirectionalCipher) Open(ciphertext []byte) ([]byte, error) {
	if c.done {
		return nil, ErrNonceExhausted
	}
	nonce := c.nonceFor(c.counter)
	if c.counter == math.MaxUint64 {
		c.done = true
	}
	c.counter++
	plaintext, err := c.aead.Open(nil, nonce[:], ciphertext, c.aad[:])
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
