package cryptosuite

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
)

const (
	seedSize      = 48
	aeadKeySize   = 32
	nonceBaseSize = 12
	aadSize       = 4
)

// Seed is the 48 bytes both peers derive once their ephemeral public keys
// are known: an AEAD key, a nonce base and a fixed associated-data tag
// (spec §3/§4.4).
type Seed struct {
	AEADKey   [aeadKeySize]byte
	NonceBase [nonceBaseSize]byte
	AAD       [aadSize]byte
}

// Destroy overwrites the seed's key material. Safe to call more than once.
func (s *Seed) Destroy() {
	for i := range s.AEADKey {
		s.AEADKey[i] = 0
	}
	for i := range s.NonceBase {
		s.NonceBase[i] = 0
	}
	for i := range s.AAD {
		s.AAD[i] = 0
	}
}

// canonicalOrder returns a and b in lexicographic order, so both peers
// derive the same HMAC key regardless of who calls DeriveSeed first. This
// is the same trick the session symmetry requires elsewhere in the
// handshake (spec §9's "symmetry without role").
func canonicalOrder(a, b []byte) (lo, hi []byte) {
	if bytes.Compare(a, b) <= 0 {
		return a, b
	}
	return b, a
}

// DeriveSeed computes seed = HMAC-SHA384(key = max(localEPK, remoteEPK),
// data = sharedPoint), per spec §4.4. Both peers, regardless of which one
// is "first", land on byte-identical output because the HMAC key is
// chosen by lexicographic comparison rather than by role.
func DeriveSeed(localEPK, remoteEPK, sharedPoint []byte) (*Seed, error) {
	if len(localEPK) == 0 || len(remoteEPK) == 0 {
		return nil, fmt.Errorf("cryptosuite: EPKs must be non-empty")
	}
	if len(sharedPoint) == 0 {
		return nil, fmt.Errorf("cryptosuite: empty shared point")
	}

	_, hmacKey := canonicalOrder(localEPK, remoteEPK)

	mac := hmac.New(sha512.New384, hmacKey)
	mac.Write(sharedPoint)
	sum := mac.Sum(nil)
	if len(sum) != seedSize {
		return nil, fmt.Errorf("cryptosuite: unexpected HMAC-SHA384 output size %d", len(sum))
	}

	var s Seed
	copy(s.AEADKey[:], sum[0:32])
	copy(s.NonceBase[:], sum[32:44])
	copy(s.AAD[:], sum[44:48])
	return &s, nil
}
