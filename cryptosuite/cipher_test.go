package cryptosuite

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSeed() *Seed {
	s := &Seed{}
	for i := range s.AEADKey {
		s.AEADKey[i] = byte(i)
	}
	for i := range s.NonceBase {
		s.NonceBase[i] = byte(i + 1)
	}
	for i := range s.AAD {
		s.AAD[i] = byte(i + 2)
	}
	return s
}

func TestDirectionalCipherRoundTrip(t *testing.T) {
	seed := sampleSeed()
	sender, err := NewDirectionalCipher(seed)
	require.NoError(t, err)
	receiver, err := NewDirectionalCipher(seed)
	require.NoError(t, err)

	for i, msg := range [][]byte{[]byte("hello"), []byte("world"), {}} {
		ct, err := sender.Seal(msg)
		require.NoError(t, err, "frame %d", i)
		pt, err := receiver.Open(ct)
		require.NoError(t, err, "frame %d", i)
		require.Equal(t, msg, pt, "frame %d", i)
	}
}

func TestDirectionalCipherRejectsTamperedCiphertext(t *testing.T) {
	seed := sampleSeed()
	sender, err := NewDirectionalCipher(seed)
	require.NoError(t, err)
	receiver, err := NewDirectionalCipher(seed)
	require.NoError(t, err)

	ct, err := sender.Seal([]byte("hello"))
	require.NoError(t, err)
	ct[0] ^= 0x01

	_, err = receiver.Open(ct)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDirectionalCipherRejectsReplayedFrame(t *testing.T) {
	seed := sampleSeed()
	sender, err := NewDirectionalCipher(seed)
	require.NoError(t, err)
	receiver, err := NewDirectionalCipher(seed)
	require.NoError(t, err)

	ct, err := sender.Seal([]byte("hello"))
	require.NoError(t, err)

	_, err = receiver.Open(ct)
	require.NoError(t, err)

	// Re-delivering the same frame: receiver's counter has already advanced,
	// so the nonce used to re-derive no longer matches what sender used.
	_, err = receiver.Open(ct)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDirectionalCipherNonceExhaustion(t *testing.T) {
	seed := sampleSeed()
	c, err := NewDirectionalCipher(seed)
	require.NoError(t, err)
	c.counter = math.MaxUint64

	_, err = c.Seal([]byte("last frame"))
	require.NoError(t, err)

	_, err = c.Seal([]byte("one too many"))
	require.ErrorIs(t, err, ErrNonceExhausted)
}
