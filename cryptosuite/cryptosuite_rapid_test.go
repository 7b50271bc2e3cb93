package cryptosuite

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRapidSeedAgreement checks law 3: seed_A == seed_B for every honest
// run, regardless of which side computes first.
func TestRapidSeedAgreement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alice, err := GenerateEphemeral()
		if err != nil {
			t.Fatalf("generate alice: %v", err)
		}
		bob, err := GenerateEphemeral()
		if err != nil {
			t.Fatalf("generate bob: %v", err)
		}

		aliceShared, err := alice.DeriveSharedPoint(bob.PublicKey())
		if err != nil {
			t.Fatalf("alice shared: %v", err)
		}
		bobShared, err := bob.DeriveSharedPoint(alice.PublicKey())
		if err != nil {
			t.Fatalf("bob shared: %v", err)
		}

		aliceSeed, err := DeriveSeed(alice.PublicKey(), bob.PublicKey(), aliceShared)
		if err != nil {
			t.Fatalf("alice seed: %v", err)
		}
		bobSeed, err := DeriveSeed(bob.PublicKey(), alice.PublicKey(), bobShared)
		if err != nil {
			t.Fatalf("bob seed: %v", err)
		}

		if aliceSeed.AEADKey != bobSeed.AEADKey || aliceSeed.NonceBase != bobSeed.NonceBase || aliceSeed.AAD != bobSeed.AAD {
			t.Fatalf("seed mismatch: alice=%+v bob=%+v", aliceSeed, bobSeed)
		}
	})
}

// TestRapidDirectionalCipherRoundTrip checks law 1 (round-trip) over
// arbitrary plaintext sizes and sequences of frames sent in order.
func TestRapidDirectionalCipherRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := sampleSeed()
		sender, err := NewDirectionalCipher(seed)
		if err != nil {
			t.Fatalf("new sender cipher: %v", err)
		}
		receiver, err := NewDirectionalCipher(seed)
		if err != nil {
			t.Fatalf("new receiver cipher: %v", err)
		}

		n := rapid.IntRange(1, 20).Draw(t, "frameCount")
		for i := 0; i < n; i++ {
			plaintext := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(t, "plaintext")
			ct, err := sender.Seal(plaintext)
			if err != nil {
				t.Fatalf("seal frame %d: %v", i, err)
			}
			pt, err := receiver.Open(ct)
			if err != nil {
				t.Fatalf("open frame %d: %v", i, err)
			}
			if string(pt) != string(plaintext) {
				t.Fatalf("frame %d mismatch: got %x want %x", i, pt, plaintext)
			}
		}
	})
}
