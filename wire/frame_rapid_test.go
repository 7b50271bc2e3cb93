package wire

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// TestRapidUserFrameRoundTrip checks law 1 (round-trip) and law 5's
// prerequisite (the framing codec itself never loses or reorders bytes)
// for arbitrary USER payload sizes and arbitrary buffer fragmentation.
func TestRapidUserFrameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 4096).Draw(t, "payload")
		frame := Encode(MsgUser, payload, nil)

		buf := bytes.NewBuffer(frame)
		msg, err := TryParse(buf, 0)
		if err != nil {
			t.Fatalf("TryParse: %v", err)
		}
		if msg.Type != MsgUser {
			t.Fatalf("type = %v, want MsgUser", msg.Type)
		}
		if !bytes.Equal(msg.Content, payload) {
			t.Fatalf("content mismatch: got %x want %x", msg.Content, payload)
		}
		if buf.Len() != 0 {
			t.Fatalf("buffer not fully consumed: %d bytes left", buf.Len())
		}
	})
}

// TestRapidPartialDeliveryYieldsNeedMore models scenario S5: feeding a
// frame one byte at a time must yield ErrNeedMore on every prefix strictly
// shorter than the full frame, and succeed only once every byte has arrived.
func TestRapidPartialDeliveryYieldsNeedMore(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(t, "payload")
		frame := Encode(MsgUser, payload, nil)

		for i := 0; i < len(frame); i++ {
			buf := bytes.NewBuffer(frame[:i])
			if _, err := TryParse(buf, 0); err != ErrNeedMore {
				t.Fatalf("prefix len %d: err = %v, want ErrNeedMore", i, err)
			}
		}

		buf := bytes.NewBuffer(frame)
		if _, err := TryParse(buf, 0); err != nil {
			t.Fatalf("full frame: unexpected error %v", err)
		}
	})
}

// TestRapidConnectPayloadRoundTrip checks encode/decode symmetry for
// arbitrarily sized custom data (law 1 applied to the CONNECT payload).
func TestRapidConnectPayloadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var epk, pub [32]byte
		copy(epk[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "epk"))
		copy(pub[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "pub"))
		custom := rapid.SliceOfN(rapid.Byte(), 0, 512).Draw(t, "custom")

		in := ConnectPayload{EPK: epk, SigAlgo: SigAlgoEd25519, SigPubKey: pub, CustomData: custom}
		out, err := DecodeConnect(EncodeConnect(in))
		if err != nil {
			t.Fatalf("DecodeConnect: %v", err)
		}
		if !bytes.Equal(out.CustomData, in.CustomData) || out.EPK != in.EPK || out.SigPubKey != in.SigPubKey || out.SigAlgo != in.SigAlgo {
			t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
		}
	})
}
