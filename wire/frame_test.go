package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTryParseRoundTrip(t *testing.T) {
	payload := EncodeAck(AckPayload{CustomData: []byte("hi")})
	hp := HeaderAndPayload(MsgAck, payload)
	sig := make([]byte, SignatureSize)
	for i := range sig {
		sig[i] = byte(i)
	}
	frame := Encode(MsgAck, payload, sig)
	require.Equal(t, hp, frame[:len(hp)])

	buf := bytes.NewBuffer(frame)
	msg, err := TryParse(buf, 0)
	require.NoError(t, err)
	require.Equal(t, MsgAck, msg.Type)
	require.Equal(t, payload, msg.Content)
	require.Equal(t, sig, msg.Signature)
	require.Equal(t, 0, buf.Len())
}

func TestTryParseNeedMore(t *testing.T) {
	frame := Encode(MsgUser, []byte("ciphertext-ish"), nil)
	for i := 0; i < len(frame); i++ {
		buf := bytes.NewBuffer(frame[:i])
		_, err := TryParse(buf, 0)
		require.ErrorIs(t, err, ErrNeedMore, "prefix length %d", i)
	}

	buf := bytes.NewBuffer(frame)
	msg, err := TryParse(buf, 0)
	require.NoError(t, err)
	require.Equal(t, MsgUser, msg.Type)
	require.Nil(t, msg.Signature)
}

func TestTryParseBadMagic(t *testing.T) {
	frame := Encode(MsgUser, []byte("x"), nil)
	frame[0] ^= 0xFF
	buf := bytes.NewBuffer(frame)
	_, err := TryParse(buf, 0)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestTryParseUnsupportedVersion(t *testing.T) {
	frame := Encode(MsgUser, []byte("x"), nil)
	frame[7] = 2 // VERSION low byte
	buf := bytes.NewBuffer(frame)
	_, err := TryParse(buf, 0)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestTryParseTooLong(t *testing.T) {
	frame := Encode(MsgUser, []byte("x"), nil)
	buf := bytes.NewBuffer(frame)
	_, err := TryParse(buf, 0) // sanity: frame is fine with default max
	require.NoError(t, err)

	maxFrameSize := uint64(10)
	over := Encode(MsgUser, make([]byte, 9), nil) // encapsulated len = 11 > 10
	buf2 := bytes.NewBuffer(over)
	_, err = TryParse(buf2, maxFrameSize)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestConnectAckPayloadRoundTrip(t *testing.T) {
	var epk, pub [32]byte
	copy(epk[:], bytes.Repeat([]byte{1}, 32))
	copy(pub[:], bytes.Repeat([]byte{2}, 32))

	cp := ConnectPayload{EPK: epk, SigAlgo: SigAlgoEd25519, SigPubKey: pub, CustomData: []byte("hello")}
	got, err := DecodeConnect(EncodeConnect(cp))
	require.NoError(t, err)
	require.Equal(t, cp, got)

	var challenge [32]byte
	copy(challenge[:], bytes.Repeat([]byte{3}, 32))
	ap := AckPayload{Challenge: challenge, CustomData: []byte("world")}
	gotAck, err := DecodeAck(EncodeAck(ap))
	require.NoError(t, err)
	require.Equal(t, ap, gotAck)
}

func TestDecodeConnectTooShort(t *testing.T) {
	_, err := DecodeConnect(make([]byte, connectFixedSize-1))
	require.ErrorIs(t, err, ErrPayloadTooShort)
}

func TestDecodeAckTooShort(t *testing.T) {
	_, err := DecodeAck(make([]byte, ackFixedSize-1))
	require.ErrorIs(t, err, ErrPayloadTooShort)
}
