package pkstl

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/librelois/pkstl/cryptosuite"
	"github.com/librelois/pkstl/envelope"
	"github.com/librelois/pkstl/internal/logger"
	"github.com/librelois/pkstl/wire"
)

// SecureLayer is the public facade of spec §6: a single-threaded,
// cooperative object that never performs I/O. Callers feed it incoming
// bytes and transmit whatever bytes it hands back; all concurrency and
// transport concerns belong to the caller (spec §5).
type SecureLayer struct {
	identity *cryptosuite.IdentityKeyPair
	signer   *cryptosuite.Ed25519Signer

	ephemeral *cryptosuite.EphemeralKeyPair
	localEPK  []byte

	expectedRemotePubkey ed25519.PublicKey
	ackCustomData        []byte
	envelope             *envelope.Envelope
	logger               logger.Logger
	maxFrameSize         uint64

	state   negotiationState
	pending bytes.Buffer

	remotePubkey ed25519.PublicKey
	remoteEPK    []byte

	seed       *cryptosuite.Seed
	sendCipher *cryptosuite.DirectionalCipher
	recvCipher *cryptosuite.DirectionalCipher
}

// New constructs a SecureLayer around a long-term identity. The ephemeral
// X25519 key pair is generated immediately, per spec §3 ("created at
// construction"), so a peer's CONNECT can be processed even if the local
// CreateConnectMessage has not been called yet -- there is no "local EPK
// not ready" state to queue against.
func New(identity *cryptosuite.IdentityKeyPair, options Options, opts ...Option) (*SecureLayer, error) {
	ephemeral, err := cryptosuite.GenerateEphemeral()
	if err != nil {
		return nil, fmt.Errorf("pkstl: generate ephemeral key pair: %w", err)
	}

	l := &SecureLayer{
		identity:     identity,
		signer:       cryptosuite.NewEd25519Signer(identity),
		ephemeral:    ephemeral,
		localEPK:     ephemeral.PublicKey(),
		maxFrameSize: resolveMaxFrameSize(options),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// CreateConnectMessage builds and signs this layer's CONNECT frame.
// Callable exactly once; a second call returns ErrInvalidState.
func (l *SecureLayer) CreateConnectMessage(customData []byte) ([]byte, error) {
	if l.state.failed {
		return nil, l.failureError()
	}
	if l.state.local != localInit {
		return nil, ErrInvalidState
	}

	packed, err := l.packCustom(customData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	var epk, sigPub [32]byte
	copy(epk[:], l.localEPK)
	copy(sigPub[:], l.identity.PublicKey())

	content := wire.EncodeConnect(wire.ConnectPayload{
		EPK:        epk,
		SigAlgo:    wire.SigAlgoEd25519,
		SigPubKey:  sigPub,
		CustomData: packed,
	})
	sig := l.signer.Sign(wire.HeaderAndPayload(wire.MsgConnect, content))
	frame := wire.Encode(wire.MsgConnect, content, sig)

	l.state.local = localConnectSent
	l.logf("sent CONNECT")
	return frame, nil
}

// FeedBytes appends data to the pending buffer and drains every complete
// frame it can parse, returning the events those frames produce in wire
// order. A framing, authentication or protocol error fails the layer
// permanently; ErrNeedMore is not returned as an error here -- it simply
// ends the drain loop for this call.
func (l *SecureLayer) FeedBytes(data []byte) ([]Event, error) {
	if l.state.failed {
		return nil, l.failureError()
	}

	l.pending.Write(data)

	var events []Event
	for {
		raw, err := wire.TryParse(&l.pending, l.maxFrameSize)
		if err != nil {
			if errors.Is(err, wire.ErrNeedMore) {
				return events, nil
			}
			l.logf("framing error: %v", err)
			return events, l.state.fail(err)
		}

		produced, err := l.handleRawMessage(raw)
		if err != nil {
			l.logf("rejecting %s frame: %v", raw.Type, err)
			return events, l.state.fail(err)
		}
		events = append(events, produced...)
	}
}

func (l *SecureLayer) handleRawMessage(raw *wire.RawMessage) ([]Event, error) {
	if l.state.established() && raw.Type != wire.MsgUser {
		return nil, ErrUnexpectedConnect
	}

	switch raw.Type {
	case wire.MsgConnect:
		return l.handleConnect(raw)
	case wire.MsgAck:
		return l.handleAck(raw)
	case wire.MsgUser:
		return l.handleUser(raw)
	default:
		return nil, fmt.Errorf("pkstl: unknown message type %d", raw.Type)
	}
}

func (l *SecureLayer) handleConnect(raw *wire.RawMessage) ([]Event, error) {
	if l.state.remote != remoteAwaitingConnect {
		return nil, ErrUnexpectedConnect
	}

	payload, err := wire.DecodeConnect(raw.Content)
	if err != nil {
		return nil, err
	}
	if payload.SigAlgo != wire.SigAlgoEd25519 {
		return nil, ErrUnsupportedSigAlgo
	}

	verifier := cryptosuite.Ed25519Verifier{}
	headerAndPayload := wire.HeaderAndPayload(wire.MsgConnect, raw.Content)
	if err := verifier.Verify(payload.SigPubKey[:], headerAndPayload, raw.Signature); err != nil {
		return nil, ErrInvalidSignature
	}
	if l.expectedRemotePubkey != nil && !bytes.Equal(l.expectedRemotePubkey, payload.SigPubKey[:]) {
		return nil, ErrUnexpectedRemotePubkey
	}

	l.remotePubkey = append(ed25519.PublicKey(nil), payload.SigPubKey[:]...)
	l.remoteEPK = append([]byte(nil), payload.EPK[:]...)

	sharedPoint, err := l.ephemeral.DeriveSharedPoint(l.remoteEPK)
	if err != nil {
		return nil, fmt.Errorf("pkstl: derive shared point: %w", err)
	}
	seed, err := cryptosuite.DeriveSeed(l.localEPK, l.remoteEPK, sharedPoint)
	if err != nil {
		return nil, fmt.Errorf("pkstl: derive seed: %w", err)
	}
	l.seed = seed
	if l.sendCipher, err = cryptosuite.NewDirectionalCipher(seed); err != nil {
		return nil, fmt.Errorf("pkstl: init send cipher: %w", err)
	}
	if l.recvCipher, err = cryptosuite.NewDirectionalCipher(seed); err != nil {
		return nil, fmt.Errorf("pkstl: init recv cipher: %w", err)
	}
	l.ephemeral.Destroy()

	l.state.remote = remoteConnectReceived

	custom, err := l.unpackCustom(payload.CustomData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	ackBytes, err := l.buildAck()
	if err != nil {
		return nil, err
	}
	l.state.remote = remoteAckSent
	l.logf("received CONNECT, sent ACK")

	events := []Event{RemoteConnectEvent{CustomData: custom, AckBytes: ackBytes}}
	if l.state.established() {
		events = append(events, NegotiationCompleteEvent{})
		l.logf("negotiation established")
	}
	return events, nil
}

func (l *SecureLayer) buildAck() ([]byte, error) {
	packed, err := l.packCustom(l.ackCustomData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	challenge := sha256.Sum256(l.remoteEPK)
	content := wire.EncodeAck(wire.AckPayload{Challenge: challenge, CustomData: packed})
	sig := l.signer.Sign(wire.HeaderAndPayload(wire.MsgAck, content))
	return wire.Encode(wire.MsgAck, content, sig), nil
}

func (l *SecureLayer) handleAck(raw *wire.RawMessage) ([]Event, error) {
	if l.state.remote == remoteAwaitingConnect || l.state.local == localInit {
		return nil, ErrAckBeforeConnect
	}

	payload, err := wire.DecodeAck(raw.Content)
	if err != nil {
		return nil, err
	}

	verifier := cryptosuite.Ed25519Verifier{}
	headerAndPayload := wire.HeaderAndPayload(wire.MsgAck, raw.Content)
	if err := verifier.Verify(l.remotePubkey, headerAndPayload, raw.Signature); err != nil {
		return nil, ErrInvalidSignature
	}

	wantChallenge := sha256.Sum256(l.localEPK)
	if payload.Challenge != wantChallenge {
		return nil, ErrInvalidChallenge
	}

	l.state.local = localAckReceived
	l.logf("received ACK")

	custom, err := l.unpackCustom(payload.CustomData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	events := []Event{RemoteAckEvent{CustomData: custom}}
	if l.state.established() {
		events = append(events, NegotiationCompleteEvent{})
		l.logf("negotiation established")
	}
	return events, nil
}

func (l *SecureLayer) handleUser(raw *wire.RawMessage) ([]Event, error) {
	if !l.state.established() {
		return nil, ErrTooEarly
	}

	plaintext, err := l.recvCipher.Open(raw.Content)
	if err != nil {
		return nil, err
	}

	unwrapped, err := l.unpackCustom(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return []Event{UserMessageEvent{Plaintext: unwrapped}}, nil
}

// WriteUserMessage encrypts and authenticates plaintext for transmission.
// Requires the negotiation to be ESTABLISHED.
func (l *SecureLayer) WriteUserMessage(plaintext []byte) ([]byte, error) {
	if l.state.failed {
		return nil, l.failureError()
	}
	if !l.state.established() {
		return nil, ErrInvalidState
	}

	packed, err := l.packCustom(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	ciphertext, err := l.sendCipher.Seal(packed)
	if err != nil {
		return nil, l.state.fail(err)
	}
	return wire.Encode(wire.MsgUser, ciphertext, nil), nil
}

// IsEstablished reports whether both negotiation threads have reached
// their terminal step.
func (l *SecureLayer) IsEstablished() bool {
	return l.state.established()
}

// Close releases the layer's secret material: the ephemeral key pair is
// destroyed (see EphemeralKeyPair.Destroy) and the session seed is
// zeroized. It is always safe to call more than once.
func (l *SecureLayer) Close() error {
	if l.ephemeral != nil {
		l.ephemeral.Destroy()
	}
	if l.seed != nil {
		l.seed.Destroy()
	}
	if l.state.failErr == nil {
		l.state.failErr = ErrClosed
	}
	l.state.failed = true
	return nil
}

func (l *SecureLayer) failureError() error {
	if l.state.failErr != nil {
		return l.state.failErr
	}
	return ErrClosed
}

func (l *SecureLayer) packCustom(data []byte) ([]byte, error) {
	if l.envelope == nil {
		return data, nil
	}
	return l.envelope.Pack(data)
}

func (l *SecureLayer) unpackCustom(data []byte) ([]byte, error) {
	if l.envelope == nil {
		return data, nil
	}
	var out []byte
	if err := l.envelope.Unpack(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *SecureLayer) logf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}
