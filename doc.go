// Package pkstl implements a transport-agnostic, bidirectional secure
// channel over framed binary messages. Two peers, each holding a
// long-term Ed25519 identity, exchange one-shot X25519 ephemeral keys,
// derive a shared session seed and authenticate subsequent messages with
// ChaCha20-Poly1305. The package performs no I/O of its own: callers feed
// it bytes received from their transport and receive back either bytes to
// send or decoded events.
//
//	layer, err := pkstl.New(identity, pkstl.Options{})
//	out, err := layer.CreateConnectMessage(nil)
//	// send out over the wire, feed incoming bytes back in:
//	events, err := layer.FeedBytes(incoming)
package pkstl
