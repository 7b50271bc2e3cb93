package pkstl

// localStep and remoteStep model the two independent negotiation threads
// of spec §3/§4.5. They advance independently; ESTABLISHED is reached the
// moment both have reached their terminal step.
type localStep int

const (
	localInit localStep = iota
	localConnectSent
	localAckReceived
)

type remoteStep int

const (
	remoteAwaitingConnect remoteStep = iota
	remoteConnectReceived
	remoteAckSent
)

// negotiationState tracks both threads plus the orthogonal terminal FAILED
// flag. A SecureLayer embeds exactly one of these.
type negotiationState struct {
	local  localStep
	remote remoteStep
	failed bool
	failErr error
}

func (s *negotiationState) established() bool {
	return !s.failed && s.local == localAckReceived && s.remote == remoteAckSent
}

func (s *negotiationState) fail(err error) error {
	if !s.failed {
		s.failed = true
		s.failErr = err
	}
	return err
}
