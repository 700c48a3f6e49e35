package session_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-hammer/pkg/connectivity"
	"github.com/livekit/livekit-hammer/pkg/connectivity/connectivityfakes"
	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
	"github.com/livekit/livekit-hammer/pkg/session"
	"github.com/livekit/livekit-hammer/pkg/session/sessionfakes"
	"github.com/livekit/livekit-hammer/pkg/testutils"
	"github.com/livekit/livekit-hammer/pkg/transport"
	"github.com/livekit/livekit-hammer/pkg/transport/transportfakes"
)

const (
	focusJID  = "room@conference.example.com/focus"
	hammerJID = "room@conference.example.com/hammer-1"
)

type harness struct {
	driver       *connectivityfakes.FakeDriver
	factory      *transportfakes.FakeFactory
	signaller    *sessionfakes.FakeSignaller
	handle       *connectivityfakes.FakeHandle
	orchestrator *session.Orchestrator

	lock       sync.Mutex
	sessions   map[string]*transportfakes.FakeSession
	startErr   map[string]error
	terminated int
}

func newHarness(t *testing.T, mutate ...func(*session.Config)) *harness {
	h := &harness{
		driver:    &connectivityfakes.FakeDriver{},
		factory:   &transportfakes.FakeFactory{},
		signaller: &sessionfakes.FakeSignaller{},
		handle:    &connectivityfakes.FakeHandle{},
		sessions:  make(map[string]*transportfakes.FakeSession),
		startErr:  make(map[string]error),
	}
	h.handle.IDReturns("ICE_test")
	h.driver.OpenReturns(h.handle, nil)
	h.driver.LocalCandidatesCalls(func(connectivity.Handle) (map[string]jingle.Transport, error) {
		local := make(map[string]jingle.Transport)
		for _, name := range []string{"audio", "video", "data"} {
			local[name] = jingle.Transport{
				Ufrag: "lu",
				Pwd:   "lp",
				Candidates: []jingle.Candidate{
					{ID: name + "-0", Foundation: "1", Component: 1, Protocol: "udp", Priority: 2130706431, IP: "192.168.1.2", Port: 50000, Type: "host"},
				},
			}
		}
		return local, nil
	})
	h.driver.StatusReturns(connectivity.StatusSucceeded)
	h.factory.FingerprintsReturns([]jingle.Fingerprint{{Hash: "sha-256", Value: "CC:DD"}})
	h.factory.NewSessionCalls(func(p transport.Params) (transport.Session, error) {
		h.lock.Lock()
		defer h.lock.Unlock()

		s := &transportfakes.FakeSession{}
		s.NameReturns(p.Media.Name)
		s.KindReturns(p.Media.Kind)
		s.StartReturns(h.startErr[p.Media.Name])
		h.sessions[p.Media.Name] = s
		return s, nil
	})

	conf := session.DefaultConfig()
	conf.PollInterval = 5 * time.Millisecond
	conf.ConnectivityTimeout = 5 * time.Second
	for _, m := range mutate {
		m(&conf)
	}

	h.orchestrator = session.NewOrchestrator(session.OrchestratorParams{
		SID:       "sid1",
		Config:    conf,
		Signaller: h.signaller,
		Driver:    h.driver,
		Factory:   h.factory,
		OnTerminated: func(*session.Orchestrator) {
			h.lock.Lock()
			h.terminated++
			h.lock.Unlock()
		},
	})
	t.Cleanup(h.orchestrator.Stop)
	return h
}

func (h *harness) start() {
	h.orchestrator.Start(nil, selector.DirectionForceBoth)
}

func (h *harness) session(name string) *transportfakes.FakeSession {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.sessions[name]
}

func (h *harness) sent() (acks, accepts, terminates []*jingle.Message) {
	for i := 0; i < h.signaller.SendMessageCallCount(); i++ {
		msg := h.signaller.SendMessageArgsForCall(i)
		switch {
		case msg.IsAck():
			acks = append(acks, msg)
		case msg.Action() == jingle.ActionSessionAccept:
			accepts = append(accepts, msg)
		case msg.Action() == jingle.ActionSessionTerminate:
			terminates = append(terminates, msg)
		}
	}
	return
}

func (h *harness) waitForAcks(t *testing.T, n int) {
	testutils.WithTimeout(t, func() string {
		acks, _, _ := h.sent()
		if len(acks) != n {
			return fmt.Sprintf("expected %d acks, got %d", n, len(acks))
		}
		return ""
	})
}

func (h *harness) waitForState(t *testing.T, state session.State) {
	testutils.WithTimeout(t, func() string {
		if s := h.orchestrator.CurrentState(); s != state {
			return fmt.Sprintf("expected %s, got %s", state, s)
		}
		return ""
	})
}

func (h *harness) waitForDone(t *testing.T) {
	select {
	case <-h.orchestrator.Done():
	case <-time.After(testutils.ConnectTimeout):
		t.Fatal("orchestrator did not terminate")
	}
}

func audioContent(payloadTypes ...jingle.PayloadType) jingle.Content {
	return jingle.Content{
		Name:    "audio",
		Creator: "initiator",
		Senders: jingle.SendersBoth,
		Description: &jingle.Description{
			Media:        "audio",
			PayloadTypes: payloadTypes,
			Sources:      []jingle.Source{{SSRC: 1111}},
		},
		Transport: &jingle.Transport{
			Ufrag: "ru",
			Pwd:   "rp",
			Candidates: []jingle.Candidate{
				{Foundation: "1", Component: 1, Protocol: "udp", Priority: 2130706431, IP: "10.0.0.1", Port: 10000, Type: "host"},
			},
			Fingerprints: []jingle.Fingerprint{{Hash: "sha-256", Setup: jingle.DTLSSetupActPass, Value: "AA:BB"}},
		},
	}
}

func videoContent() jingle.Content {
	return jingle.Content{
		Name:    "video",
		Creator: "initiator",
		Senders: jingle.SendersBoth,
		Description: &jingle.Description{
			Media:        "video",
			PayloadTypes: []jingle.PayloadType{{ID: 100, Name: "VP8", ClockRate: 90000}},
		},
		Transport: &jingle.Transport{
			Ufrag: "ru",
			Pwd:   "rp",
			Candidates: []jingle.Candidate{
				{Foundation: "1", Component: 1, Protocol: "udp", Priority: 2130706431, IP: "10.0.0.1", Port: 10002, Type: "host"},
			},
		},
	}
}

var (
	pcmu = jingle.PayloadType{ID: 0, Name: "PCMU", ClockRate: 8000}
	opus = jingle.PayloadType{ID: 111, Name: "opus", ClockRate: 48000, Channels: 2}
)

func request(id string, j *jingle.Jingle) *jingle.Message {
	return &jingle.Message{
		ID:     id,
		From:   focusJID,
		To:     hammerJID,
		Type:   jingle.MessageTypeSet,
		Jingle: j,
	}
}

func initiate(id string, contents ...jingle.Content) *jingle.Message {
	return request(id, &jingle.Jingle{
		Action:    jingle.ActionSessionInitiate,
		SID:       "sid1",
		Initiator: focusJID,
		Responder: hammerJID,
		Contents:  contents,
	})
}

func transportInfo(id string, names ...string) *jingle.Message {
	transports := make(map[string]jingle.Transport)
	for _, name := range names {
		transports[name] = jingle.Transport{
			Candidates: []jingle.Candidate{
				{Foundation: "2", Component: 1, Protocol: "udp", Priority: 1694498815, IP: "203.0.113.7", Port: 40000, Type: "srflx", RelAddr: "10.0.0.1", RelPort: 10000},
			},
		}
	}
	return request(id, jingle.NewTransportInfo("sid1", transports))
}

func transportKeys(m map[string]jingle.Transport) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestOrchestratorActivates(t *testing.T) {
	h := newHarness(t)
	h.driver.StatusReturnsOnCall(0, connectivity.StatusChecking)
	h.driver.StatusReturnsOnCall(1, connectivity.StatusSucceeded)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(pcmu, opus)))
	h.waitForState(t, session.StateActive)

	require.Equal(t, 2, h.driver.StatusCallCount())
	require.Nil(t, h.orchestrator.Error())
	require.Positive(t, h.orchestrator.SetupTime())
	require.Equal(t, []string{"audio"}, h.orchestrator.TransportNames())
	require.Equal(t, 1, h.factory.NewSessionCallCount())
	require.Equal(t, 1, h.session("audio").StartCallCount())

	acks, accepts, terminates := h.sent()
	require.Len(t, acks, 1)
	require.Equal(t, "iq1", acks[0].ID)
	require.Len(t, accepts, 1)
	require.Empty(t, terminates)

	accept := accepts[0]
	require.Equal(t, hammerJID, accept.From)
	require.Equal(t, focusJID, accept.To)
	require.Equal(t, "sid1", accept.SID())
	require.Len(t, accept.Jingle.Contents, 1)
	c := accept.Jingle.Contents[0]
	require.Equal(t, []jingle.PayloadType{pcmu}, c.Description.PayloadTypes)
	require.Equal(t, "lu", c.Transport.Ufrag)
	require.Equal(t, jingle.DTLSSetupActive, c.Transport.Fingerprints[0].Setup)

	// accepted names, remote candidate keys and registered transports line up
	accepted := h.orchestrator.AcceptedContents().Names()
	_, remote := h.driver.AddRemoteCandidatesArgsForCall(0)
	_, opened := h.driver.OpenArgsForCall(0)
	require.Equal(t, accepted, transportKeys(remote))
	require.Equal(t, accepted, opened)
	require.Equal(t, accepted, h.orchestrator.TransportNames())

	params := h.factory.NewSessionArgsForCall(0)
	require.Equal(t, "audio", params.Media.Name)
	require.Equal(t, jingle.SendersBoth, params.Media.Direction)
	require.Equal(t, h.handle, params.Handle)

	h.orchestrator.Stop()
	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
	require.Equal(t, 1, h.session("audio").StopCallCount())
	require.Equal(t, 1, h.driver.CloseCallCount())
	require.Empty(t, h.orchestrator.TransportNames())
}

func TestOrchestratorMalformedOffer(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent()))
	h.waitForDone(t)

	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
	require.Equal(t, session.ErrorKindMalformedOffer, h.orchestrator.Error().Kind)
	require.NotEmpty(t, h.orchestrator.Error().Reason)
	require.Equal(t, 1, h.signaller.SendMessageCallCount())
	acks, accepts, _ := h.sent()
	require.Len(t, acks, 1)
	require.Empty(t, accepts)
	require.Equal(t, 0, h.driver.OpenCallCount())
}

func TestOrchestratorResourceExhausted(t *testing.T) {
	h := newHarness(t)
	h.driver.OpenReturns(nil, errors.Wrap(connectivity.ErrResourceExhausted, "no interface"))
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	h.waitForDone(t)

	require.Equal(t, session.ErrorKindResourceExhausted, h.orchestrator.Error().Kind)
	acks, accepts, terminates := h.sent()
	require.Len(t, acks, 1)
	require.Empty(t, accepts)
	require.Len(t, terminates, 1)
	require.Equal(t, jingle.ReasonFailedTransport, terminates[0].Jingle.Reason.Condition)
	require.Equal(t, 0, h.driver.CloseCallCount())
}

func TestOrchestratorConnectivityFailure(t *testing.T) {
	h := newHarness(t)
	h.driver.StatusReturns(connectivity.StatusFailed)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	h.waitForDone(t)

	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
	require.Equal(t, session.ErrorKindConnectivityFailure, session.KindOf(h.orchestrator.Error()))
	require.Equal(t, 0, h.factory.NewSessionCallCount())
	require.Empty(t, h.orchestrator.TransportNames())
	require.Equal(t, 1, h.driver.CloseCallCount())

	_, accepts, terminates := h.sent()
	require.Len(t, accepts, 1)
	require.Len(t, terminates, 1)
	require.Equal(t, jingle.ReasonConnectivityError, terminates[0].Jingle.Reason.Condition)
}

func TestOrchestratorConnectivityTimeout(t *testing.T) {
	for _, terminate := range []bool{true, false} {
		t.Run(fmt.Sprintf("terminate on timeout %v", terminate), func(t *testing.T) {
			h := newHarness(t, func(c *session.Config) {
				c.ConnectivityTimeout = 50 * time.Millisecond
				c.TerminateOnTimeout = terminate
			})
			h.driver.StatusReturns(connectivity.StatusChecking)
			h.start()

			h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
			h.waitForDone(t)

			require.Equal(t, session.ErrorKindConnectivityTimeout, h.orchestrator.Error().Kind)
			require.Equal(t, 0, h.factory.NewSessionCallCount())

			_, accepts, terminates := h.sent()
			require.Len(t, accepts, 1)
			if terminate {
				require.Len(t, terminates, 1)
				require.Equal(t, jingle.ReasonTimeout, terminates[0].Jingle.Reason.Condition)
				require.Equal(t, "sid1", terminates[0].SID())
			} else {
				require.Empty(t, terminates)
			}
		})
	}
}

func TestOrchestratorNeverActiveWithoutSuccess(t *testing.T) {
	h := newHarness(t)
	h.driver.StatusReturns(connectivity.StatusChecking)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	testutils.WithTimeout(t, func() string {
		if n := h.driver.StatusCallCount(); n < 5 {
			return fmt.Sprintf("polled %d times", n)
		}
		return ""
	})
	require.Equal(t, session.StateAwaitingConnectivity, h.orchestrator.CurrentState())
	require.Equal(t, 0, h.factory.NewSessionCallCount())

	h.orchestrator.Stop()
	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
	require.Nil(t, h.orchestrator.Error())
	require.Equal(t, 0, h.factory.NewSessionCallCount())
}

func TestOrchestratorStopsAllTransports(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus), videoContent()))
	h.waitForState(t, session.StateActive)
	require.Equal(t, []string{"audio", "video"}, h.orchestrator.TransportNames())
	require.True(t, h.orchestrator.Activated())
	h.session("audio").StatsReturns(transport.Stats{BytesSent: 100})
	h.session("video").StatsReturns(transport.Stats{BytesSent: 200, BytesReceived: 50})

	h.orchestrator.Stop()
	h.orchestrator.Stop()
	require.Equal(t, 1, h.session("audio").StopCallCount())
	require.Equal(t, 1, h.session("video").StopCallCount())
	require.Empty(t, h.orchestrator.TransportNames())
	require.Equal(t, 1, h.driver.CloseCallCount())

	// the session still reports what it did while active
	require.True(t, h.orchestrator.Activated())
	require.Positive(t, h.orchestrator.SetupTime())
	stats := h.orchestrator.Stats()
	require.Len(t, stats, 2)
	require.Equal(t, uint64(100), stats["audio"].BytesSent)
	require.Equal(t, uint64(50), stats["video"].BytesReceived)

	h.lock.Lock()
	require.Equal(t, 1, h.terminated)
	h.lock.Unlock()
}

func TestOrchestratorDuplicateInitiate(t *testing.T) {
	t.Run("while awaiting connectivity", func(t *testing.T) {
		h := newHarness(t)
		h.driver.StatusReturns(connectivity.StatusChecking)
		h.start()

		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
		h.waitForState(t, session.StateAwaitingConnectivity)
		h.orchestrator.HandleMessage(initiate("iq2", audioContent(opus)))
		h.waitForAcks(t, 2)

		require.Equal(t, session.StateAwaitingConnectivity, h.orchestrator.CurrentState())
		require.Equal(t, 1, h.driver.OpenCallCount())
		_, accepts, _ := h.sent()
		require.Len(t, accepts, 1)
	})

	t.Run("while active", func(t *testing.T) {
		h := newHarness(t)
		h.start()

		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
		h.waitForState(t, session.StateActive)
		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
		h.waitForAcks(t, 2)

		require.Equal(t, session.StateActive, h.orchestrator.CurrentState())
		require.Equal(t, 1, h.driver.OpenCallCount())
		require.Equal(t, 1, h.factory.NewSessionCallCount())
		require.Equal(t, 1, h.session("audio").StartCallCount())
		_, accepts, _ := h.sent()
		require.Len(t, accepts, 1)
	})
}

func TestOrchestratorLateCandidates(t *testing.T) {
	for _, policy := range []session.LateCandidatePolicy{session.LateCandidatesAccept, session.LateCandidatesDrop} {
		t.Run(string(policy), func(t *testing.T) {
			h := newHarness(t, func(c *session.Config) {
				c.LateCandidates = policy
			})
			h.driver.StatusReturns(connectivity.StatusChecking)
			h.start()

			h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
			h.waitForState(t, session.StateAwaitingConnectivity)
			h.orchestrator.HandleMessage(transportInfo("iq2", "audio", "unknown"))
			// ops run in order, so the transport-info is handled once this one is acked
			h.orchestrator.HandleMessage(request("iq3", &jingle.Jingle{Action: jingle.ActionSourceAdd, SID: "sid1"}))
			h.waitForAcks(t, 3)

			if policy == session.LateCandidatesDrop {
				require.Equal(t, 1, h.driver.AddRemoteCandidatesCallCount())
				return
			}
			require.Equal(t, 2, h.driver.AddRemoteCandidatesCallCount())
			_, late := h.driver.AddRemoteCandidatesArgsForCall(1)
			require.Equal(t, []string{"audio"}, transportKeys(late))
			require.Equal(t, "srflx", late["audio"].Candidates[0].Type)
		})
	}

	t.Run("rejected late candidates are not fatal", func(t *testing.T) {
		h := newHarness(t)
		h.driver.StatusReturns(connectivity.StatusChecking)
		h.driver.AddRemoteCandidatesReturnsOnCall(1, connectivity.ErrLateCandidate)
		h.start()

		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
		h.waitForState(t, session.StateAwaitingConnectivity)
		h.orchestrator.HandleMessage(transportInfo("iq2", "audio"))
		h.orchestrator.HandleMessage(request("iq3", &jingle.Jingle{Action: jingle.ActionSourceAdd, SID: "sid1"}))
		h.waitForAcks(t, 3)

		require.Equal(t, session.StateAwaitingConnectivity, h.orchestrator.CurrentState())
		require.Nil(t, h.orchestrator.Error())
	})
}

func TestOrchestratorTransportStartFailure(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		h := newHarness(t)
		h.startErr["video"] = errors.New("dtls handshake failed")
		h.start()

		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus), videoContent()))
		h.waitForState(t, session.StateActive)

		require.Equal(t, session.ErrorKindTransportStartFailure, h.orchestrator.Error().Kind)
		require.Contains(t, h.orchestrator.Error().Reason, "video")
		require.Equal(t, []string{"audio", "video"}, h.orchestrator.TransportNames())
		require.Equal(t, 0, h.session("audio").StopCallCount())
		_, _, terminates := h.sent()
		require.Empty(t, terminates)
	})

	t.Run("all failed", func(t *testing.T) {
		h := newHarness(t)
		h.startErr["audio"] = errors.New("dtls handshake failed")
		h.start()

		h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
		h.waitForDone(t)

		require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
		require.Equal(t, session.ErrorKindTransportStartFailure, h.orchestrator.Error().Kind)
		require.Equal(t, 1, h.session("audio").StopCallCount())
		_, _, terminates := h.sent()
		require.Len(t, terminates, 1)
		require.Equal(t, jingle.ReasonFailedTransport, terminates[0].Jingle.Reason.Condition)
	})
}

func TestOrchestratorStopWhileStartingTransports(t *testing.T) {
	h := newHarness(t)
	starting := make(chan struct{}, 2)
	h.factory.NewSessionCalls(func(p transport.Params) (transport.Session, error) {
		h.lock.Lock()
		defer h.lock.Unlock()

		s := &transportfakes.FakeSession{}
		s.NameReturns(p.Media.Name)
		s.StartCalls(func(ctx context.Context) error {
			starting <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		})
		h.sessions[p.Media.Name] = s
		return s, nil
	})
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	select {
	case <-starting:
	case <-time.After(5 * time.Second):
		t.Fatal("transport session never started")
	}
	h.orchestrator.Stop()

	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())
	require.Nil(t, h.orchestrator.Error())
	require.Equal(t, session.ErrorKindNone, session.KindOf(h.orchestrator.Error()))
	require.Equal(t, 1, h.session("audio").StopCallCount())
	require.Empty(t, h.orchestrator.TransportNames())
	require.Zero(t, h.orchestrator.SetupTime())
	require.False(t, h.orchestrator.Activated())

	_, accepts, terminates := h.sent()
	require.Len(t, accepts, 1)
	require.Empty(t, terminates)
}

func TestOrchestratorRemoteTerminate(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	h.waitForState(t, session.StateActive)
	h.orchestrator.HandleMessage(request("iq2", jingle.NewTerminate("sid1", jingle.ReasonSuccess, "")))
	h.waitForDone(t)

	require.Nil(t, h.orchestrator.Error())
	require.Equal(t, 1, h.session("audio").StopCallCount())
	acks, _, terminates := h.sent()
	require.Len(t, acks, 2)
	require.Empty(t, terminates)

	// the session is gone, requests are still acknowledged
	h.orchestrator.HandleMessage(transportInfo("iq3", "audio"))
	h.waitForAcks(t, 3)
}

func TestOrchestratorIgnoresUnexpectedWhileIdle(t *testing.T) {
	h := newHarness(t)
	h.start()

	h.orchestrator.HandleMessage(transportInfo("iq1", "audio"))
	h.orchestrator.HandleMessage(&jingle.Message{ID: "iq0", From: focusJID, To: hammerJID, Type: jingle.MessageTypeResult})
	h.waitForAcks(t, 1)

	require.Equal(t, session.StateIdle, h.orchestrator.CurrentState())
	require.Equal(t, 0, h.driver.AddRemoteCandidatesCallCount())
}

func TestOrchestratorStopBeforeStart(t *testing.T) {
	h := newHarness(t)

	done := make(chan struct{})
	go func() {
		h.orchestrator.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop blocked")
	}
	require.Equal(t, session.StateTerminated, h.orchestrator.CurrentState())

	h.start()
	h.orchestrator.HandleMessage(initiate("iq1", audioContent(opus)))
	h.waitForAcks(t, 1)
	require.Equal(t, 0, h.driver.OpenCallCount())
}

func TestErrorKind(t *testing.T) {
	err := errors.Wrap(&session.Error{Kind: session.ErrorKindConnectivityTimeout, Reason: "no connectivity"}, "user 3")
	require.Equal(t, session.ErrorKindConnectivityTimeout, session.KindOf(err))
	require.Equal(t, session.ErrorKindNone, session.KindOf(context.Canceled))
	require.Equal(t, "ConnectivityTimeout: no connectivity", (&session.Error{Kind: session.ErrorKindConnectivityTimeout, Reason: "no connectivity"}).Error())
	require.Equal(t, "AWAITING_CONNECTIVITY", session.StateAwaitingConnectivity.String())
	require.Equal(t, session.ErrorKindNone, session.KindOf(nil))

	var none *session.Error
	require.Equal(t, session.ErrorKindNone, session.KindOf(none))

	h := newHarness(t)
	require.Nil(t, h.orchestrator.Error())
	require.Equal(t, session.ErrorKindNone, session.KindOf(h.orchestrator.Error()))
}
