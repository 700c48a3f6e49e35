// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"context"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/connectivity"
	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
	"github.com/livekit/livekit-hammer/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-hammer/pkg/transport"
	"github.com/livekit/livekit-hammer/pkg/utils"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const (
	defaultPollInterval        = 250 * time.Millisecond
	defaultConnectivityTimeout = 30 * time.Second
)

type LateCandidatePolicy string

const (
	LateCandidatesAccept LateCandidatePolicy = "accept"
	LateCandidatesDrop   LateCandidatePolicy = "drop"
)

// Signaller sends negotiation messages to the remote peer. Delivery failures are
// reported by the signaller itself.
//
//counterfeiter:generate . Signaller
type Signaller interface {
	SendMessage(msg *jingle.Message)
}

type Config struct {
	PollInterval        time.Duration       `yaml:"poll_interval,omitempty"`
	ConnectivityTimeout time.Duration       `yaml:"connectivity_timeout,omitempty"`
	TerminateOnTimeout  bool                `yaml:"terminate_on_timeout"`
	TerminateOnFailure  bool                `yaml:"terminate_on_failure"`
	LateCandidates      LateCandidatePolicy `yaml:"late_candidates,omitempty"`
	Kinds               []jingle.MediaKind  `yaml:"kinds,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		PollInterval:        defaultPollInterval,
		ConnectivityTimeout: defaultConnectivityTimeout,
		TerminateOnTimeout:  true,
		TerminateOnFailure:  true,
		LateCandidates:      LateCandidatesAccept,
	}
}

type OrchestratorParams struct {
	SID          string
	Config       Config
	Signaller    Signaller
	Driver       connectivity.Driver
	Factory      transport.Factory
	Logger       logger.Logger
	OnTerminated func(o *Orchestrator)
}

// Orchestrator runs one negotiation: it answers the offer, drives connectivity to a
// terminal status and then activates a transport session per accepted content.
// Inbound messages are handled one at a time on its ops queue.
type Orchestrator struct {
	params OrchestratorParams
	logger logger.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	opsQ    *utils.OpsQueue
	started atomic.Bool

	state      atomic.Int32
	acceptSent atomic.Bool

	lock       sync.RWMutex
	policy     selector.Policy
	local      string
	remote     string
	offer      *jingle.SessionOffer
	accepted   selector.AcceptedContentList
	selection  selector.Selection
	handle     connectivity.Handle
	err        *Error
	pollCancel context.CancelFunc
	setup      *utils.Stopwatch
	setupTime  time.Duration
	activated  bool
	// stats of the transports stopped at teardown
	finalStats map[string]transport.Stats
	// transports counted in the active gauge
	activeTransports int

	registry *transport.Registry
	done     core.Fuse
}

func NewOrchestrator(params OrchestratorParams) *Orchestrator {
	if params.Config.PollInterval <= 0 {
		params.Config.PollInterval = defaultPollInterval
	}
	if params.Config.ConnectivityTimeout <= 0 {
		params.Config.ConnectivityTimeout = defaultConnectivityTimeout
	}
	if params.Config.LateCandidates == "" {
		params.Config.LateCandidates = LateCandidatesAccept
	}
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		params:   params,
		logger:   params.Logger.WithValues("sid", params.SID),
		ctx:      ctx,
		cancel:   cancel,
		registry: transport.NewRegistry(),
	}
	o.opsQ = utils.NewOpsQueue(utils.OpsQueueParams{
		Name:        "orchestrator",
		MinSize:     16,
		FlushOnStop: true,
		Logger:      o.logger,
	})
	o.policy = selector.DefaultPolicy()
	o.policy.Kinds = params.Config.Kinds
	return o
}

// Start begins processing inbound messages with the given selection policies.
func (o *Orchestrator) Start(formats selector.FormatPolicy, direction selector.DirectionPolicy) {
	o.lock.Lock()
	o.policy.Formats = formats
	if direction != "" {
		o.policy.Direction = direction
	}
	o.lock.Unlock()

	if !o.started.CompareAndSwap(false, true) {
		return
	}
	o.opsQ.Start()
}

// Stop tears the negotiation down and blocks until it is terminated.
func (o *Orchestrator) Stop() {
	o.cancel()
	if o.started.CompareAndSwap(false, true) {
		o.teardown()
		return
	}
	o.opsQ.Enqueue(o.teardown)
	<-o.done.Watch()
}

func (o *Orchestrator) SID() string {
	return o.params.SID
}

func (o *Orchestrator) CurrentState() State {
	return State(o.state.Load())
}

// Error returns the terminal error, nil while none occurred.
func (o *Orchestrator) Error() *Error {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return o.err
}

// SetupTime is the time from the offer to activation, 0 until the session is active.
func (o *Orchestrator) SetupTime() time.Duration {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return o.setupTime
}

func (o *Orchestrator) Done() <-chan struct{} {
	return o.done.Watch()
}

func (o *Orchestrator) AcceptedContents() selector.AcceptedContentList {
	o.lock.RLock()
	defer o.lock.RUnlock()

	list := make(selector.AcceptedContentList, 0, len(o.accepted))
	for _, c := range o.accepted {
		list = append(list, c.Clone())
	}
	return list
}

func (o *Orchestrator) TransportNames() []string {
	return o.registry.Names()
}

// Stats are read from the running transports, and frozen once the session terminates.
func (o *Orchestrator) Stats() map[string]transport.Stats {
	o.lock.RLock()
	final := o.finalStats
	o.lock.RUnlock()
	if final == nil {
		return o.registry.Stats()
	}

	stats := make(map[string]transport.Stats, len(final))
	for name, s := range final {
		stats[name] = s
	}
	return stats
}

// Activated reports whether the session reached ACTIVE, even if it terminated since.
func (o *Orchestrator) Activated() bool {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return o.activated
}

// HandleMessage queues an inbound message for this session. Requests are always
// acknowledged, even once the session is gone.
func (o *Orchestrator) HandleMessage(msg *jingle.Message) {
	if msg == nil {
		return
	}
	if !o.opsQ.Enqueue(func() { o.handleMessage(msg) }) {
		o.ack(msg)
	}
}

func (o *Orchestrator) handleMessage(msg *jingle.Message) {
	o.ack(msg)

	switch msg.Type {
	case jingle.MessageTypeResult:
		o.logger.Debugw("received ack", "id", msg.ID)
		return
	case jingle.MessageTypeError:
		o.logger.Infow("remote reported an error", "id", msg.ID, "error", msg.Error)
		return
	}

	switch msg.Action() {
	case jingle.ActionSessionInitiate:
		o.onInitiate(msg)
	case jingle.ActionTransportInfo:
		o.onTransportInfo(msg)
	case jingle.ActionSessionTerminate:
		reason := ""
		if msg.Jingle.Reason != nil {
			reason = msg.Jingle.Reason.Condition
		}
		o.logger.Infow("remote terminated session", "reason", reason)
		o.teardown()
	case jingle.ActionSourceAdd, jingle.ActionSourceRemove:
		o.logger.Debugw("ignoring source update", "action", msg.Action())
	default:
		o.logger.Infow("ignoring unexpected action", "action", msg.Action(), "state", o.CurrentState().String())
	}
}

func (o *Orchestrator) ack(msg *jingle.Message) {
	if msg.IsRequest() {
		o.params.Signaller.SendMessage(jingle.NewAck(msg))
	}
}

func (o *Orchestrator) setState(s State) {
	prev := State(o.state.Swap(int32(s)))
	if prev != s {
		o.logger.Debugw("session state changed", "from", prev.String(), "to", s.String())
	}
}

func (o *Orchestrator) onInitiate(msg *jingle.Message) {
	if state := o.CurrentState(); state != StateIdle {
		o.logger.Infow("ignoring duplicate session-initiate", "state", state.String())
		return
	}
	o.setState(StateOfferReceived)
	setup := utils.NewStopwatch()
	o.lock.Lock()
	o.setup = setup
	o.lock.Unlock()

	offer, err := jingle.ParseOffer(msg.Jingle)
	if err != nil {
		o.fail(newError(ErrorKindMalformedOffer, err), "")
		return
	}

	o.lock.Lock()
	o.offer = offer
	o.local = msg.To
	o.remote = msg.From
	policy := o.policy
	o.lock.Unlock()

	o.setState(StateNegotiating)
	accepted, selection, err := selector.Select(offer, policy)
	if err != nil {
		o.fail(newError(ErrorKindMalformedOffer, err), "")
		return
	}
	names := accepted.Names()
	driver := o.params.Driver

	handle, err := driver.Open(o.ctx, names)
	if err != nil {
		o.fail(newError(ErrorKindResourceExhausted, err), o.failureReason(jingle.ReasonFailedTransport))
		return
	}
	o.lock.Lock()
	o.handle = handle
	o.selection = selection
	o.lock.Unlock()

	if err = driver.AddRemoteCandidates(handle, offer.RemoteTransports(names)); err != nil {
		o.fail(newError(ErrorKindConnectivityFailure, err), o.failureReason(jingle.ReasonConnectivityError))
		return
	}
	local, err := driver.LocalCandidates(handle)
	if err != nil {
		o.fail(newError(ErrorKindResourceExhausted, err), o.failureReason(jingle.ReasonFailedTransport))
		return
	}
	accepted = selector.WithLocalTransports(accepted, local, o.params.Factory.Fingerprints(), selection)

	o.lock.Lock()
	o.accepted = accepted
	o.lock.Unlock()

	o.sendAccept(offer, accepted)
	setup.Mark("accepted")

	o.setState(StateAwaitingConnectivity)
	if err = driver.Start(handle); err != nil {
		o.fail(newError(ErrorKindConnectivityFailure, err), o.failureReason(jingle.ReasonConnectivityError))
		return
	}

	ctx, cancel := context.WithTimeout(o.ctx, o.params.Config.ConnectivityTimeout)
	o.lock.Lock()
	o.pollCancel = cancel
	o.lock.Unlock()
	go o.pollConnectivity(ctx, handle)
}

func (o *Orchestrator) sendAccept(offer *jingle.SessionOffer, accepted selector.AcceptedContentList) {
	if !o.acceptSent.CompareAndSwap(false, true) {
		return
	}
	o.params.Signaller.SendMessage(jingle.NewRequest(o.local, o.remote, jingle.NewAccept(offer, accepted)))
	o.logger.Infow("sent session-accept", "contents", accepted.Names())
}

func (o *Orchestrator) sendTerminate(condition string, text string) {
	o.params.Signaller.SendMessage(jingle.NewRequest(o.local, o.remote, jingle.NewTerminate(o.params.SID, condition, text)))
}

// failureReason returns the condition to terminate with when failures are reported
// to the remote peer, empty otherwise.
func (o *Orchestrator) failureReason(condition string) string {
	if !o.params.Config.TerminateOnFailure {
		return ""
	}
	return condition
}

func (o *Orchestrator) fail(e *Error, terminateCondition string) {
	// cancelled by Stop, not a negotiation failure
	if o.ctx.Err() != nil {
		o.teardown()
		return
	}
	o.logger.Warnw("negotiation failed", e, "kind", e.Kind.String())

	o.lock.Lock()
	if o.err == nil {
		o.err = e
	}
	o.lock.Unlock()

	if terminateCondition != "" {
		o.sendTerminate(terminateCondition, e.Reason)
	}
	prometheus.RecordNegotiation("failed", e.Kind.String())
	o.teardown()
}

func (o *Orchestrator) pollConnectivity(ctx context.Context, handle connectivity.Handle) {
	ticker := time.NewTicker(o.params.Config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				o.opsQ.Enqueue(o.onConnectivityTimeout)
			}
			return
		case <-ticker.C:
			status := o.params.Driver.Status(handle)
			if status.IsTerminal() {
				o.opsQ.Enqueue(func() { o.onConnectivityResult(status) })
				return
			}
		}
	}
}

func (o *Orchestrator) onConnectivityResult(status connectivity.Status) {
	if o.CurrentState() != StateAwaitingConnectivity {
		return
	}
	o.logger.Debugw("connectivity terminated", "status", status.String())

	if status != connectivity.StatusSucceeded {
		o.fail(newError(ErrorKindConnectivityFailure, errors.New("connectivity checks failed")), o.failureReason(jingle.ReasonConnectivityError))
		return
	}
	o.lock.RLock()
	if o.setup != nil {
		o.setup.Mark("connected")
	}
	o.lock.RUnlock()
	o.activate()
}

func (o *Orchestrator) onConnectivityTimeout() {
	if o.CurrentState() != StateAwaitingConnectivity {
		return
	}
	condition := ""
	if o.params.Config.TerminateOnTimeout {
		condition = jingle.ReasonTimeout
	}
	o.fail(newError(ErrorKindConnectivityTimeout, errors.Errorf("no connectivity after %s", o.params.Config.ConnectivityTimeout)), condition)
}

// activate creates, registers and starts a transport session per accepted content.
// A content that fails to start does not affect its siblings.
func (o *Orchestrator) activate() {
	o.lock.RLock()
	accepted := o.accepted
	selection := o.selection
	handle := o.handle
	o.lock.RUnlock()

	var (
		failMu   sync.Mutex
		failures error
	)
	recordFailure := func(name string, err error) {
		o.logger.Warnw("could not start transport session", err, "content", name)
		failMu.Lock()
		failures = multierr.Append(failures, errors.Wrapf(err, "content %s", name))
		failMu.Unlock()
	}

	var names []string
	for _, name := range accepted.Names() {
		s, err := o.params.Factory.NewSession(transport.Params{
			Media:  selection[name],
			Handle: handle,
			Logger: o.logger.WithValues("content", name),
		})
		if err != nil {
			recordFailure(name, err)
			continue
		}
		if err = o.registry.Put(name, s); err != nil {
			s.Stop()
			recordFailure(name, err)
			continue
		}
		names = append(names, name)
	}

	ctx, cancel := context.WithTimeout(o.ctx, o.params.Config.ConnectivityTimeout)
	defer cancel()

	var started atomic.Int32
	var eg errgroup.Group
	for _, name := range names {
		name := name
		eg.Go(func() error {
			if err := o.registry.Start(ctx, name); err != nil {
				recordFailure(name, err)
				return nil
			}
			started.Inc()
			return nil
		})
	}
	_ = eg.Wait()

	if o.ctx.Err() != nil {
		o.logger.Debugw("stopped while starting transport sessions")
		o.teardown()
		return
	}
	if started.Load() == 0 {
		o.fail(newError(ErrorKindTransportStartFailure, failures), o.failureReason(jingle.ReasonFailedTransport))
		return
	}

	if failures != nil {
		o.lock.Lock()
		o.err = newError(ErrorKindTransportStartFailure, failures)
		o.lock.Unlock()
		prometheus.RecordNegotiation("partial", ErrorKindTransportStartFailure.String())
	} else {
		prometheus.RecordNegotiation("active", ErrorKindNone.String())
	}
	o.lock.Lock()
	o.activeTransports = o.registry.Len()
	o.activated = true
	active := o.activeTransports
	setup := o.setup
	if setup != nil {
		setup.Mark("active")
		o.setupTime = setup.Elapsed()
	}
	o.lock.Unlock()
	prometheus.AddTransportSessions(active)
	o.setState(StateActive)

	values := []interface{}{"transports", o.registry.Names(), "started", started.Load()}
	if setup != nil {
		values = append(values, "setup", setup.Splits())
	}
	o.logger.Infow("session active", values...)
}

func (o *Orchestrator) onTransportInfo(msg *jingle.Message) {
	state := o.CurrentState()
	if state == StateIdle || state == StateTerminated {
		o.logger.Infow("ignoring transport-info", "state", state.String())
		return
	}

	o.lock.RLock()
	handle := o.handle
	selection := o.selection
	o.lock.RUnlock()
	if handle == nil {
		return
	}

	transports := make(map[string]jingle.Transport)
	for _, c := range msg.Jingle.Contents {
		if _, ok := selection[c.Name]; !ok || c.Transport == nil {
			continue
		}
		transports[c.Name] = *c.Transport.Clone()
	}
	if len(transports) == 0 {
		return
	}

	if o.params.Config.LateCandidates == LateCandidatesDrop {
		o.logger.Debugw("dropping late remote candidates", "contents", len(transports))
		return
	}
	if err := o.params.Driver.AddRemoteCandidates(handle, transports); err != nil {
		o.logger.Warnw("could not add late remote candidates", err)
	}
}

// teardown stops the transports and releases connectivity, once.
func (o *Orchestrator) teardown() {
	o.lock.Lock()
	if o.done.IsBroken() {
		o.lock.Unlock()
		return
	}
	o.setState(StateTerminated)
	pollCancel := o.pollCancel
	handle := o.handle
	active := o.activeTransports
	o.activeTransports = 0
	o.lock.Unlock()

	o.cancel()
	if pollCancel != nil {
		pollCancel()
	}

	final := o.registry.StopAll()
	o.lock.Lock()
	o.finalStats = final
	o.lock.Unlock()
	if active > 0 {
		prometheus.SubTransportSessions(active)
	}
	if handle != nil {
		if err := o.params.Driver.Close(handle); err != nil {
			o.logger.Warnw("could not close connectivity handle", err)
		}
	}

	o.done.Break()
	o.logger.Infow("session terminated")
	if o.params.OnTerminated != nil {
		o.params.OnTerminated(o)
	}
	o.opsQ.Stop()
}
