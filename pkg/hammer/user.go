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

package hammer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/frostbyte73/core"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/thoas/go-funk"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/config"
	"github.com/livekit/livekit-hammer/pkg/connectivity"
	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/session"
	"github.com/livekit/livekit-hammer/pkg/signalling"
	"github.com/livekit/livekit-hammer/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-hammer/pkg/transport"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// SignalEndpoint is the signaling connection of one user.
//
//counterfeiter:generate . SignalEndpoint
type SignalEndpoint interface {
	Connect(ctx context.Context) error
	Login(ctx context.Context) (string, error)
	JoinRoom(room, nick string) error
	LeaveRoom(room, nick string) error
	SendChat(room, body string) error
	SendMessage(msg *jingle.Message)
	OnChat(f func(signalling.Chat))
	OnDisconnect(f func(error))
	OnJingle(f func(*jingle.Message))
	Close()
}

const seenRequestsSize = 256

var ErrUserStopped = errors.New("fake user stopped")

type FakeUserParams struct {
	Nick     string
	Signal   config.SignalConfig
	Fleet    config.FleetConfig
	Session  config.SessionConfig
	Endpoint SignalEndpoint
	Driver   connectivity.Driver
	Factory  transport.Factory
	Logger   logger.Logger
}

// FakeUser is one simulated participant: it joins the room, greets, and answers every
// session offer it receives with its own orchestrator.
type FakeUser struct {
	params FakeUserParams
	logger logger.Logger
	router *signalling.Router

	// requests already dispatched, by sender and id
	seen          *lru.Cache[string, struct{}]
	replyDebounce func(func())

	lock          sync.Mutex
	address       string
	connected     bool
	connectErr    error
	disconnected  bool
	disconnectErr error
	orchestrators map[string]*session.Orchestrator
	// every orchestrator created, in creation order
	history []*session.Orchestrator

	stopped core.Fuse
}

func NewFakeUser(params FakeUserParams) *FakeUser {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	u := &FakeUser{
		params:        params,
		logger:        params.Logger.WithValues("user", params.Nick),
		orchestrators: make(map[string]*session.Orchestrator),
	}
	u.router = signalling.NewRouter(u.onUnroutedMessage)
	u.seen, _ = lru.New[string, struct{}](seenRequestsSize)
	if params.Fleet.ChatReplyDelay > 0 {
		u.replyDebounce = debounce.New(params.Fleet.ChatReplyDelay)
	}
	return u
}

func (u *FakeUser) Nick() string {
	return u.params.Nick
}

// Start connects, logs in, joins the room and greets it. Any failure is terminal for
// this user.
func (u *FakeUser) Start(ctx context.Context) error {
	err := u.start(ctx)
	u.lock.Lock()
	if err == nil && u.stopped.IsBroken() {
		err = ErrUserStopped
	}
	u.connectErr = err
	u.connected = err == nil
	u.lock.Unlock()

	if err != nil {
		u.logger.Warnw("fake user could not join", err)
		return err
	}
	prometheus.AddUser()
	u.logger.Infow("fake user joined", "room", u.params.Signal.Room)
	return nil
}

func (u *FakeUser) start(ctx context.Context) error {
	if u.stopped.IsBroken() {
		return ErrUserStopped
	}

	e := u.params.Endpoint
	e.OnJingle(u.onJingle)
	e.OnChat(u.onChat)
	e.OnDisconnect(u.onDisconnect)

	if err := e.Connect(ctx); err != nil {
		return err
	}
	address, err := e.Login(ctx)
	if err != nil {
		return errors.Wrap(err, "login")
	}
	u.lock.Lock()
	u.address = address
	u.lock.Unlock()

	if err = e.JoinRoom(u.params.Signal.Room, u.params.Nick); err != nil {
		return errors.Wrap(err, "join room")
	}
	if greeting := u.params.Fleet.Greeting; greeting != "" {
		if err = e.SendChat(u.params.Signal.Room, greeting); err != nil {
			return errors.Wrap(err, "greet")
		}
	}
	return nil
}

// onDisconnect ends every session of a user whose signaling connection dropped, no
// further offer can reach them.
func (u *FakeUser) onDisconnect(err error) {
	u.lock.Lock()
	if u.stopped.IsBroken() || !u.connected || u.disconnected {
		u.lock.Unlock()
		return
	}
	u.disconnected = true
	u.disconnectErr = err
	orchestrators := u.snapshotLocked()
	u.lock.Unlock()

	u.logger.Warnw("signaling connection lost", err, "sessions", len(orchestrators))
	prometheus.SubUser()
	for _, o := range orchestrators {
		o.Stop()
	}
}

func (u *FakeUser) snapshotLocked() []*session.Orchestrator {
	orchestrators := make([]*session.Orchestrator, 0, len(u.orchestrators))
	for _, o := range u.orchestrators {
		orchestrators = append(orchestrators, o)
	}
	return orchestrators
}

func (u *FakeUser) onChat(c signalling.Chat) {
	reply := u.params.Fleet.ChatReply
	if reply == "" || u.stopped.IsBroken() {
		return
	}
	// fake users never answer each other
	nick := c.From[strings.LastIndex(c.From, "/")+1:]
	prefix := u.params.Fleet.NickPrefix
	if (prefix != "" && strings.HasPrefix(nick, prefix)) || nick == u.params.Nick {
		return
	}
	send := func() {
		if u.stopped.IsBroken() {
			return
		}
		u.logger.Debugw("replying to chat", "from", c.From)
		if err := u.params.Endpoint.SendChat(c.Room, reply); err != nil {
			u.logger.Warnw("could not reply to chat", err)
		}
	}
	if u.replyDebounce == nil {
		send()
		return
	}
	u.replyDebounce(send)
}

// onJingle re-acknowledges retransmitted requests instead of handling them twice.
func (u *FakeUser) onJingle(msg *jingle.Message) {
	if msg.IsRequest() && msg.ID != "" {
		key := msg.From + "/" + msg.ID
		if u.seen.Contains(key) {
			u.logger.Debugw("acknowledging retransmitted request", "id", msg.ID, "action", msg.Action())
			u.params.Endpoint.SendMessage(jingle.NewAck(msg))
			return
		}
		u.seen.Add(key, struct{}{})
	}
	u.router.Dispatch(msg)
}

// onUnroutedMessage handles messages of sessions without a route: a new offer gets
// an orchestrator, anything else is acknowledged and dropped.
func (u *FakeUser) onUnroutedMessage(msg *jingle.Message) {
	if msg.Action() == jingle.ActionSessionInitiate && msg.IsRequest() {
		if o := u.newOrchestrator(msg.SID()); o != nil {
			o.HandleMessage(msg)
			return
		}
	}
	if msg.IsRequest() {
		u.logger.Debugw("acknowledging message for unknown session", "sid", msg.SID(), "action", msg.Action())
		u.params.Endpoint.SendMessage(jingle.NewAck(msg))
		return
	}
	u.logger.Debugw("dropping message", "id", msg.ID, "type", msg.Type)
}

// newOrchestrator returns nil once the user is stopped or disconnected, and when the
// sid is already routed.
func (u *FakeUser) newOrchestrator(sid string) *session.Orchestrator {
	o := session.NewOrchestrator(session.OrchestratorParams{
		SID:          sid,
		Config:       u.params.Session.Config,
		Signaller:    u.params.Endpoint,
		Driver:       u.params.Driver,
		Factory:      u.params.Factory,
		Logger:       u.logger,
		OnTerminated: u.onTerminated,
	})

	u.lock.Lock()
	if u.stopped.IsBroken() || u.disconnected {
		u.lock.Unlock()
		o.Stop()
		return nil
	}
	if !u.router.Register(sid, o) {
		u.lock.Unlock()
		u.logger.Warnw("session already routed", nil, "sid", sid)
		o.Stop()
		return nil
	}
	u.orchestrators[sid] = o
	u.history = append(u.history, o)
	u.lock.Unlock()

	o.Start(u.params.Session.Codecs, u.params.Session.Direction)
	return o
}

func (u *FakeUser) onTerminated(o *session.Orchestrator) {
	u.router.Unregister(o.SID(), o)

	u.lock.Lock()
	if cur, ok := u.orchestrators[o.SID()]; ok && cur == o {
		delete(u.orchestrators, o.SID())
	}
	u.lock.Unlock()

	if e := o.Error(); e != nil {
		u.logger.Infow("session ended", "sid", o.SID(), "kind", e.Kind.String(), "reason", e.Reason)
	}
}

// ActiveSessions is the number of sessions that have not terminated yet.
func (u *FakeUser) ActiveSessions() int {
	u.lock.Lock()
	defer u.lock.Unlock()

	return len(u.orchestrators)
}

// Stop stops every session, leaves the room and disconnects.
func (u *FakeUser) Stop() {
	u.lock.Lock()
	if u.stopped.IsBroken() {
		u.lock.Unlock()
		return
	}
	u.stopped.Break()
	joined := u.connected && !u.disconnected
	orchestrators := u.snapshotLocked()
	u.lock.Unlock()

	for _, o := range orchestrators {
		o.Stop()
	}
	if joined {
		if err := u.params.Endpoint.LeaveRoom(u.params.Signal.Room, u.params.Nick); err != nil {
			u.logger.Debugw("could not leave room", "error", err)
		}
		prometheus.SubUser()
	}
	u.params.Endpoint.Close()
	u.logger.Infow("fake user stopped")
}

type SessionResult struct {
	SID   string        `yaml:"sid"`
	State session.State `yaml:"state"`
	// reached ACTIVE at some point, the state may have moved on since
	Activated  bool                       `yaml:"activated"`
	ErrorKind  session.ErrorKind          `yaml:"error_kind"`
	Reason     string                     `yaml:"reason,omitempty"`
	SetupTime  time.Duration              `yaml:"setup_time,omitempty"`
	Transports []string                   `yaml:"transports,omitempty"`
	Stats      map[string]transport.Stats `yaml:"stats,omitempty"`
}

type UserResult struct {
	Nick         string `yaml:"nick"`
	Address      string `yaml:"address,omitempty"`
	Connected    bool   `yaml:"connected"`
	ConnectError string `yaml:"connect_error,omitempty"`
	// lost the signaling connection after joining
	Disconnected    bool            `yaml:"disconnected,omitempty"`
	DisconnectError string          `yaml:"disconnect_error,omitempty"`
	Sessions        []SessionResult `yaml:"sessions,omitempty"`
}

func (r UserResult) String() string {
	if !r.Connected {
		return fmt.Sprintf("%s: not connected: %s", r.Nick, r.ConnectError)
	}
	if r.Disconnected {
		return fmt.Sprintf("%s: disconnected: %s", r.Nick, r.DisconnectError)
	}
	return fmt.Sprintf("%s: %d session(s)", r.Nick, len(r.Sessions))
}

func (u *FakeUser) Result() UserResult {
	u.lock.Lock()
	r := UserResult{
		Nick:      u.params.Nick,
		Address:   u.address,
		Connected: u.connected,
	}
	if u.connectErr != nil {
		r.ConnectError = u.connectErr.Error()
	}
	if u.disconnected {
		r.Disconnected = true
		r.DisconnectError = "connection closed"
		if u.disconnectErr != nil {
			r.DisconnectError = u.disconnectErr.Error()
		}
	}
	history := append([]*session.Orchestrator(nil), u.history...)
	u.lock.Unlock()

	for _, o := range history {
		stats := o.Stats()
		var transports []string
		if len(stats) > 0 {
			transports = funk.Keys(stats).([]string)
			sort.Strings(transports)
		}
		sr := SessionResult{
			SID:        o.SID(),
			State:      o.CurrentState(),
			Activated:  o.Activated(),
			SetupTime:  o.SetupTime(),
			Transports: transports,
			Stats:      stats,
		}
		if e := o.Error(); e != nil {
			sr.ErrorKind = e.Kind
			sr.Reason = e.Reason
		}
		r.Sessions = append(r.Sessions, sr)
	}
	return r
}
