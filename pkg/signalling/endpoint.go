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

package signalling

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"
	protoutils "github.com/livekit/protocol/utils"

	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-hammer/pkg/utils"
)

const (
	pingFrequency       = 10 * time.Second
	pingTimeout         = 2 * time.Second
	defaultLoginTimeout = 10 * time.Second
	loginIDPrefix       = "LG_"
)

var (
	ErrConnection     = errors.New("signaling connection failed")
	ErrNotConnected   = errors.New("signaling endpoint not connected")
	ErrLoginTimeout   = errors.New("no session assigned before login timeout")
	ErrEndpointClosed = errors.New("signaling endpoint closed")
)

type EndpointParams struct {
	URL          string
	Domain       string
	LoginTimeout time.Duration
	Dialer       *websocket.Dialer
	Logger       logger.Logger
}

// Endpoint is a signaling connection. Outbound frames are written by a single writer in
// the order they were sent, inbound frames are delivered on the read goroutine.
type Endpoint struct {
	params EndpointParams
	logger logger.Logger

	lock         sync.RWMutex
	conn         *websocket.Conn
	address      string
	onChat       func(Chat)
	onJingle     func(*jingle.Message)
	onSendError  func(error)
	onDisconnect func(error)

	writer   *utils.OpsQueue
	sessions chan string
	closing  bool
	closed   core.Fuse
}

func NewEndpoint(params EndpointParams) *Endpoint {
	if params.LoginTimeout <= 0 {
		params.LoginTimeout = defaultLoginTimeout
	}
	if params.Dialer == nil {
		params.Dialer = websocket.DefaultDialer
	}
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	e := &Endpoint{
		params:   params,
		logger:   params.Logger,
		sessions: make(chan string, 1),
	}
	e.writer = utils.NewOpsQueue(utils.OpsQueueParams{
		Name:        "signal-writer",
		MinSize:     32,
		FlushOnStop: true,
		Logger:      params.Logger,
	})
	return e
}

func (e *Endpoint) OnChat(f func(Chat)) {
	e.lock.Lock()
	e.onChat = f
	e.lock.Unlock()
}

func (e *Endpoint) OnJingle(f func(*jingle.Message)) {
	e.lock.Lock()
	e.onJingle = f
	e.lock.Unlock()
}

// OnSendError is called from the writer for every frame that could not be written.
func (e *Endpoint) OnSendError(f func(error)) {
	e.lock.Lock()
	e.onSendError = f
	e.lock.Unlock()
}

func (e *Endpoint) OnDisconnect(f func(error)) {
	e.lock.Lock()
	e.onDisconnect = f
	e.lock.Unlock()
}

// Address is the address assigned by the server at login.
func (e *Endpoint) Address() string {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.address
}

func (e *Endpoint) Connect(ctx context.Context) error {
	if e.closed.IsBroken() {
		return ErrEndpointClosed
	}
	conn, _, err := e.params.Dialer.DialContext(ctx, e.params.URL, nil)
	if err != nil {
		return errors.Wrapf(ErrConnection, "dial %s: %v", e.params.URL, err)
	}

	e.lock.Lock()
	e.conn = conn
	e.lock.Unlock()

	conn.SetCloseHandler(func(code int, text string) error {
		e.logger.Infow("signaling connection closed", "code", code, "text", text)
		return nil
	})

	e.writer.Start()
	go e.readWorker(conn)
	go e.pingWorker(conn)
	e.logger.Debugw("signaling connected", "url", e.params.URL)
	return nil
}

// Login authenticates anonymously and waits for the server to assign an address.
func (e *Endpoint) Login(ctx context.Context) (string, error) {
	if err := e.send(&Envelope{
		Type:   EnvelopeLogin,
		ID:     protoutils.NewGuid(loginIDPrefix),
		Domain: e.params.Domain,
	}); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.params.LoginTimeout)
	defer cancel()
	select {
	case address := <-e.sessions:
		e.lock.Lock()
		e.address = address
		e.lock.Unlock()
		e.logger.Infow("logged in", "address", address)
		return address, nil
	case <-e.closed.Watch():
		return "", ErrEndpointClosed
	case <-ctx.Done():
		return "", errors.Wrapf(ErrLoginTimeout, "%v", ctx.Err())
	}
}

func (e *Endpoint) JoinRoom(room, nick string) error {
	return e.send(&Envelope{
		Type: EnvelopePresence,
		From: e.Address(),
		Room: room,
		Nick: nick,
	})
}

func (e *Endpoint) LeaveRoom(room, nick string) error {
	return e.send(&Envelope{
		Type:     EnvelopePresence,
		From:     e.Address(),
		Room:     room,
		Nick:     nick,
		Presence: PresenceUnavailable,
	})
}

func (e *Endpoint) SendChat(room, body string) error {
	return e.send(&Envelope{
		Type:     EnvelopeMessage,
		From:     e.Address(),
		Room:     room,
		ChatType: ChatGroup,
		Body:     body,
	})
}

// SendMessage queues a negotiation message. Delivery failures are reported through
// OnSendError.
func (e *Endpoint) SendMessage(msg *jingle.Message) {
	if msg == nil {
		return
	}
	if msg.From == "" {
		msg.From = e.Address()
	}
	if err := e.send(&Envelope{Type: EnvelopeIQ, ID: msg.ID, From: msg.From, To: msg.To, IQ: msg}); err != nil {
		e.reportSendError(err)
	}
}

func (e *Endpoint) send(env *Envelope) error {
	e.lock.RLock()
	conn := e.conn
	e.lock.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}
	if e.closed.IsBroken() {
		return ErrEndpointClosed
	}

	if !e.writer.Enqueue(func() { e.write(conn, env) }) {
		return ErrEndpointClosed
	}
	return nil
}

func (e *Endpoint) write(conn *websocket.Conn, env *Envelope) {
	if err := conn.WriteJSON(env); err != nil {
		e.reportSendError(errors.Wrapf(err, "write %s", env.Type))
		return
	}
	prometheus.RecordSignalMessage(string(env.Type), prometheus.Outgoing)
}

func (e *Endpoint) reportSendError(err error) {
	e.lock.RLock()
	onSendError := e.onSendError
	e.lock.RUnlock()

	if onSendError != nil {
		onSendError(err)
		return
	}
	e.logger.Warnw("could not send signaling message", err)
}

func (e *Endpoint) readWorker(conn *websocket.Conn) {
	for {
		env := &Envelope{}
		if err := conn.ReadJSON(env); err != nil {
			if e.closed.IsBroken() {
				return
			}
			if IsWebSocketCloseError(err) {
				e.logger.Infow("signaling connection lost", "error", err)
			} else {
				e.logger.Errorw("error reading signaling connection", err)
			}
			e.lock.RLock()
			onDisconnect := e.onDisconnect
			e.lock.RUnlock()
			if onDisconnect != nil {
				onDisconnect(err)
			}
			return
		}
		prometheus.RecordSignalMessage(string(env.Type), prometheus.Incoming)
		e.handleEnvelope(env)
	}
}

func (e *Endpoint) handleEnvelope(env *Envelope) {
	switch env.Type {
	case EnvelopeSession:
		select {
		case e.sessions <- env.Address:
		default:
			e.logger.Debugw("ignoring unsolicited session", "address", env.Address)
		}
	case EnvelopeMessage:
		e.lock.RLock()
		onChat := e.onChat
		e.lock.RUnlock()
		if onChat != nil && env.ChatType == ChatGroup {
			onChat(Chat{Room: env.Room, From: env.From, Body: env.Body})
		}
	case EnvelopeIQ:
		if env.IQ == nil {
			e.logger.Debugw("ignoring iq without payload", "id", env.ID)
			return
		}
		e.lock.RLock()
		onJingle := e.onJingle
		e.lock.RUnlock()
		if onJingle != nil {
			onJingle(env.IQ)
		}
	case EnvelopePresence:
		e.logger.Debugw("presence", "room", env.Room, "nick", env.Nick, "presence", env.Presence)
	default:
		e.logger.Debugw("unsupported envelope", "type", env.Type)
	}
}

func (e *Endpoint) pingWorker(conn *websocket.Conn) {
	ticker := time.NewTicker(pingFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte(""), time.Now().Add(pingTimeout)); err != nil {
				return
			}
		case <-e.closed.Watch():
			return
		}
	}
}

// Close flushes queued frames and closes the connection.
func (e *Endpoint) Close() {
	e.lock.Lock()
	if e.closing {
		e.lock.Unlock()
		<-e.closed.Watch()
		return
	}
	e.closing = true
	conn := e.conn
	e.lock.Unlock()

	<-e.writer.Stop()
	e.closed.Break()
	if conn == nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(pingTimeout))
	_ = conn.Close()
	e.logger.Debugw("signaling disconnected")
}

// IsWebSocketCloseError checks that error is normal/expected closure
func IsWebSocketCloseError(err error) bool {
	return errors.Is(err, io.EOF) ||
		strings.HasSuffix(err.Error(), "use of closed network connection") ||
		strings.HasSuffix(err.Error(), "connection reset by peer") ||
		websocket.IsCloseError(
			err,
			websocket.CloseAbnormalClosure,
			websocket.CloseGoingAway,
			websocket.CloseNormalClosure,
			websocket.CloseNoStatusReceived,
		)
}
