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

package transport

import (
	"context"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
)

const dataChannelLabel = "hammer"

// DataSession runs an SCTP association over the content's secure transport and counts what
// arrives on the remote data channels.
type DataSession struct {
	media  selector.SelectedMedia
	logger logger.Logger

	api  *webrtc.API
	dtls *webrtc.DTLSTransport
	sctp *webrtc.SCTPTransport

	lock     sync.Mutex
	channels []*webrtc.DataChannel

	started atomic.Bool
	stopped core.Fuse

	messagesReceived atomic.Uint64
	bytesReceived    atomic.Uint64
}

func newDataSession(f *PionFactory, params Params, iceTransport *webrtc.ICETransport) (*DataSession, error) {
	api, dtls, err := f.newDTLSTransport(&webrtc.MediaEngine{}, iceTransport)
	if err != nil {
		return nil, err
	}

	s := &DataSession{
		media:  params.Media,
		logger: params.Logger,
		api:    api,
		dtls:   dtls,
		sctp:   api.NewSCTPTransport(dtls),
	}
	s.sctp.OnDataChannel(func(dc *webrtc.DataChannel) {
		s.logger.Debugw("remote data channel opened", "label", dc.Label())
		s.track(dc)
	})
	return s, nil
}

func (s *DataSession) Name() string {
	return s.media.Name
}

func (s *DataSession) Kind() jingle.MediaKind {
	return jingle.MediaKindData
}

func (s *DataSession) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if s.stopped.IsBroken() {
		return ErrSessionStopped
	}

	stop := context.AfterFunc(ctx, s.Stop)
	defer stop()

	remote := remoteDTLSParameters(s.media.RemoteFingerprints)
	if err := s.dtls.Start(remote); err != nil {
		return errors.Wrap(err, "dtls handshake")
	}
	if err := s.sctp.Start(webrtc.SCTPCapabilities{MaxMessageSize: 0}); err != nil {
		return errors.Wrap(err, "sctp association")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// the DTLS client takes even stream ids, the server odd ones
	id := uint16(0)
	if remote.Role == webrtc.DTLSRoleClient {
		id = 1
	}
	dc, err := s.api.NewDataChannel(s.sctp, &webrtc.DataChannelParameters{
		Label:   dataChannelLabel,
		ID:      &id,
		Ordered: true,
	})
	if err != nil {
		return errors.Wrap(err, "open data channel")
	}
	s.track(dc)

	s.logger.Debugw("data session started")
	return nil
}

func (s *DataSession) track(dc *webrtc.DataChannel) {
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		s.messagesReceived.Inc()
		s.bytesReceived.Add(uint64(len(msg.Data)))
	})

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.stopped.IsBroken() {
		_ = dc.Close()
		return
	}
	s.channels = append(s.channels, dc)
}

func (s *DataSession) Stop() {
	s.lock.Lock()
	if s.stopped.IsBroken() {
		s.lock.Unlock()
		return
	}
	s.stopped.Break()
	channels := s.channels
	s.channels = nil
	s.lock.Unlock()

	for _, dc := range channels {
		_ = dc.Close()
	}
	if err := s.sctp.Stop(); err != nil {
		s.logger.Debugw("error stopping sctp transport", "error", err)
	}
	if err := s.dtls.Stop(); err != nil {
		s.logger.Debugw("error stopping dtls transport", "error", err)
	}
	s.logger.Debugw("data session stopped")
}

func (s *DataSession) Stats() Stats {
	return Stats{
		BytesReceived:    s.bytesReceived.Load(),
		MessagesReceived: s.messagesReceived.Load(),
	}
}
