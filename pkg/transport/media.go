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
	"io"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v3"
	"github.com/pion/webrtc/v3/pkg/media"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
)

const (
	streamPrefix = "ST_"
	receiveMTU   = 1500
)

// MediaSession keeps an audio or video content alive: it sends placeholder samples with the
// negotiated codec and reads whatever the remote sources send.
type MediaSession struct {
	media          selector.SelectedMedia
	codec          webrtc.RTPCodecParameters
	sampleInterval time.Duration
	logger         logger.Logger

	api  *webrtc.API
	dtls *webrtc.DTLSTransport

	lock      sync.Mutex
	sender    *webrtc.RTPSender
	receivers []*webrtc.RTPReceiver

	started atomic.Bool
	stopped core.Fuse

	packetsSent     atomic.Uint64
	bytesSent       atomic.Uint64
	packetsReceived atomic.Uint64
	bytesReceived   atomic.Uint64
	rtcpReceived    atomic.Uint64
}

func newMediaSession(f *PionFactory, params Params, iceTransport *webrtc.ICETransport) (*MediaSession, error) {
	codec := codecParameters(params.Media.Kind, params.Media.Format)
	me := &webrtc.MediaEngine{}
	if err := me.RegisterCodec(codec, codecType(params.Media.Kind)); err != nil {
		return nil, errors.Wrapf(err, "register codec %s", params.Media.Format.String())
	}

	api, dtls, err := f.newDTLSTransport(me, iceTransport)
	if err != nil {
		return nil, err
	}

	return &MediaSession{
		media:          params.Media,
		codec:          codec,
		sampleInterval: f.params.SampleInterval,
		logger:         params.Logger,
		api:            api,
		dtls:           dtls,
	}, nil
}

func (s *MediaSession) Name() string {
	return s.media.Name
}

func (s *MediaSession) Kind() jingle.MediaKind {
	return s.media.Kind
}

func (s *MediaSession) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if s.stopped.IsBroken() {
		return ErrSessionStopped
	}

	stop := context.AfterFunc(ctx, s.Stop)
	defer stop()

	if err := s.dtls.Start(remoteDTLSParameters(s.media.RemoteFingerprints)); err != nil {
		return errors.Wrap(err, "dtls handshake")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if s.media.Direction.Sends() {
		if err := s.startSender(); err != nil {
			return err
		}
	}
	if s.media.Direction.Receives() {
		for _, src := range s.media.RemoteSources {
			if err := s.startReceiver(src); err != nil {
				return err
			}
		}
	}

	s.logger.Debugw("media session started", "codec", s.codec.MimeType)
	return nil
}

func (s *MediaSession) startSender() error {
	track, err := webrtc.NewTrackLocalStaticSample(s.codec.RTPCodecCapability, s.media.Name, utils.NewGuid(streamPrefix))
	if err != nil {
		return err
	}
	sender, err := s.api.NewRTPSender(track, s.dtls)
	if err != nil {
		return err
	}

	if err = sender.Send(webrtc.RTPSendParameters{
		Encodings: []webrtc.RTPEncodingParameters{
			{
				RTPCodingParameters: webrtc.RTPCodingParameters{
					SSRC:        sender.GetParameters().Encodings[0].SSRC,
					PayloadType: s.codec.PayloadType,
				},
			},
		},
	}); err != nil {
		_ = sender.Stop()
		return errors.Wrap(err, "start sender")
	}

	s.lock.Lock()
	if s.stopped.IsBroken() {
		s.lock.Unlock()
		_ = sender.Stop()
		return ErrSessionStopped
	}
	s.sender = sender
	s.lock.Unlock()

	go s.writeNull(track)
	go s.drainRTCP(sender)
	return nil
}

func (s *MediaSession) startReceiver(src jingle.Source) error {
	receiver, err := s.api.NewRTPReceiver(codecType(s.media.Kind), s.dtls)
	if err != nil {
		return err
	}
	if err = receiver.Receive(webrtc.RTPReceiveParameters{
		Encodings: []webrtc.RTPDecodingParameters{
			{
				RTPCodingParameters: webrtc.RTPCodingParameters{
					SSRC:        webrtc.SSRC(src.SSRC),
					PayloadType: s.codec.PayloadType,
				},
			},
		},
	}); err != nil {
		_ = receiver.Stop()
		return errors.Wrapf(err, "receive ssrc %d", src.SSRC)
	}
	receiver.SetRTPParameters(webrtc.RTPParameters{
		Codecs: []webrtc.RTPCodecParameters{s.codec},
	})

	s.lock.Lock()
	if s.stopped.IsBroken() {
		s.lock.Unlock()
		_ = receiver.Stop()
		return ErrSessionStopped
	}
	s.receivers = append(s.receivers, receiver)
	s.lock.Unlock()

	if s.media.Kind == jingle.MediaKindVideo {
		if _, err = s.dtls.WriteRTCP([]rtcp.Packet{&rtcp.PictureLossIndication{MediaSSRC: src.SSRC}}); err != nil {
			s.logger.Debugw("could not request key frame", "error", err, "ssrc", src.SSRC)
		}
	}

	go s.readRTP(receiver.Track())
	return nil
}

func (s *MediaSession) writeNull(track *webrtc.TrackLocalStaticSample) {
	sample := media.Sample{Data: placeholderSample(s.media.Format), Duration: s.sampleInterval}
	ticker := time.NewTicker(s.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := track.WriteSample(sample); err != nil {
				if !errors.Is(err, io.ErrClosedPipe) {
					s.logger.Debugw("could not write sample", "error", err)
				}
				continue
			}
			s.packetsSent.Inc()
			s.bytesSent.Add(uint64(len(sample.Data)))
		case <-s.stopped.Watch():
			return
		}
	}
}

func (s *MediaSession) drainRTCP(sender *webrtc.RTPSender) {
	for {
		pkts, _, err := sender.ReadRTCP()
		if err != nil {
			return
		}
		s.rtcpReceived.Add(uint64(len(pkts)))
	}
}

func (s *MediaSession) readRTP(track *webrtc.TrackRemote) {
	if track == nil {
		return
	}
	buf := make([]byte, receiveMTU)
	pkt := &rtp.Packet{}
	for {
		n, _, err := track.Read(buf)
		if err != nil {
			if !s.stopped.IsBroken() && !errors.Is(err, io.EOF) {
				s.logger.Debugw("stopped reading remote track", "error", err, "ssrc", track.SSRC())
			}
			return
		}
		if err = pkt.Unmarshal(buf[:n]); err != nil {
			continue
		}
		s.packetsReceived.Inc()
		s.bytesReceived.Add(uint64(len(pkt.Payload)))
	}
}

func (s *MediaSession) Stop() {
	s.lock.Lock()
	if s.stopped.IsBroken() {
		s.lock.Unlock()
		return
	}
	s.stopped.Break()
	sender := s.sender
	receivers := s.receivers
	s.receivers = nil
	s.lock.Unlock()

	if sender != nil {
		_ = sender.Stop()
	}
	for _, r := range receivers {
		_ = r.Stop()
	}
	if err := s.dtls.Stop(); err != nil {
		s.logger.Debugw("error stopping dtls transport", "error", err)
	}
	s.logger.Debugw("media session stopped")
}

func (s *MediaSession) Stats() Stats {
	return Stats{
		PacketsSent:     s.packetsSent.Load(),
		BytesSent:       s.bytesSent.Load(),
		PacketsReceived: s.packetsReceived.Load(),
		BytesReceived:   s.bytesReceived.Load(),
		RTCPReceived:    s.rtcpReceived.Load(),
	}
}
