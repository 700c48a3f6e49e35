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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"strings"
	"time"

	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

const defaultSampleInterval = 20 * time.Millisecond

type iceTransporter interface {
	ICETransport(name string) (*webrtc.ICETransport, bool)
}

type PionFactoryParams struct {
	SettingEngine  webrtc.SettingEngine
	SampleInterval time.Duration
	Logger         logger.Logger
}

// PionFactory builds sessions secured with one certificate shared by all contents of a user.
type PionFactory struct {
	params       PionFactoryParams
	certificate  webrtc.Certificate
	fingerprints []jingle.Fingerprint
}

func NewPionFactory(params PionFactoryParams) (*PionFactory, error) {
	if params.SampleInterval <= 0 {
		params.SampleInterval = defaultSampleInterval
	}
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	cert, err := webrtc.GenerateCertificate(key)
	if err != nil {
		return nil, err
	}
	fps, err := cert.GetFingerprints()
	if err != nil {
		return nil, err
	}

	f := &PionFactory{
		params:      params,
		certificate: *cert,
	}
	for _, fp := range fps {
		f.fingerprints = append(f.fingerprints, jingle.Fingerprint{
			Hash:  fp.Algorithm,
			Value: strings.ToUpper(fp.Value),
		})
	}
	return f, nil
}

func (f *PionFactory) Fingerprints() []jingle.Fingerprint {
	return append([]jingle.Fingerprint(nil), f.fingerprints...)
}

func (f *PionFactory) NewSession(params Params) (Session, error) {
	transporter, ok := params.Handle.(iceTransporter)
	if !ok {
		return nil, ErrUnsupportedHandle
	}
	iceTransport, ok := transporter.ICETransport(params.Media.Name)
	if !ok {
		return nil, errors.Errorf("no ice transport for content %s", params.Media.Name)
	}
	if params.Logger == nil {
		params.Logger = f.params.Logger
	}
	params.Logger = params.Logger.WithValues("content", params.Media.Name, "kind", params.Media.Kind)

	switch params.Media.Kind {
	case jingle.MediaKindAudio, jingle.MediaKindVideo:
		return newMediaSession(f, params, iceTransport)
	case jingle.MediaKindData:
		return newDataSession(f, params, iceTransport)
	default:
		return nil, errors.Wrapf(ErrUnsupportedContent, "%s", params.Media.Kind)
	}
}

// newDTLSTransport prepares the secure transport of a content on its own API, so the media
// engine only carries the negotiated codec.
func (f *PionFactory) newDTLSTransport(me *webrtc.MediaEngine, iceTransport *webrtc.ICETransport) (*webrtc.API, *webrtc.DTLSTransport, error) {
	api := webrtc.NewAPI(webrtc.WithMediaEngine(me), webrtc.WithSettingEngine(f.params.SettingEngine))
	dtls, err := api.NewDTLSTransport(iceTransport, []webrtc.Certificate{f.certificate})
	if err != nil {
		return nil, nil, err
	}
	return api, dtls, nil
}

// remoteDTLSParameters describes the remote end of the handshake. The local role is the
// inverse of the remote one, matching the setup attribute sent in the accept.
func remoteDTLSParameters(fingerprints []jingle.Fingerprint) webrtc.DTLSParameters {
	params := webrtc.DTLSParameters{
		Role: webrtc.DTLSRoleServer,
	}
	if jingle.LocalSetup(fingerprints) == jingle.DTLSSetupPassive {
		params.Role = webrtc.DTLSRoleClient
	}
	for _, fp := range fingerprints {
		params.Fingerprints = append(params.Fingerprints, webrtc.DTLSFingerprint{
			Algorithm: fp.Hash,
			Value:     fp.Value,
		})
	}
	return params
}
