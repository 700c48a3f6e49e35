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

package rtc

import (
	"context"
	"fmt"

	"github.com/pion/webrtc/v3"
	"github.com/thoas/go-funk"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/config"
	"github.com/livekit/livekit-hammer/pkg/connectivity"
	serverlogger "github.com/livekit/livekit-hammer/pkg/logger"
	"github.com/livekit/livekit-hammer/pkg/transport"
)

// WebRTCConfig holds the pion settings shared by every user of the fleet.
type WebRTCConfig struct {
	SettingEngine webrtc.SettingEngine
	ICEServers    []webrtc.ICEServer
	conf          config.RTCConfig
}

// NewWebRTCConfig sends pion's own logs through the default logger at pionLevel.
func NewWebRTCConfig(ctx context.Context, conf *config.RTCConfig, pionLevel string) (*WebRTCConfig, error) {
	s := webrtc.SettingEngine{
		LoggerFactory: serverlogger.NewLoggerFactory(logger.GetLogger(), pionLevel),
	}

	if conf.PortRangeStart != 0 && conf.PortRangeEnd != 0 {
		if err := s.SetEphemeralUDPPortRange(conf.PortRangeStart, conf.PortRangeEnd); err != nil {
			return nil, err
		}
	}

	natIPs, err := conf.NATIPs(ctx)
	if err != nil {
		return nil, err
	}
	if len(natIPs) > 0 {
		s.SetNAT1To1IPs(natIPs, webrtc.ICECandidateTypeHost)
	}

	if len(conf.Interfaces) > 0 {
		interfaces := conf.Interfaces
		s.SetInterfaceFilter(func(name string) bool {
			return funk.ContainsString(interfaces, name)
		})
	}
	if conf.DTLSRetransmission > 0 {
		s.SetDTLSRetransmissionInterval(conf.DTLSRetransmission)
	}

	return &WebRTCConfig{
		SettingEngine: s,
		ICEServers:    iceServers(conf),
		conf:          *conf,
	}, nil
}

func iceServers(conf *config.RTCConfig) []webrtc.ICEServer {
	var servers []webrtc.ICEServer
	if len(conf.STUNServers) > 0 {
		urls := make([]string, 0, len(conf.STUNServers))
		for _, stunServer := range conf.STUNServers {
			urls = append(urls, fmt.Sprintf("stun:%s", stunServer))
		}
		servers = append(servers, webrtc.ICEServer{URLs: urls})
	}
	for _, t := range conf.TURNServers {
		scheme := "turn"
		network := "udp"
		switch t.Protocol {
		case "tcp":
			network = "tcp"
		case "tls":
			scheme = "turns"
			network = "tcp"
		}
		servers = append(servers, webrtc.ICEServer{
			URLs:           []string{fmt.Sprintf("%s:%s:%d?transport=%s", scheme, t.Host, t.Port, network)},
			Username:       t.Username,
			Credential:     t.Credential,
			CredentialType: webrtc.ICECredentialTypePassword,
		})
	}
	return servers
}

func (c *WebRTCConfig) iceRole() webrtc.ICERole {
	if c.conf.ICERole == "controlling" {
		return webrtc.ICERoleControlling
	}
	return webrtc.ICERoleControlled
}

func (c *WebRTCConfig) NewICEDriver(l logger.Logger) *connectivity.ICEDriver {
	return connectivity.NewICEDriver(connectivity.ICEDriverParams{
		API:           webrtc.NewAPI(webrtc.WithSettingEngine(c.SettingEngine)),
		ICEServers:    c.ICEServers,
		GatherTimeout: c.conf.GatherTimeout,
		Role:          c.iceRole(),
		Logger:        l,
	})
}

func (c *WebRTCConfig) NewTransportFactory(l logger.Logger) (*transport.PionFactory, error) {
	return transport.NewPionFactory(transport.PionFactoryParams{
		SettingEngine:  c.SettingEngine,
		SampleInterval: c.conf.SampleInterval,
		Logger:         l,
	})
}
