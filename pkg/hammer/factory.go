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

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/config"
	"github.com/livekit/livekit-hammer/pkg/rtc"
	"github.com/livekit/livekit-hammer/pkg/signalling"
)

// NewUserFactory builds users with their own signaling connection, ICE driver and
// certificate, sharing the WebRTC settings of the fleet.
func NewUserFactory(conf *config.Config, rtcConf *rtc.WebRTCConfig) UserFactory {
	return func(_ context.Context, index int, nick string) (*FakeUser, error) {
		l := logger.GetLogger().WithValues("user", nick, "index", index)

		factory, err := rtcConf.NewTransportFactory(l)
		if err != nil {
			return nil, err
		}

		endpoint := signalling.NewEndpoint(signalling.EndpointParams{
			URL:          conf.Signal.URL,
			Domain:       conf.Signal.Domain,
			LoginTimeout: conf.Signal.LoginTimeout,
			Logger:       l,
		})

		return NewFakeUser(FakeUserParams{
			Nick:     nick,
			Signal:   conf.Signal,
			Fleet:    conf.Fleet,
			Session:  conf.Session,
			Endpoint: endpoint,
			Driver:   rtcConf.NewICEDriver(l),
			Factory:  factory,
			Logger:   l,
		}), nil
	}
}
