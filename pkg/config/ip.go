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

package config

import (
	"context"
	"net"
	"time"

	"github.com/pion/stun"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"
)

const (
	stunLookupAttempts = 3
	stunLookupTimeout  = 5 * time.Second
)

// NATIPs returns the addresses to advertise in place of gathered host candidates.
// Explicit node ips win, otherwise the external address is looked up over STUN when
// enabled. No address means candidates are advertised as gathered.
func (conf *RTCConfig) NATIPs(ctx context.Context) ([]string, error) {
	if len(conf.NodeIPs) > 0 {
		return conf.NodeIPs, nil
	}
	if !conf.UseExternalIP {
		return nil, nil
	}

	stunServers := conf.STUNServers
	if len(stunServers) == 0 {
		stunServers = DefaultStunServers
	}
	var err error
	for i := 0; i < stunLookupAttempts; i++ {
		var ip string
		ip, err = GetExternalIP(ctx, stunServers)
		if err == nil {
			return []string{ip}, nil
		}
		logger.Debugw("external ip lookup failed", "error", err, "attempt", i+1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
	return nil, errors.Errorf("could not resolve external IP: %v", err)
}

// GetExternalIP returns the server reflexive IPv4 address seen by the first STUN server.
func GetExternalIP(ctx context.Context, stunServers []string) (string, error) {
	if len(stunServers) == 0 {
		return "", errors.New("STUN servers are required but not defined")
	}
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "udp4", stunServers[0])
	if err != nil {
		return "", err
	}
	c, err := stun.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return "", err
	}
	defer c.Close()

	message, err := stun.Build(stun.TransactionID, stun.BindingRequest)
	if err != nil {
		return "", err
	}

	// sufficiently large buffer to not block it
	ipChan := make(chan string, 20)
	errChan := make(chan error, 20)
	err = c.Start(message, func(res stun.Event) {
		if res.Error != nil {
			errChan <- res.Error
			return
		}

		var xorAddr stun.XORMappedAddress
		if err := xorAddr.GetFrom(res.Message); err != nil {
			errChan <- err
			return
		}
		if ip := xorAddr.IP.To4(); ip != nil {
			ipChan <- ip.String()
		}
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, stunLookupTimeout)
	defer cancel()
	select {
	case ip := <-ipChan:
		return ip, nil
	case err := <-errChan:
		return "", errors.Wrap(err, "could not determine public IP")
	case <-ctx.Done():
		return "", errors.New("could not determine public IP")
	}
}
