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

package connectivity

import (
	"fmt"
	"strings"

	"github.com/pion/ice/v2"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

// candidateLine renders the candidate in its SDP attribute form, without the "candidate:" prefix.
func candidateLine(c jingle.Candidate) string {
	var sb strings.Builder
	sb.WriteString(c.String())
	if c.RelAddr != "" {
		fmt.Fprintf(&sb, " raddr %s rport %d", c.RelAddr, c.RelPort)
	}
	if c.TCPType != "" {
		fmt.Fprintf(&sb, " tcptype %s", c.TCPType)
	}
	return sb.String()
}

// ToICECandidate validates a signaled candidate and converts it for the ICE transport.
func ToICECandidate(c jingle.Candidate) (webrtc.ICECandidate, error) {
	parsed, err := ice.UnmarshalCandidate(candidateLine(c))
	if err != nil {
		return webrtc.ICECandidate{}, err
	}

	typ, err := webrtc.NewICECandidateType(parsed.Type().String())
	if err != nil {
		return webrtc.ICECandidate{}, err
	}
	protocol, err := webrtc.NewICEProtocol(parsed.NetworkType().NetworkShort())
	if err != nil {
		return webrtc.ICECandidate{}, err
	}

	ic := webrtc.ICECandidate{
		Foundation: parsed.Foundation(),
		Priority:   parsed.Priority(),
		Address:    parsed.Address(),
		Protocol:   protocol,
		Port:       uint16(parsed.Port()),
		Typ:        typ,
		Component:  parsed.Component(),
	}
	if ra := parsed.RelatedAddress(); ra != nil {
		ic.RelatedAddress = ra.Address
		ic.RelatedPort = uint16(ra.Port)
	}
	if parsed.TCPType() != ice.TCPTypeUnspecified {
		ic.TCPType = parsed.TCPType().String()
	}
	return ic, nil
}

func FromICECandidate(name string, idx int, c webrtc.ICECandidate) jingle.Candidate {
	return jingle.Candidate{
		ID:         fmt.Sprintf("%s-%d", name, idx),
		Foundation: c.Foundation,
		Component:  c.Component,
		Protocol:   c.Protocol.String(),
		Priority:   c.Priority,
		IP:         c.Address,
		Port:       c.Port,
		Type:       c.Typ.String(),
		RelAddr:    c.RelatedAddress,
		RelPort:    c.RelatedPort,
		TCPType:    c.TCPType,
	}
}
