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

package jingle

import (
	"fmt"
	"strings"
)

type Action string

const (
	ActionSessionInitiate  Action = "session-initiate"
	ActionSessionAccept    Action = "session-accept"
	ActionSessionTerminate Action = "session-terminate"
	ActionTransportInfo    Action = "transport-info"
	ActionSourceAdd        Action = "source-add"
	ActionSourceRemove     Action = "source-remove"
)

type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
	MediaKindData  MediaKind = "data"
)

func (k MediaKind) IsKnown() bool {
	switch k {
	case MediaKindAudio, MediaKindVideo, MediaKindData:
		return true
	default:
		return false
	}
}

// ParseMediaKind maps the media attribute of a description, "application" is the
// name used for data channels on the wire.
func ParseMediaKind(media string) MediaKind {
	switch strings.ToLower(media) {
	case "audio":
		return MediaKindAudio
	case "video":
		return MediaKindVideo
	case "data", "application":
		return MediaKindData
	default:
		return MediaKind(media)
	}
}

type Senders string

const (
	SendersBoth      Senders = "both"
	SendersInitiator Senders = "initiator"
	SendersResponder Senders = "responder"
	SendersNone      Senders = "none"
)

// Sends reports whether the responder side transmits media.
func (s Senders) Sends() bool {
	return s == SendersBoth || s == SendersResponder
}

// Receives reports whether the responder side expects media from the initiator.
func (s Senders) Receives() bool {
	return s == SendersBoth || s == SendersInitiator
}

type DTLSSetup string

const (
	DTLSSetupActive  DTLSSetup = "active"
	DTLSSetupPassive DTLSSetup = "passive"
	DTLSSetupActPass DTLSSetup = "actpass"
)

// LocalSetup answers the setup attribute of the remote fingerprints, an offer
// without preference makes the local side the active (DTLS client) one.
func LocalSetup(remote []Fingerprint) DTLSSetup {
	for _, fp := range remote {
		if fp.Setup == DTLSSetupActive {
			return DTLSSetupPassive
		}
	}
	return DTLSSetupActive
}

type RTCPFeedback struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
}

type PayloadType struct {
	ID         uint8             `json:"id"`
	Name       string            `json:"name"`
	ClockRate  uint32            `json:"clockrate,omitempty"`
	Channels   uint16            `json:"channels,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Feedback   []RTCPFeedback    `json:"rtcp-fb,omitempty"`
}

// FmtpLine renders the parameters as an SDP fmtp line with sorted keys.
func (p PayloadType) FmtpLine() string {
	if len(p.Parameters) == 0 {
		return ""
	}
	keys := sortedKeys(p.Parameters)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, p.Parameters[k]))
	}
	return strings.Join(parts, ";")
}

func (p PayloadType) String() string {
	if p.Channels > 1 {
		return fmt.Sprintf("%d %s/%d/%d", p.ID, p.Name, p.ClockRate, p.Channels)
	}
	return fmt.Sprintf("%d %s/%d", p.ID, p.Name, p.ClockRate)
}

type SCTPMap struct {
	Number   uint16 `json:"number"`
	Protocol string `json:"protocol"`
	Streams  uint16 `json:"streams,omitempty"`
}

func (m SCTPMap) String() string {
	return fmt.Sprintf("%d %s %d", m.Number, m.Protocol, m.Streams)
}

type Candidate struct {
	ID         string `json:"id,omitempty"`
	Foundation string `json:"foundation"`
	Component  uint16 `json:"component"`
	Protocol   string `json:"protocol"`
	Priority   uint32 `json:"priority"`
	IP         string `json:"ip"`
	Port       uint16 `json:"port"`
	Type       string `json:"type"`
	RelAddr    string `json:"rel-addr,omitempty"`
	RelPort    uint16 `json:"rel-port,omitempty"`
	TCPType    string `json:"tcptype,omitempty"`
	Generation uint32 `json:"generation"`
	Network    uint32 `json:"network,omitempty"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s %d %s %d %s %d typ %s", c.Foundation, c.Component, c.Protocol, c.Priority, c.IP, c.Port, c.Type)
}

type Fingerprint struct {
	Hash  string    `json:"hash"`
	Setup DTLSSetup `json:"setup,omitempty"`
	Value string    `json:"value"`
}

type Transport struct {
	Ufrag        string        `json:"ufrag,omitempty"`
	Pwd          string        `json:"pwd,omitempty"`
	Candidates   []Candidate   `json:"candidates,omitempty"`
	Fingerprints []Fingerprint `json:"fingerprints,omitempty"`
	RTCPMux      bool          `json:"rtcp-mux,omitempty"`
	SCTPMap      *SCTPMap      `json:"sctpmap,omitempty"`
}

func (t *Transport) Clone() *Transport {
	if t == nil {
		return nil
	}
	c := *t
	c.Candidates = append([]Candidate(nil), t.Candidates...)
	c.Fingerprints = append([]Fingerprint(nil), t.Fingerprints...)
	if t.SCTPMap != nil {
		m := *t.SCTPMap
		c.SCTPMap = &m
	}
	return &c
}

type Source struct {
	SSRC uint32 `json:"ssrc"`
	Name string `json:"name,omitempty"`
	MSID string `json:"msid,omitempty"`
}

type Description struct {
	Media        string        `json:"media"`
	PayloadTypes []PayloadType `json:"payload-types,omitempty"`
	Sources      []Source      `json:"sources,omitempty"`
	RTCPMux      bool          `json:"rtcp-mux,omitempty"`
}

func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}
	c := *d
	c.PayloadTypes = make([]PayloadType, 0, len(d.PayloadTypes))
	for _, pt := range d.PayloadTypes {
		c.PayloadTypes = append(c.PayloadTypes, pt.clone())
	}
	c.Sources = append([]Source(nil), d.Sources...)
	return &c
}

func (p PayloadType) clone() PayloadType {
	c := p
	if p.Parameters != nil {
		c.Parameters = make(map[string]string, len(p.Parameters))
		for k, v := range p.Parameters {
			c.Parameters[k] = v
		}
	}
	c.Feedback = append([]RTCPFeedback(nil), p.Feedback...)
	return c
}

type Content struct {
	Name        string       `json:"name"`
	Creator     string       `json:"creator,omitempty"`
	Senders     Senders      `json:"senders,omitempty"`
	Description *Description `json:"description,omitempty"`
	Transport   *Transport   `json:"transport,omitempty"`
}

func (c Content) Clone() Content {
	c.Description = c.Description.Clone()
	c.Transport = c.Transport.Clone()
	return c
}

type Reason struct {
	Condition string `json:"condition"`
	Text      string `json:"text,omitempty"`
}

const (
	ReasonSuccess           = "success"
	ReasonTimeout           = "timeout"
	ReasonConnectivityError = "connectivity-error"
	ReasonFailedTransport   = "failed-transport"
	ReasonGone              = "gone"
)

type Jingle struct {
	Action    Action    `json:"action"`
	SID       string    `json:"sid"`
	Initiator string    `json:"initiator,omitempty"`
	Responder string    `json:"responder,omitempty"`
	Contents  []Content `json:"contents,omitempty"`
	Reason    *Reason   `json:"reason,omitempty"`
}
