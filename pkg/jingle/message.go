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
	"sort"

	"github.com/livekit/protocol/utils"
)

const messageIDPrefix = "IQ_"

type MessageType string

const (
	MessageTypeSet    MessageType = "set"
	MessageTypeResult MessageType = "result"
	MessageTypeError  MessageType = "error"
)

// Message is a session negotiation message independent of the signaling wire format.
type Message struct {
	ID     string      `json:"id"`
	From   string      `json:"from,omitempty"`
	To     string      `json:"to,omitempty"`
	Type   MessageType `json:"type"`
	Jingle *Jingle     `json:"jingle,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (m *Message) SID() string {
	if m == nil || m.Jingle == nil {
		return ""
	}
	return m.Jingle.SID
}

func (m *Message) Action() Action {
	if m == nil || m.Jingle == nil {
		return ""
	}
	return m.Jingle.Action
}

// IsRequest reports whether the message expects an acknowledgement.
func (m *Message) IsRequest() bool {
	return m != nil && m.Type == MessageTypeSet
}

func (m *Message) IsAck() bool {
	return m != nil && m.Type == MessageTypeResult
}

func NewRequest(from, to string, j *Jingle) *Message {
	return &Message{
		ID:     utils.NewGuid(messageIDPrefix),
		From:   from,
		To:     to,
		Type:   MessageTypeSet,
		Jingle: j,
	}
}

// NewAck builds the empty result correlated to the given request.
func NewAck(req *Message) *Message {
	return &Message{
		ID:   req.ID,
		From: req.To,
		To:   req.From,
		Type: MessageTypeResult,
	}
}

func NewAccept(offer *SessionOffer, contents []Content) *Jingle {
	cs := make([]Content, 0, len(contents))
	for _, c := range contents {
		cs = append(cs, c.Clone())
	}
	return &Jingle{
		Action:    ActionSessionAccept,
		SID:       offer.SID(),
		Initiator: offer.Initiator(),
		Responder: offer.Responder(),
		Contents:  cs,
	}
}

// NewTransportInfo carries additional candidates for already negotiated contents.
func NewTransportInfo(sid string, transports map[string]Transport) *Jingle {
	j := &Jingle{
		Action: ActionTransportInfo,
		SID:    sid,
	}
	for _, name := range sortedTransportNames(transports) {
		t := transports[name]
		j.Contents = append(j.Contents, Content{
			Name:      name,
			Transport: t.Clone(),
		})
	}
	return j
}

func sortedTransportNames(m map[string]Transport) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewTerminate(sid string, condition string, text string) *Jingle {
	return &Jingle{
		Action: ActionSessionTerminate,
		SID:    sid,
		Reason: &Reason{
			Condition: condition,
			Text:      text,
		},
	}
}
