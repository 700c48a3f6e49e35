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
	"github.com/livekit/livekit-hammer/pkg/jingle"
)

type EnvelopeType string

const (
	EnvelopeLogin    EnvelopeType = "login"
	EnvelopeSession  EnvelopeType = "session"
	EnvelopePresence EnvelopeType = "presence"
	EnvelopeMessage  EnvelopeType = "message"
	EnvelopeIQ       EnvelopeType = "iq"
)

const (
	PresenceAvailable   = ""
	PresenceUnavailable = "unavailable"

	ChatGroup = "groupchat"
)

// Envelope is one frame on the signaling websocket, fields are used depending on Type.
type Envelope struct {
	Type EnvelopeType `json:"type"`
	ID   string       `json:"id,omitempty"`
	From string       `json:"from,omitempty"`
	To   string       `json:"to,omitempty"`

	// login and session
	Domain  string `json:"domain,omitempty"`
	Address string `json:"address,omitempty"`

	// presence
	Room     string `json:"room,omitempty"`
	Nick     string `json:"nick,omitempty"`
	Presence string `json:"presence,omitempty"`

	// message
	ChatType string `json:"chat_type,omitempty"`
	Body     string `json:"body,omitempty"`

	IQ *jingle.Message `json:"iq,omitempty"`
}

// Chat is a room message received from another occupant.
type Chat struct {
	Room string
	From string
	Body string
}
