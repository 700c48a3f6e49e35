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

	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/connectivity"
	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var (
	ErrAlreadyStarted     = errors.New("transport session already started")
	ErrSessionStopped     = errors.New("transport session stopped")
	ErrDuplicateSession   = errors.New("transport session already registered")
	ErrUnsupportedHandle  = errors.New("connectivity handle does not expose ice transports")
	ErrUnsupportedContent = errors.New("unsupported content kind")
)

type Stats struct {
	PacketsSent      uint64
	BytesSent        uint64
	PacketsReceived  uint64
	BytesReceived    uint64
	RTCPReceived     uint64
	MessagesReceived uint64
}

// Session is the media exchange bound to one negotiated content.
//
//counterfeiter:generate . Session
type Session interface {
	Name() string
	Kind() jingle.MediaKind
	// Start blocks until the secure transport is established or ctx is done.
	Start(ctx context.Context) error
	Stop()
	Stats() Stats
}

type Params struct {
	Media  selector.SelectedMedia
	Handle connectivity.Handle
	Logger logger.Logger
}

//counterfeiter:generate . Factory
type Factory interface {
	NewSession(params Params) (Session, error)
	// Fingerprints of the local certificate, advertised in the accept.
	Fingerprints() []jingle.Fingerprint
}
