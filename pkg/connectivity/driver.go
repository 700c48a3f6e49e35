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
	"context"

	"github.com/pkg/errors"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var (
	ErrResourceExhausted = errors.New("could not allocate local candidates")
	ErrUnknownContent    = errors.New("unknown content")
	ErrHandleClosed      = errors.New("connectivity handle closed")
	ErrLateCandidate     = errors.New("remote candidate rejected after checks started")
)

type Status int

const (
	StatusGathering Status = iota
	StatusChecking
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusGathering:
		return "GATHERING"
	case StatusChecking:
		return "CHECKING"
	case StatusSucceeded:
		return "TERMINATED(success)"
	case StatusFailed:
		return "TERMINATED(failure)"
	default:
		return "UNKNOWN"
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Handle is the connectivity state of one negotiation, covering all of its contents.
//
//counterfeiter:generate . Handle
type Handle interface {
	ID() string
}

// Driver establishes connectivity for the contents of a negotiation. Checks are started
// without blocking and observed through Status.
//
//counterfeiter:generate . Driver
type Driver interface {
	// Open gathers local candidates for every content name.
	Open(ctx context.Context, names []string) (Handle, error)
	AddRemoteCandidates(h Handle, transports map[string]jingle.Transport) error
	LocalCandidates(h Handle) (map[string]jingle.Transport, error)
	Start(h Handle) error
	Status(h Handle) Status
	Close(h Handle) error
}
