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

package session

type State int32

const (
	StateIdle State = iota
	StateOfferReceived
	StateNegotiating
	StateAwaitingConnectivity
	StateActive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateOfferReceived:
		return "OFFER_RECEIVED"
	case StateNegotiating:
		return "NEGOTIATING"
	case StateAwaitingConnectivity:
		return "AWAITING_CONNECTIVITY"
	case StateActive:
		return "ACTIVE"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Negotiating reports whether an offer is being handled, so a new initiate is a duplicate.
func (s State) Negotiating() bool {
	return s != StateIdle && s != StateTerminated
}

func (s State) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
