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

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindMalformedOffer
	ErrorKindResourceExhausted
	ErrorKindConnectivityFailure
	ErrorKindConnectivityTimeout
	ErrorKindTransportStartFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "None"
	case ErrorKindMalformedOffer:
		return "MalformedOffer"
	case ErrorKindResourceExhausted:
		return "ResourceExhausted"
	case ErrorKindConnectivityFailure:
		return "ConnectivityFailure"
	case ErrorKindConnectivityTimeout:
		return "ConnectivityTimeout"
	case ErrorKindTransportStartFailure:
		return "TransportStartFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Error is the terminal error of a negotiation, as reported to the driving process.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func newError(kind ErrorKind, err error) *Error {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return &Error{Kind: kind, Reason: reason}
}

// KindOf returns the kind of a session error, ErrorKindNone for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return ErrorKindNone
}
