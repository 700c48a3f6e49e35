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

	"github.com/pkg/errors"
)

var (
	ErrMalformedOffer = errors.New("malformed offer")
)

// ContentDescriptor is a read-only view of one content of an offer.
type ContentDescriptor struct {
	content Content
	kind    MediaKind
}

func (c ContentDescriptor) Name() string {
	return c.content.Name
}

func (c ContentDescriptor) Kind() MediaKind {
	return c.kind
}

func (c ContentDescriptor) Senders() Senders {
	if c.content.Senders == "" {
		return SendersBoth
	}
	return c.content.Senders
}

func (c ContentDescriptor) PayloadTypes() []PayloadType {
	if c.content.Description == nil {
		return nil
	}
	return c.content.Description.Clone().PayloadTypes
}

func (c ContentDescriptor) Sources() []Source {
	if c.content.Description == nil {
		return nil
	}
	return append([]Source(nil), c.content.Description.Sources...)
}

func (c ContentDescriptor) SCTPMap() *SCTPMap {
	if c.content.Transport == nil || c.content.Transport.SCTPMap == nil {
		return nil
	}
	m := *c.content.Transport.SCTPMap
	return &m
}

// HasFormats reports whether the content offers anything to choose from: payload
// types for audio and video, an SCTP association for data.
func (c ContentDescriptor) HasFormats() bool {
	if c.kind == MediaKindData {
		return c.SCTPMap() != nil
	}
	return c.content.Description != nil && len(c.content.Description.PayloadTypes) > 0
}

// Formats lists the offered formats in their SDP rendering.
func (c ContentDescriptor) Formats() []string {
	if c.kind == MediaKindData {
		if m := c.SCTPMap(); m != nil {
			return []string{m.String()}
		}
		return nil
	}
	var formats []string
	if c.content.Description != nil {
		for _, pt := range c.content.Description.PayloadTypes {
			formats = append(formats, pt.String())
		}
	}
	return formats
}

func (c ContentDescriptor) Transport() Transport {
	if c.content.Transport == nil {
		return Transport{}
	}
	return *c.content.Transport.Clone()
}

func (c ContentDescriptor) Content() Content {
	return c.content.Clone()
}

// SessionOffer is an immutable offer built from a session-initiate.
type SessionOffer struct {
	sid       string
	initiator string
	responder string
	contents  []ContentDescriptor
}

func ParseOffer(j *Jingle) (*SessionOffer, error) {
	if j == nil {
		return nil, errors.Wrap(ErrMalformedOffer, "missing jingle payload")
	}
	if j.Action != ActionSessionInitiate {
		return nil, errors.Wrapf(ErrMalformedOffer, "unexpected action %q", j.Action)
	}
	if j.SID == "" {
		return nil, errors.Wrap(ErrMalformedOffer, "missing sid")
	}
	if len(j.Contents) == 0 {
		return nil, errors.Wrap(ErrMalformedOffer, "no content")
	}

	o := &SessionOffer{
		sid:       j.SID,
		initiator: j.Initiator,
		responder: j.Responder,
		contents:  make([]ContentDescriptor, 0, len(j.Contents)),
	}
	seen := make(map[string]struct{}, len(j.Contents))
	for _, c := range j.Contents {
		if c.Name == "" {
			return nil, errors.Wrap(ErrMalformedOffer, "content without name")
		}
		if _, ok := seen[c.Name]; ok {
			return nil, errors.Wrapf(ErrMalformedOffer, "duplicate content name %q", c.Name)
		}
		seen[c.Name] = struct{}{}

		var kind MediaKind
		if c.Description != nil {
			kind = ParseMediaKind(c.Description.Media)
		}
		o.contents = append(o.contents, ContentDescriptor{
			content: c.Clone(),
			kind:    kind,
		})
	}
	return o, nil
}

func (o *SessionOffer) SID() string {
	return o.sid
}

func (o *SessionOffer) Initiator() string {
	return o.initiator
}

func (o *SessionOffer) Responder() string {
	return o.responder
}

func (o *SessionOffer) Contents() []ContentDescriptor {
	return append([]ContentDescriptor(nil), o.contents...)
}

func (o *SessionOffer) Content(name string) (ContentDescriptor, bool) {
	for _, c := range o.contents {
		if c.Name() == name {
			return c, true
		}
	}
	return ContentDescriptor{}, false
}

// RemoteTransports returns the offered transport of every given content.
func (o *SessionOffer) RemoteTransports(names []string) map[string]Transport {
	transports := make(map[string]Transport, len(names))
	for _, name := range names {
		if c, ok := o.Content(name); ok {
			transports[name] = c.Transport()
		}
	}
	return transports
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
