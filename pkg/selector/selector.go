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

package selector

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

type DirectionPolicy string

const (
	// always send and receive, regardless of what was offered
	DirectionForceBoth DirectionPolicy = "both"
	// answer the offered senders attribute as is
	DirectionMirror DirectionPolicy = "mirror"
)

type Format struct {
	Name      string `yaml:"name"`
	ClockRate uint32 `yaml:"clock_rate,omitempty"`
}

func (f Format) matches(pt jingle.PayloadType) bool {
	if !strings.EqualFold(f.Name, pt.Name) {
		return false
	}
	return f.ClockRate == 0 || f.ClockRate == pt.ClockRate
}

// FormatPolicy lists the locally supported formats per kind. A kind without entries
// accepts whatever is offered.
type FormatPolicy map[jingle.MediaKind][]Format

func (p FormatPolicy) choose(kind jingle.MediaKind, offered []jingle.PayloadType) (jingle.PayloadType, bool) {
	supported := p[kind]
	for _, pt := range offered {
		if len(supported) == 0 {
			return pt, true
		}
		for _, f := range supported {
			if f.matches(pt) {
				return pt, true
			}
		}
	}
	return jingle.PayloadType{}, false
}

type Policy struct {
	Formats   FormatPolicy
	Direction DirectionPolicy
	// kinds to accept, empty accepts every known kind
	Kinds []jingle.MediaKind
}

func DefaultPolicy() Policy {
	return Policy{Direction: DirectionForceBoth}
}

func (p Policy) acceptsKind(kind jingle.MediaKind) bool {
	if !kind.IsKnown() {
		return false
	}
	if len(p.Kinds) == 0 {
		return true
	}
	for _, k := range p.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p Policy) direction(offered jingle.Senders) jingle.Senders {
	if p.Direction == DirectionMirror {
		return offered
	}
	return jingle.SendersBoth
}

type SelectedMedia struct {
	Name      string
	Kind      jingle.MediaKind
	Direction jingle.Senders
	// zero value for data contents
	Format             jingle.PayloadType
	SCTPMap            *jingle.SCTPMap
	RemoteSources      []jingle.Source
	RemoteFingerprints []jingle.Fingerprint
}

// Selection maps content names to what was selected for them.
type Selection map[string]SelectedMedia

// Names returns the selected content names, sorted.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AcceptedContentList mirrors the accepted subset of an offer, in offer order.
type AcceptedContentList []jingle.Content

func (l AcceptedContentList) Names() []string {
	names := make([]string, 0, len(l))
	for _, c := range l {
		names = append(names, c.Name)
	}
	return names
}

// Select decides which contents of the offer are accepted and how.
func Select(offer *jingle.SessionOffer, policy Policy) (AcceptedContentList, Selection, error) {
	if offer == nil {
		return nil, nil, errors.Wrap(jingle.ErrMalformedOffer, "no offer")
	}

	var accepted AcceptedContentList
	selection := make(Selection)
	for _, cd := range offer.Contents() {
		if !policy.acceptsKind(cd.Kind()) {
			continue
		}
		if !cd.HasFormats() {
			return nil, nil, errors.Wrapf(jingle.ErrMalformedOffer, "content %q offers no format", cd.Name())
		}
		if _, ok := selection[cd.Name()]; ok {
			return nil, nil, errors.Wrapf(jingle.ErrMalformedOffer, "duplicate content name %q", cd.Name())
		}

		sm := SelectedMedia{
			Name:               cd.Name(),
			Kind:               cd.Kind(),
			Direction:          policy.direction(cd.Senders()),
			RemoteSources:      cd.Sources(),
			RemoteFingerprints: cd.Transport().Fingerprints,
		}
		content := jingle.Content{
			Name:    cd.Name(),
			Creator: cd.Content().Creator,
			Senders: sm.Direction,
		}

		if cd.Kind() == jingle.MediaKindData {
			sm.SCTPMap = cd.SCTPMap()
			content.Description = &jingle.Description{Media: cd.Content().Description.Media}
		} else {
			format, ok := policy.Formats.choose(cd.Kind(), cd.PayloadTypes())
			if !ok {
				continue
			}
			sm.Format = format
			content.Description = &jingle.Description{
				Media:        string(cd.Kind()),
				PayloadTypes: []jingle.PayloadType{format},
				RTCPMux:      true,
			}
		}

		selection[sm.Name] = sm
		accepted = append(accepted, content)
	}

	if len(accepted) == 0 {
		return nil, nil, errors.Wrap(jingle.ErrMalformedOffer, "no acceptable content")
	}
	return accepted, selection, nil
}

// WithLocalTransports returns a copy of the list carrying the local transport of each
// content. Contents without a local transport are returned unchanged.
func WithLocalTransports(list AcceptedContentList, local map[string]jingle.Transport, fingerprints []jingle.Fingerprint, sel Selection) AcceptedContentList {
	out := make(AcceptedContentList, 0, len(list))
	for _, c := range list {
		c = c.Clone()
		if t, ok := local[c.Name]; ok {
			tr := t.Clone()
			tr.RTCPMux = true
			sm := sel[c.Name]
			setup := jingle.LocalSetup(sm.RemoteFingerprints)
			tr.Fingerprints = make([]jingle.Fingerprint, 0, len(fingerprints))
			for _, fp := range fingerprints {
				fp.Setup = setup
				tr.Fingerprints = append(tr.Fingerprints, fp)
			}
			if sm.SCTPMap != nil {
				m := *sm.SCTPMap
				tr.SCTPMap = &m
			}
			c.Transport = tr
		}
		out = append(out, c)
	}
	return out
}
