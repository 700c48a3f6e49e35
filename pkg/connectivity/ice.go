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
	"sort"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

const (
	handlePrefix         = "ICE_"
	defaultGatherTimeout = 5 * time.Second
)

var errUnknownHandle = errors.New("handle was not opened by this driver")

type ICEDriverParams struct {
	API           *webrtc.API
	ICEServers    []webrtc.ICEServer
	GatherTimeout time.Duration
	Role          webrtc.ICERole
	Logger        logger.Logger
}

// ICEDriver runs one ICE agent per content on top of the ORTC transports.
type ICEDriver struct {
	params ICEDriverParams
}

func NewICEDriver(params ICEDriverParams) *ICEDriver {
	if params.API == nil {
		params.API = webrtc.NewAPI()
	}
	if params.GatherTimeout <= 0 {
		params.GatherTimeout = defaultGatherTimeout
	}
	if params.Role != webrtc.ICERoleControlling {
		params.Role = webrtc.ICERoleControlled
	}
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	return &ICEDriver{params: params}
}

type iceContent struct {
	name      string
	gatherer  *webrtc.ICEGatherer
	transport *webrtc.ICETransport
	remote    webrtc.ICEParameters
	status    atomic.Int32
}

func (c *iceContent) setStatus(from, to Status) bool {
	return c.status.CompareAndSwap(int32(from), int32(to))
}

type ICEHandle struct {
	id     string
	role   webrtc.ICERole
	logger logger.Logger

	lock     sync.RWMutex
	names    []string
	contents map[string]*iceContent
	started  bool
	closed   core.Fuse
}

func (h *ICEHandle) ID() string {
	return h.id
}

func (h *ICEHandle) Role() webrtc.ICERole {
	return h.role
}

// ICETransport returns the transport of a content, for the DTLS layer to run on.
func (h *ICEHandle) ICETransport(name string) (*webrtc.ICETransport, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	c, ok := h.contents[name]
	if !ok {
		return nil, false
	}
	return c.transport, true
}

func (d *ICEDriver) Open(ctx context.Context, names []string) (Handle, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(ErrUnknownContent, "no content to open")
	}

	id := utils.NewGuid(handlePrefix)
	h := &ICEHandle{
		id:       id,
		role:     d.params.Role,
		logger:   d.params.Logger.WithValues("handle", id),
		contents: make(map[string]*iceContent, len(names)),
	}
	for _, name := range names {
		if _, ok := h.contents[name]; ok {
			_ = h.close()
			return nil, errors.Wrapf(ErrUnknownContent, "content %s opened twice", name)
		}
		c, err := d.gather(ctx, name)
		if err != nil {
			_ = h.close()
			return nil, err
		}
		h.contents[name] = c
		h.names = append(h.names, name)
	}
	h.logger.Debugw("gathered local candidates", "contents", h.names)
	return h, nil
}

func (d *ICEDriver) gather(ctx context.Context, name string) (*iceContent, error) {
	gatherer, err := d.params.API.NewICEGatherer(webrtc.ICEGatherOptions{
		ICEServers: d.params.ICEServers,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrResourceExhausted, "content %s: %v", name, err)
	}

	var done core.Fuse
	gatherer.OnLocalCandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			done.Break()
		}
	})
	if err = gatherer.Gather(); err != nil {
		_ = gatherer.Close()
		return nil, errors.Wrapf(ErrResourceExhausted, "content %s: %v", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.params.GatherTimeout)
	defer cancel()
	select {
	case <-done.Watch():
	case <-ctx.Done():
		_ = gatherer.Close()
		return nil, errors.Wrapf(ErrResourceExhausted, "content %s: gathering incomplete: %v", name, ctx.Err())
	}

	candidates, err := gatherer.GetLocalCandidates()
	if err != nil || len(candidates) == 0 {
		_ = gatherer.Close()
		return nil, errors.Wrapf(ErrResourceExhausted, "content %s: no local candidate", name)
	}

	c := &iceContent{
		name:      name,
		gatherer:  gatherer,
		transport: d.params.API.NewICETransport(gatherer),
	}
	c.status.Store(int32(StatusGathering))
	return c, nil
}

func (d *ICEDriver) handle(h Handle) (*ICEHandle, error) {
	ih, ok := h.(*ICEHandle)
	if !ok || ih == nil {
		return nil, errUnknownHandle
	}
	if ih.closed.IsBroken() {
		return nil, ErrHandleClosed
	}
	return ih, nil
}

// AddRemoteCandidates feeds signaled transports to their contents. Once checks have
// started, candidates the agent rejects are skipped and reported with ErrLateCandidate.
func (d *ICEDriver) AddRemoteCandidates(h Handle, transports map[string]jingle.Transport) error {
	ih, err := d.handle(h)
	if err != nil {
		return err
	}

	ih.lock.Lock()
	defer ih.lock.Unlock()

	names := make([]string, 0, len(transports))
	for name := range transports {
		if _, ok := ih.contents[name]; !ok {
			return errors.Wrapf(ErrUnknownContent, "content %s", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var late error
	for _, name := range names {
		c := ih.contents[name]
		t := transports[name]
		if !ih.started && t.Ufrag != "" {
			c.remote = webrtc.ICEParameters{
				UsernameFragment: t.Ufrag,
				Password:         t.Pwd,
			}
		}

		for _, candidate := range t.Candidates {
			ic, err := ToICECandidate(candidate)
			if err != nil {
				ih.logger.Warnw("skipping invalid remote candidate", err, "content", name, "candidate", candidate.String())
				continue
			}
			if err = c.transport.AddRemoteCandidate(&ic); err != nil {
				if ih.started {
					late = multierr.Append(late, errors.Wrapf(ErrLateCandidate, "content %s: %v", name, err))
					continue
				}
				return errors.Wrapf(err, "content %s", name)
			}
		}
	}
	return late
}

func (d *ICEDriver) LocalCandidates(h Handle) (map[string]jingle.Transport, error) {
	ih, err := d.handle(h)
	if err != nil {
		return nil, err
	}

	ih.lock.RLock()
	defer ih.lock.RUnlock()

	local := make(map[string]jingle.Transport, len(ih.names))
	for _, name := range ih.names {
		c := ih.contents[name]
		params, err := c.gatherer.GetLocalParameters()
		if err != nil {
			return nil, errors.Wrapf(err, "content %s", name)
		}
		candidates, err := c.gatherer.GetLocalCandidates()
		if err != nil {
			return nil, errors.Wrapf(err, "content %s", name)
		}

		t := jingle.Transport{
			Ufrag: params.UsernameFragment,
			Pwd:   params.Password,
		}
		for i, ic := range candidates {
			t.Candidates = append(t.Candidates, FromICECandidate(name, i, ic))
		}
		local[name] = t
	}
	return local, nil
}

func (d *ICEDriver) Start(h Handle) error {
	ih, err := d.handle(h)
	if err != nil {
		return err
	}

	ih.lock.Lock()
	defer ih.lock.Unlock()

	if ih.started {
		return nil
	}
	ih.started = true
	for _, name := range ih.names {
		c := ih.contents[name]
		c.setStatus(StatusGathering, StatusChecking)
		go ih.check(c)
	}
	return nil
}

func (h *ICEHandle) check(c *iceContent) {
	c.transport.OnConnectionStateChange(func(state webrtc.ICETransportState) {
		h.logger.Debugw("ice transport state changed", "content", c.name, "state", state.String())
		if state == webrtc.ICETransportStateFailed {
			c.setStatus(StatusChecking, StatusFailed)
		}
	})

	role := h.role
	if err := c.transport.Start(c.gatherer, c.remote, &role); err != nil {
		if !h.closed.IsBroken() {
			h.logger.Infow("ice checks failed", "content", c.name, "error", err)
		}
		c.setStatus(StatusChecking, StatusFailed)
		return
	}
	if c.setStatus(StatusChecking, StatusSucceeded) {
		h.logger.Debugw("ice connected", "content", c.name)
	}
}

// Status aggregates the contents: any failure fails the handle, all connected succeeds it.
func (d *ICEDriver) Status(h Handle) Status {
	ih, err := d.handle(h)
	if err != nil {
		return StatusFailed
	}

	ih.lock.RLock()
	defer ih.lock.RUnlock()

	if !ih.started {
		return StatusGathering
	}
	succeeded := 0
	for _, c := range ih.contents {
		switch Status(c.status.Load()) {
		case StatusFailed:
			return StatusFailed
		case StatusSucceeded:
			succeeded++
		}
	}
	if succeeded == len(ih.contents) {
		return StatusSucceeded
	}
	return StatusChecking
}

func (d *ICEDriver) Close(h Handle) error {
	ih, ok := h.(*ICEHandle)
	if !ok || ih == nil {
		return errUnknownHandle
	}
	return ih.close()
}

func (h *ICEHandle) close() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed.IsBroken() {
		return nil
	}
	h.closed.Break()

	var err error
	for _, c := range h.contents {
		err = multierr.Append(err, c.transport.Stop())
		err = multierr.Append(err, c.gatherer.Close())
	}
	return err
}
