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

package hammer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/config"
)

var ErrNoUserConnected = errors.New("no fake user could join")

// UserFactory builds the user with the given index. The user is not started.
type UserFactory func(ctx context.Context, index int, nick string) (*FakeUser, error)

type HammerParams struct {
	Config  *config.Config
	NewUser UserFactory
	Logger  logger.Logger
}

type userSlot struct {
	nick string
	user *FakeUser
	err  error
}

// Hammer runs a fleet of fake users against one room.
type Hammer struct {
	params HammerParams
	logger logger.Logger

	lock  sync.Mutex
	slots []*userSlot

	stopped core.Fuse
}

func NewHammer(params HammerParams) *Hammer {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	return &Hammer{
		params: params,
		logger: params.Logger.WithValues("room", params.Config.Signal.Room),
	}
}

func (h *Hammer) Nick(index int) string {
	return fmt.Sprintf("%s%d", h.params.Config.Fleet.NickPrefix, index+1)
}

// Start joins all users, at most ConnectConcurrency at a time and one every Stagger.
// A user that cannot join is reported and does not affect the others.
func (h *Hammer) Start(ctx context.Context) error {
	fleet := h.params.Config.Fleet
	concurrency := fleet.ConnectConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	h.lock.Lock()
	h.slots = make([]*userSlot, 0, fleet.Users)
	h.lock.Unlock()

	h.logger.Infow("starting fake users", "users", fleet.Users, "concurrency", concurrency)
	pool := workerpool.New(concurrency)
	started := time.Now()

submit:
	for i := 0; i < fleet.Users; i++ {
		if i > 0 && fleet.Stagger > 0 {
			select {
			case <-ctx.Done():
				break submit
			case <-h.stopped.Watch():
				break submit
			case <-time.After(fleet.Stagger):
			}
		}
		if ctx.Err() != nil || h.stopped.IsBroken() {
			break
		}

		slot := &userSlot{nick: h.Nick(i)}
		h.lock.Lock()
		h.slots = append(h.slots, slot)
		h.lock.Unlock()

		index := i
		pool.Submit(func() {
			h.startUser(ctx, index, slot)
		})
	}
	pool.StopWait()

	if err := ctx.Err(); err != nil {
		return err
	}
	connected := 0
	for _, r := range h.Results() {
		if r.Connected {
			connected++
		}
	}
	h.logger.Infow("fake users started", "connected", connected, "users", fleet.Users, "duration", time.Since(started))
	if connected == 0 && fleet.Users > 0 {
		return ErrNoUserConnected
	}
	return nil
}

func (h *Hammer) startUser(ctx context.Context, index int, slot *userSlot) {
	u, err := h.params.NewUser(ctx, index, slot.nick)
	if err != nil {
		h.logger.Warnw("could not create fake user", err, "user", slot.nick)
		h.lock.Lock()
		slot.err = err
		h.lock.Unlock()
		return
	}

	h.lock.Lock()
	slot.user = u
	h.lock.Unlock()

	// the result carries the error
	_ = u.Start(ctx)
	if h.stopped.IsBroken() {
		u.Stop()
	}
}

func (h *Hammer) users() []*FakeUser {
	h.lock.Lock()
	defer h.lock.Unlock()

	users := make([]*FakeUser, 0, len(h.slots))
	for _, s := range h.slots {
		if s.user != nil {
			users = append(users, s.user)
		}
	}
	return users
}

// Stop stops every user and waits for them to leave.
func (h *Hammer) Stop() {
	if h.stopped.IsBroken() {
		return
	}
	h.stopped.Break()

	users := h.users()
	concurrency := h.params.Config.Fleet.ConnectConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	pool := workerpool.New(concurrency)
	for _, u := range users {
		pool.Submit(u.Stop)
	}
	pool.StopWait()
	h.logger.Infow("fake users stopped", "users", len(users))
}

// Results returns one result per user, in join order.
func (h *Hammer) Results() []UserResult {
	h.lock.Lock()
	slots := append([]*userSlot(nil), h.slots...)
	h.lock.Unlock()

	results := make([]UserResult, 0, len(slots))
	for _, s := range slots {
		h.lock.Lock()
		u, err := s.user, s.err
		h.lock.Unlock()

		switch {
		case u != nil:
			results = append(results, u.Result())
		case err != nil:
			results = append(results, UserResult{Nick: s.nick, ConnectError: err.Error()})
		default:
			results = append(results, UserResult{Nick: s.nick})
		}
	}
	return results
}

func (h *Hammer) Report() *Report {
	return NewReport(h.Results())
}
