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
	"sync"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

// Handler receives the negotiation messages of one session.
type Handler interface {
	HandleMessage(msg *jingle.Message)
}

// Router dispatches inbound negotiation messages by session id. Messages without a
// registered session go to the fallback.
type Router struct {
	lock     sync.RWMutex
	routes   map[string]Handler
	fallback func(msg *jingle.Message)
}

func NewRouter(fallback func(msg *jingle.Message)) *Router {
	return &Router{
		routes:   make(map[string]Handler),
		fallback: fallback,
	}
}

// Register adds a route, it returns false if the session id is already taken.
func (r *Router) Register(sid string, h Handler) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.routes[sid]; ok {
		return false
	}
	r.routes[sid] = h
	return true
}

// Unregister removes the route only if it still points at h.
func (r *Router) Unregister(sid string, h Handler) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if cur, ok := r.routes[sid]; ok && cur == h {
		delete(r.routes, sid)
	}
}

func (r *Router) Get(sid string) (Handler, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	h, ok := r.routes[sid]
	return h, ok
}

func (r *Router) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.routes)
}

func (r *Router) Dispatch(msg *jingle.Message) {
	if msg == nil {
		return
	}
	if h, ok := r.Get(msg.SID()); ok {
		h.HandleMessage(msg)
		return
	}
	if r.fallback != nil {
		r.fallback(msg)
		return
	}
	logger.Debugw("no route for message", "sid", msg.SID(), "id", msg.ID)
}
