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
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry owns the transport sessions of one negotiation, keyed by content name.
// Sessions are started and stopped through it only.
type Registry struct {
	lock     sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Session),
	}
}

func (r *Registry) Put(name string, s Session) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.sessions[name]; ok {
		return errors.Wrapf(ErrDuplicateSession, "content %s", name)
	}
	r.sessions[name] = s
	return nil
}

func (r *Registry) Get(name string) (Session, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	s, ok := r.sessions[name]
	return s, ok
}

// Start starts the named session.
func (r *Registry) Start(ctx context.Context, name string) error {
	s, ok := r.Get(name)
	if !ok {
		return errors.Errorf("no transport session for content %s", name)
	}
	return s.Start(ctx)
}

func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.sessions))
	for name := range r.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.sessions)
}

func (r *Registry) Stats() map[string]Stats {
	r.lock.RLock()
	defer r.lock.RUnlock()

	stats := make(map[string]Stats, len(r.sessions))
	for name, s := range r.sessions {
		stats[name] = s.Stats()
	}
	return stats
}

// StopAll stops every session once and leaves the registry empty. It returns the
// stats of the stopped sessions.
func (r *Registry) StopAll() map[string]Stats {
	r.lock.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]Session)
	r.lock.Unlock()

	names := make([]string, 0, len(sessions))
	for name := range sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	stats := make(map[string]Stats, len(sessions))
	for _, name := range names {
		sessions[name].Stop()
		stats[name] = sessions[name].Stats()
	}
	return stats
}
