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

package utils

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/livekit/protocol/logger"
)

type OpsQueueParams struct {
	Name string
	// number of ops the queue keeps room for, rounded up to a power of two
	MinSize uint
	// run the ops still queued when stopping instead of dropping them
	FlushOnStop bool
	Logger      logger.Logger
}

// OpsQueue runs ops one at a time, in the order they were enqueued.
type OpsQueue struct {
	params OpsQueueParams

	lock      sync.Mutex
	ops       *deque.Deque[func()]
	wake      chan struct{}
	isStarted bool
	doneChan  chan struct{}
	isStopped bool
}

func NewOpsQueue(params OpsQueueParams) *OpsQueue {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	oq := &OpsQueue{
		params:   params,
		ops:      deque.New[func()](0, int(params.MinSize)),
		wake:     make(chan struct{}, 1),
		doneChan: make(chan struct{}),
	}
	return oq
}

func (oq *OpsQueue) Start() {
	oq.lock.Lock()
	if oq.isStarted {
		oq.lock.Unlock()
		return
	}
	oq.isStarted = true
	oq.lock.Unlock()

	go oq.process()
}

// Stop returns a channel closed once the processing goroutine has exited.
func (oq *OpsQueue) Stop() <-chan struct{} {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return oq.doneChan
	}
	oq.isStopped = true
	started := oq.isStarted
	close(oq.wake)
	oq.lock.Unlock()

	if !started {
		close(oq.doneChan)
	}
	return oq.doneChan
}

// Enqueue reports false when the queue is stopped and the op was dropped.
func (oq *OpsQueue) Enqueue(op func()) bool {
	oq.lock.Lock()
	defer oq.lock.Unlock()

	if oq.isStopped {
		oq.params.Logger.Debugw("dropping op, queue stopped", "name", oq.params.Name)
		return false
	}

	oq.ops.PushBack(op)
	if oq.ops.Len() == 1 {
		select {
		case oq.wake <- struct{}{}:
		default:
		}
	}
	return true
}

func (oq *OpsQueue) process() {
	defer close(oq.doneChan)

	for {
		_, ok := <-oq.wake
		for {
			oq.lock.Lock()
			if (!ok && !oq.params.FlushOnStop) || oq.ops.Len() == 0 {
				oq.lock.Unlock()
				break
			}
			op := oq.ops.PopFront()
			oq.lock.Unlock()

			op()
		}
		if !ok {
			return
		}
	}
}
