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

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

var (
	usersConnected          atomic.Int32
	transportSessionsActive atomic.Int32

	promNegotiationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: hammerNamespace,
		Subsystem: "negotiation",
		Name:      "total",
		Help:      "Negotiations by outcome.",
	}, []string{"status", "error_kind"})
	promSignalMessageCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: hammerNamespace,
		Name:      "signal_messages",
		Help:      "Signaling envelopes sent and received.",
	}, []string{"type", "direction"})
	promUsersConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: hammerNamespace,
		Name:      "users_connected",
	})
	promTransportSessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: hammerNamespace,
		Name:      "transport_sessions_active",
	})
)

func RecordNegotiation(status, errorKind string) {
	promNegotiationCounter.WithLabelValues(status, errorKind).Inc()
}

func RecordSignalMessage(messageType string, direction Direction) {
	promSignalMessageCounter.WithLabelValues(messageType, string(direction)).Inc()
}

func AddUser() {
	promUsersConnected.Add(1)
	usersConnected.Inc()
}

func SubUser() {
	promUsersConnected.Sub(1)
	usersConnected.Dec()
}

func UsersConnected() int32 {
	return usersConnected.Load()
}

func AddTransportSessions(n int) {
	promTransportSessionsActive.Add(float64(n))
	transportSessionsActive.Add(int32(n))
}

func SubTransportSessions(n int) {
	promTransportSessionsActive.Sub(float64(n))
	transportSessionsActive.Sub(int32(n))
}

func TransportSessionsActive() int32 {
	return transportSessionsActive.Load()
}
