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
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"
)

const (
	hammerNamespace string = "hammer"
)

var (
	initialized atomic.Bool
)

// Init registers the collectors with the default registry, once.
func Init() {
	if initialized.Swap(true) {
		return
	}

	prometheus.MustRegister(promNegotiationCounter)
	prometheus.MustRegister(promSignalMessageCounter)
	prometheus.MustRegister(promUsersConnected)
	prometheus.MustRegister(promTransportSessionsActive)
	prometheus.MustRegister(promCPULoad)
	prometheus.MustRegister(promLoadAvg)
}

// Serve exposes the default registry on the given port until the server fails.
func Serve(port uint32) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Infow("serving prometheus metrics", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
