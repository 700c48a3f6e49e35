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

	"github.com/livekit/protocol/logger"
)

var (
	promCPULoad = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: hammerNamespace,
		Subsystem: "host",
		Name:      "cpu_load",
		Help:      "CPU load of the host running the fake users, between 0 and 1.",
	}, func() float64 {
		load, _, err := getCPUStats()
		if err != nil {
			logger.Debugw("could not read cpu stats", "error", err)
		}
		return load
	})
	promLoadAvg = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: hammerNamespace,
		Subsystem: "host",
		Name:      "load_avg_1",
	}, func() float64 {
		load, err := getLoadAvg()
		if err != nil {
			logger.Debugw("could not read load average", "error", err)
		}
		return load
	})
)

type HostStats struct {
	CPULoad float64
	NumCPUs int
	LoadAvg float64
}

func GetHostStats() (HostStats, error) {
	cpuLoad, numCPUs, err := getCPUStats()
	if err != nil {
		return HostStats{}, err
	}
	loadAvg, err := getLoadAvg()
	if err != nil {
		return HostStats{}, err
	}
	return HostStats{CPULoad: cpuLoad, NumCPUs: numCPUs, LoadAvg: loadAvg}, nil
}
