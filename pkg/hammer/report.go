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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/thoas/go-funk"
	"gopkg.in/yaml.v3"

	"github.com/livekit/livekit-hammer/pkg/session"
)

// Report summarizes a hammer run.
type Report struct {
	Users           int            `yaml:"users"`
	Connected       int            `yaml:"connected"`
	ConnectFailures int            `yaml:"connect_failures"`
	Disconnected    int            `yaml:"disconnected"`
	Sessions        int            `yaml:"sessions"`
	// sessions that reached ACTIVE, and those still active when the report was made
	Activated     int            `yaml:"activated"`
	Active        int            `yaml:"active"`
	Failed        int            `yaml:"failed"`
	ErrorKinds    map[string]int `yaml:"error_kinds,omitempty"`
	BytesSent     uint64         `yaml:"bytes_sent"`
	BytesReceived uint64         `yaml:"bytes_received"`
	AvgSetupTime  time.Duration  `yaml:"avg_setup_time,omitempty"`
	Results       []UserResult   `yaml:"results"`
}

func NewReport(results []UserResult) *Report {
	connected := funk.Filter(results, func(r UserResult) bool {
		return r.Connected
	}).([]UserResult)

	var sessions []SessionResult
	for _, r := range results {
		sessions = append(sessions, r.Sessions...)
	}
	disconnected := funk.Filter(results, func(r UserResult) bool {
		return r.Disconnected
	}).([]UserResult)
	activated := funk.Filter(sessions, func(s SessionResult) bool {
		return s.Activated
	}).([]SessionResult)
	active := funk.Filter(activated, func(s SessionResult) bool {
		return s.State == session.StateActive
	}).([]SessionResult)
	failed := funk.Filter(sessions, func(s SessionResult) bool {
		return s.ErrorKind != session.ErrorKindNone
	}).([]SessionResult)

	r := &Report{
		Users:           len(results),
		Connected:       len(connected),
		ConnectFailures: len(results) - len(connected),
		Disconnected:    len(disconnected),
		Sessions:        len(sessions),
		Activated:       len(activated),
		Active:          len(active),
		Failed:          len(failed),
		Results:         results,
	}
	for _, s := range sessions {
		for _, stats := range s.Stats {
			r.BytesSent += stats.BytesSent
			r.BytesReceived += stats.BytesReceived
		}
	}
	var setup time.Duration
	for _, s := range activated {
		setup += s.SetupTime
	}
	if len(activated) > 0 {
		r.AvgSetupTime = setup / time.Duration(len(activated))
	}
	for _, s := range failed {
		if r.ErrorKinds == nil {
			r.ErrorKinds = make(map[string]int)
		}
		r.ErrorKinds[s.ErrorKind.String()]++
	}
	return r
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d fake users joined", r.Connected, r.Users)
	if r.ConnectFailures > 0 {
		fmt.Fprintf(&b, ", %d failed to join", r.ConnectFailures)
	}
	if r.Disconnected > 0 {
		fmt.Fprintf(&b, ", %d lost the signaling connection", r.Disconnected)
	}
	fmt.Fprintf(&b, "\n%d session(s), %d activated (%d still active), %d failed\n", r.Sessions, r.Activated, r.Active, r.Failed)
	fmt.Fprintf(&b, "sent %s, received %s", humanize.Bytes(r.BytesSent), humanize.Bytes(r.BytesReceived))
	if r.AvgSetupTime > 0 {
		fmt.Fprintf(&b, ", average setup %v", r.AvgSetupTime.Round(time.Millisecond))
	}
	b.WriteString("\n")

	if len(r.ErrorKinds) > 0 {
		kinds := funk.Keys(r.ErrorKinds).([]string)
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(&b, "  %s: %d\n", k, r.ErrorKinds[k])
		}
	}
	for _, u := range r.Results {
		if !u.Connected || u.Disconnected {
			fmt.Fprintf(&b, "  %s\n", u.String())
		}
	}
	return b.String()
}

// WriteTable prints one row per session, and one per user without any.
func (r *Report) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"User", "Session", "State", "Error", "Transports", "Sent", "Received", "Setup"})

	for _, u := range r.Results {
		if len(u.Sessions) == 0 {
			state, reason := "NOT CONNECTED", u.ConnectError
			switch {
			case u.Disconnected:
				state, reason = "DISCONNECTED", u.DisconnectError
			case u.Connected:
				state = "CONNECTED"
			}
			table.Append([]string{u.Nick, "", state, reason, "", "", "", ""})
			continue
		}
		for _, s := range u.Sessions {
			var sent, received uint64
			for _, stats := range s.Stats {
				sent += stats.BytesSent
				received += stats.BytesReceived
			}
			kind := ""
			if s.ErrorKind != session.ErrorKindNone {
				kind = s.ErrorKind.String()
			}
			setup := ""
			if s.SetupTime > 0 {
				setup = s.SetupTime.Round(time.Millisecond).String()
			}
			table.Append([]string{
				u.Nick,
				s.SID,
				s.State.String(),
				kind,
				strings.Join(s.Transports, ","),
				humanize.Bytes(sent),
				humanize.Bytes(received),
				setup,
			})
		}
	}
	table.Render()
}

func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
