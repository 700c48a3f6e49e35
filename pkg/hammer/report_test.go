package hammer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-hammer/pkg/hammer"
	"github.com/livekit/livekit-hammer/pkg/session"
	"github.com/livekit/livekit-hammer/pkg/transport"
)

func testResults() []hammer.UserResult {
	return []hammer.UserResult{
		{
			Nick:      "hammer1",
			Connected: true,
			Sessions: []hammer.SessionResult{
				{
					SID:        "sid1",
					State:      session.StateActive,
					Activated:  true,
					SetupTime:  300 * time.Millisecond,
					Transports: []string{"audio", "video"},
					Stats: map[string]transport.Stats{
						"audio": {BytesSent: 1000, BytesReceived: 500},
						"video": {BytesSent: 2000, BytesReceived: 1500},
					},
				},
				{SID: "sid2", State: session.StateTerminated, ErrorKind: session.ErrorKindConnectivityTimeout, Reason: "timed out"},
			},
		},
		{
			Nick:      "hammer2",
			Connected: true,
			Sessions: []hammer.SessionResult{
				{SID: "sid3", State: session.StateTerminated, ErrorKind: session.ErrorKindConnectivityTimeout, Reason: "timed out"},
				{SID: "sid4", State: session.StateTerminated, ErrorKind: session.ErrorKindMalformedOffer, Reason: "no content"},
				{
					SID:        "sid5",
					State:      session.StateTerminated,
					Activated:  true,
					SetupTime:  100 * time.Millisecond,
					Transports: []string{"audio"},
					Stats: map[string]transport.Stats{
						"audio": {BytesSent: 500, BytesReceived: 500},
					},
				},
			},
		},
		{
			Nick:         "hammer3",
			ConnectError: "signaling connection failed",
		},
		{
			Nick:            "hammer4",
			Connected:       true,
			Disconnected:    true,
			DisconnectError: "websocket: close 1006",
		},
	}
}

func TestReport(t *testing.T) {
	r := hammer.NewReport(testResults())
	require.Equal(t, 4, r.Users)
	require.Equal(t, 3, r.Connected)
	require.Equal(t, 1, r.ConnectFailures)
	require.Equal(t, 1, r.Disconnected)
	require.Equal(t, 5, r.Sessions)
	require.Equal(t, 2, r.Activated)
	require.Equal(t, 1, r.Active)
	require.Equal(t, 3, r.Failed)
	require.Equal(t, map[string]int{
		"ConnectivityTimeout": 2,
		"MalformedOffer":      1,
	}, r.ErrorKinds)

	require.Equal(t, uint64(3500), r.BytesSent)
	require.Equal(t, uint64(2500), r.BytesReceived)
	require.Equal(t, 200*time.Millisecond, r.AvgSetupTime)

	s := r.String()
	require.Contains(t, s, "3 of 4 fake users joined, 1 failed to join, 1 lost the signaling connection")
	require.Contains(t, s, "5 session(s), 2 activated (1 still active), 3 failed")
	require.Contains(t, s, "ConnectivityTimeout: 2")
	require.Contains(t, s, "hammer3: not connected: signaling connection failed")
	require.Contains(t, s, "hammer4: disconnected: websocket: close 1006")
	require.Contains(t, s, "sent 3.5 kB, received 2.5 kB, average setup 200ms")

	t.Run("after stop", func(t *testing.T) {
		results := testResults()
		for _, u := range results {
			for i := range u.Sessions {
				u.Sessions[i].State = session.StateTerminated
			}
		}
		r := hammer.NewReport(results)
		require.Equal(t, 2, r.Activated)
		require.Zero(t, r.Active)
		require.Equal(t, 200*time.Millisecond, r.AvgSetupTime)
		require.Equal(t, uint64(3500), r.BytesSent)
		require.Contains(t, r.String(), "5 session(s), 2 activated (0 still active), 3 failed")
	})

	t.Run("empty", func(t *testing.T) {
		r := hammer.NewReport(nil)
		require.Zero(t, r.Users)
		require.Nil(t, r.ErrorKinds)
		require.Contains(t, r.String(), "0 of 0 fake users joined")
	})
}

func TestReportWriteTable(t *testing.T) {
	var b bytes.Buffer
	hammer.NewReport(testResults()).WriteTable(&b)

	out := b.String()
	require.Contains(t, out, "SESSION")
	require.Contains(t, out, "audio,video")
	require.Contains(t, out, "MalformedOffer")
	require.Contains(t, out, "NOT CONNECTED")
	require.Contains(t, out, "DISCONNECTED")
	require.Contains(t, out, "websocket: close 1006")
	require.Contains(t, out, "100ms")
	require.Equal(t, 7, strings.Count(out, "hammer"))
}

func TestReportWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, hammer.NewReport(testResults()).WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "state: ACTIVE")
	require.Contains(t, string(data), "error_kind: ConnectivityTimeout")
	require.Contains(t, string(data), "connect_failures: 1")
	require.Contains(t, string(data), "activated: 2")
	require.Contains(t, string(data), "disconnected: true")
}
