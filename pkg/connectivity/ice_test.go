package connectivity

import (
	"context"
	"testing"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

type otherHandle struct{}

func (otherHandle) ID() string { return "other" }

func TestStatus(t *testing.T) {
	require.False(t, StatusGathering.IsTerminal())
	require.False(t, StatusChecking.IsTerminal())
	require.True(t, StatusSucceeded.IsTerminal())
	require.True(t, StatusFailed.IsTerminal())
	require.Equal(t, "TERMINATED(failure)", StatusFailed.String())
}

func TestCandidateConversion(t *testing.T) {
	t.Run("host", func(t *testing.T) {
		ic, err := ToICECandidate(jingle.Candidate{
			Foundation: "1",
			Component:  1,
			Protocol:   "udp",
			Priority:   2130706431,
			IP:         "10.0.0.1",
			Port:       10000,
			Type:       "host",
		})
		require.NoError(t, err)
		require.Equal(t, "10.0.0.1", ic.Address)
		require.Equal(t, uint16(10000), ic.Port)
		require.Equal(t, webrtc.ICECandidateTypeHost, ic.Typ)
		require.Equal(t, webrtc.ICEProtocolUDP, ic.Protocol)

		c := FromICECandidate("audio", 2, ic)
		require.Equal(t, "audio-2", c.ID)
		require.Equal(t, "host", c.Type)
		require.Equal(t, "udp", c.Protocol)
		require.Equal(t, uint32(2130706431), c.Priority)
	})

	t.Run("server reflexive", func(t *testing.T) {
		ic, err := ToICECandidate(jingle.Candidate{
			Foundation: "2",
			Component:  1,
			Protocol:   "udp",
			Priority:   1694498815,
			IP:         "203.0.113.7",
			Port:       40000,
			Type:       "srflx",
			RelAddr:    "10.0.0.1",
			RelPort:    10000,
		})
		require.NoError(t, err)
		require.Equal(t, webrtc.ICECandidateTypeSrflx, ic.Typ)
		require.Equal(t, "10.0.0.1", ic.RelatedAddress)
		require.Equal(t, uint16(10000), ic.RelatedPort)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ToICECandidate(jingle.Candidate{
			Foundation: "1",
			Component:  1,
			Protocol:   "udp",
			IP:         "10.0.0.1",
			Port:       10000,
			Type:       "bogus",
		})
		require.Error(t, err)
	})
}

func TestICEDriverHandles(t *testing.T) {
	d := NewICEDriver(ICEDriverParams{})
	require.Equal(t, webrtc.ICERoleControlled, d.params.Role)
	require.Equal(t, defaultGatherTimeout, d.params.GatherTimeout)

	_, err := d.Open(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnknownContent)

	require.Equal(t, StatusFailed, d.Status(otherHandle{}))
	require.Error(t, d.Start(otherHandle{}))
	require.Error(t, d.Close(otherHandle{}))

	closed := &ICEHandle{id: "closed", contents: map[string]*iceContent{}}
	require.NoError(t, d.Close(closed))
	require.NoError(t, d.Close(closed))
	require.ErrorIs(t, d.Start(closed), ErrHandleClosed)
	require.ErrorIs(t, d.AddRemoteCandidates(closed, nil), ErrHandleClosed)
	_, err = d.LocalCandidates(closed)
	require.ErrorIs(t, err, ErrHandleClosed)
	require.Equal(t, StatusFailed, d.Status(closed))
}

func TestICEHandleStatusAggregation(t *testing.T) {
	d := NewICEDriver(ICEDriverParams{})
	h := &ICEHandle{
		id: "h",
		contents: map[string]*iceContent{
			"audio": {name: "audio"},
			"video": {name: "video"},
		},
	}
	require.Equal(t, StatusGathering, d.Status(h))

	h.started = true
	h.contents["audio"].status.Store(int32(StatusSucceeded))
	h.contents["video"].status.Store(int32(StatusChecking))
	require.Equal(t, StatusChecking, d.Status(h))

	h.contents["video"].status.Store(int32(StatusSucceeded))
	require.Equal(t, StatusSucceeded, d.Status(h))

	h.contents["video"].status.Store(int32(StatusFailed))
	require.Equal(t, StatusFailed, d.Status(h))

	require.ErrorIs(t, d.AddRemoteCandidates(h, map[string]jingle.Transport{"data": {}}), ErrUnknownContent)
}
