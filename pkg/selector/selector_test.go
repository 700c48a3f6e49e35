package selector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-hammer/pkg/jingle"
)

func testOffer(t *testing.T, mutate ...func(j *jingle.Jingle)) *jingle.SessionOffer {
	j := &jingle.Jingle{
		Action:    jingle.ActionSessionInitiate,
		SID:       "sid1",
		Initiator: "focus@conference/focus",
		Contents: []jingle.Content{
			{
				Name:    "audio",
				Creator: "initiator",
				Senders: jingle.SendersInitiator,
				Description: &jingle.Description{
					Media: "audio",
					PayloadTypes: []jingle.PayloadType{
						{ID: 0, Name: "PCMU", ClockRate: 8000},
						{ID: 111, Name: "opus", ClockRate: 48000, Channels: 2},
					},
					Sources: []jingle.Source{{SSRC: 1111}},
				},
				Transport: &jingle.Transport{
					Ufrag:        "u1",
					Pwd:          "p1",
					Fingerprints: []jingle.Fingerprint{{Hash: "sha-256", Setup: jingle.DTLSSetupActPass, Value: "AA"}},
				},
			},
			{
				Name: "video",
				Description: &jingle.Description{
					Media: "video",
					PayloadTypes: []jingle.PayloadType{
						{ID: 100, Name: "VP8", ClockRate: 90000},
					},
				},
				Transport: &jingle.Transport{Ufrag: "u2", Pwd: "p2"},
			},
			{
				Name:        "whiteboard",
				Description: &jingle.Description{Media: "whiteboard"},
			},
			{
				Name:        "data",
				Description: &jingle.Description{Media: "application"},
				Transport: &jingle.Transport{
					Ufrag:   "u3",
					Pwd:     "p3",
					SCTPMap: &jingle.SCTPMap{Number: 5000, Protocol: "webrtc-datachannel", Streams: 1024},
				},
			},
		},
	}
	for _, m := range mutate {
		m(j)
	}
	o, err := jingle.ParseOffer(j)
	require.NoError(t, err)
	return o
}

func TestSelect(t *testing.T) {
	t.Run("accepts known kinds in offer order", func(t *testing.T) {
		accepted, sel, err := Select(testOffer(t), DefaultPolicy())
		require.NoError(t, err)
		require.Equal(t, []string{"audio", "video", "data"}, accepted.Names())
		require.Len(t, sel, 3)

		for _, c := range accepted {
			require.Equal(t, jingle.SendersBoth, c.Senders)
			require.Contains(t, sel, c.Name)
		}
		require.Equal(t, "PCMU", sel["audio"].Format.Name)
		require.Equal(t, []jingle.Source{{SSRC: 1111}}, sel["audio"].RemoteSources)
		require.Len(t, accepted[0].Description.PayloadTypes, 1)
		require.Nil(t, accepted[0].Transport)

		require.Equal(t, jingle.MediaKindData, sel["data"].Kind)
		require.NotNil(t, sel["data"].SCTPMap)
		require.Equal(t, uint16(5000), sel["data"].SCTPMap.Number)
		require.Equal(t, "application", accepted[2].Description.Media)
	})

	t.Run("deterministic", func(t *testing.T) {
		o := testOffer(t)
		first, firstSel, err := Select(o, DefaultPolicy())
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, againSel, err := Select(o, DefaultPolicy())
			require.NoError(t, err)
			require.Equal(t, first, again)
			require.Equal(t, firstSel, againSel)
		}
	})

	t.Run("format policy", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.Formats = FormatPolicy{
			jingle.MediaKindAudio: {{Name: "OPUS", ClockRate: 48000}},
			jingle.MediaKindVideo: {{Name: "H264"}},
		}
		accepted, sel, err := Select(testOffer(t), policy)
		require.NoError(t, err)
		// video has nothing in common and is left out
		require.Equal(t, []string{"audio", "data"}, accepted.Names())
		require.Equal(t, uint8(111), sel["audio"].Format.ID)
		require.NotContains(t, sel, "video")
	})

	t.Run("kind filter", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.Kinds = []jingle.MediaKind{jingle.MediaKindAudio}
		accepted, _, err := Select(testOffer(t), policy)
		require.NoError(t, err)
		require.Equal(t, []string{"audio"}, accepted.Names())
	})

	t.Run("mirror direction", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.Direction = DirectionMirror
		accepted, sel, err := Select(testOffer(t), policy)
		require.NoError(t, err)
		require.Equal(t, jingle.SendersInitiator, accepted[0].Senders)
		require.Equal(t, jingle.SendersInitiator, sel["audio"].Direction)
		// unspecified senders default to both
		require.Equal(t, jingle.SendersBoth, sel["video"].Direction)
	})

	t.Run("content without formats", func(t *testing.T) {
		o := testOffer(t, func(j *jingle.Jingle) {
			j.Contents[1].Description.PayloadTypes = nil
		})
		_, _, err := Select(o, DefaultPolicy())
		require.ErrorIs(t, err, jingle.ErrMalformedOffer)
	})

	t.Run("data without sctp map", func(t *testing.T) {
		o := testOffer(t, func(j *jingle.Jingle) {
			j.Contents[3].Transport.SCTPMap = nil
		})
		_, _, err := Select(o, DefaultPolicy())
		require.ErrorIs(t, err, jingle.ErrMalformedOffer)
	})

	t.Run("nothing acceptable", func(t *testing.T) {
		o := testOffer(t, func(j *jingle.Jingle) {
			j.Contents = j.Contents[2:3]
		})
		_, _, err := Select(o, DefaultPolicy())
		require.ErrorIs(t, err, jingle.ErrMalformedOffer)

		_, _, err = Select(nil, DefaultPolicy())
		require.ErrorIs(t, err, jingle.ErrMalformedOffer)
	})
}

func TestWithLocalTransports(t *testing.T) {
	accepted, sel, err := Select(testOffer(t), DefaultPolicy())
	require.NoError(t, err)

	local := map[string]jingle.Transport{
		"audio": {Ufrag: "la", Pwd: "lpa", Candidates: []jingle.Candidate{{Foundation: "1", Component: 1, Protocol: "udp", IP: "127.0.0.1", Port: 5000, Type: "host"}}},
		"data":  {Ufrag: "ld", Pwd: "lpd"},
	}
	fps := []jingle.Fingerprint{{Hash: "sha-256", Value: "CC"}}

	out := WithLocalTransports(accepted, local, fps, sel)
	require.Len(t, out, 3)

	// input is left untouched
	for _, c := range accepted {
		require.Nil(t, c.Transport)
	}

	require.NotNil(t, out[0].Transport)
	require.Equal(t, "la", out[0].Transport.Ufrag)
	require.True(t, out[0].Transport.RTCPMux)
	require.Len(t, out[0].Transport.Candidates, 1)
	require.Equal(t, []jingle.Fingerprint{{Hash: "sha-256", Setup: jingle.DTLSSetupActive, Value: "CC"}}, out[0].Transport.Fingerprints)

	require.Nil(t, out[1].Transport)

	require.NotNil(t, out[2].Transport.SCTPMap)
	require.Equal(t, uint16(5000), out[2].Transport.SCTPMap.Number)
	require.Empty(t, fps[0].Setup)
}

func TestLocalSetupFollowsRemote(t *testing.T) {
	o := testOffer(t, func(j *jingle.Jingle) {
		j.Contents[0].Transport.Fingerprints[0].Setup = jingle.DTLSSetupActive
	})
	accepted, sel, err := Select(o, DefaultPolicy())
	require.NoError(t, err)

	out := WithLocalTransports(accepted, map[string]jingle.Transport{"audio": {Ufrag: "la"}}, []jingle.Fingerprint{{Hash: "sha-256", Value: "CC"}}, sel)
	require.Equal(t, jingle.DTLSSetupPassive, out[0].Transport.Fingerprints[0].Setup)
}
