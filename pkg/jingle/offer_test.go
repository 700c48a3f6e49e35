package jingle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testInitiate() *Jingle {
	return &Jingle{
		Action:    ActionSessionInitiate,
		SID:       "sid1",
		Initiator: "focus@conference/focus",
		Responder: "room@conference/hammer",
		Contents: []Content{
			{
				Name:    "audio",
				Senders: SendersBoth,
				Description: &Description{
					Media: "audio",
					PayloadTypes: []PayloadType{
						{ID: 111, Name: "opus", ClockRate: 48000, Channels: 2, Parameters: map[string]string{"useinbandfec": "1", "minptime": "10"}},
					},
					Sources: []Source{{SSRC: 1234}},
				},
				Transport: &Transport{
					Ufrag: "u1",
					Pwd:   "p1",
					Candidates: []Candidate{
						{Foundation: "1", Component: 1, Protocol: "udp", Priority: 2130706431, IP: "10.0.0.1", Port: 10000, Type: "host"},
					},
					Fingerprints: []Fingerprint{{Hash: "sha-256", Setup: DTLSSetupActPass, Value: "AA:BB"}},
				},
			},
			{
				Name: "data",
				Description: &Description{
					Media: "application",
				},
				Transport: &Transport{
					SCTPMap: &SCTPMap{Number: 5000, Protocol: "webrtc-datachannel", Streams: 1024},
				},
			},
		},
	}
}

func TestParseOffer(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		o, err := ParseOffer(testInitiate())
		require.NoError(t, err)
		require.Equal(t, "sid1", o.SID())
		require.Equal(t, "focus@conference/focus", o.Initiator())

		contents := o.Contents()
		require.Len(t, contents, 2)
		require.Equal(t, "audio", contents[0].Name())
		require.Equal(t, MediaKindAudio, contents[0].Kind())
		require.True(t, contents[0].HasFormats())
		require.Equal(t, MediaKindData, contents[1].Kind())
		require.True(t, contents[1].HasFormats())
		require.Equal(t, SendersBoth, contents[1].Senders())
	})

	t.Run("duplicate content names", func(t *testing.T) {
		j := testInitiate()
		j.Contents[1].Name = "audio"
		_, err := ParseOffer(j)
		require.ErrorIs(t, err, ErrMalformedOffer)
	})

	t.Run("no contents", func(t *testing.T) {
		j := testInitiate()
		j.Contents = nil
		_, err := ParseOffer(j)
		require.ErrorIs(t, err, ErrMalformedOffer)
	})

	t.Run("wrong action", func(t *testing.T) {
		j := testInitiate()
		j.Action = ActionTransportInfo
		_, err := ParseOffer(j)
		require.ErrorIs(t, err, ErrMalformedOffer)
	})

	t.Run("missing sid", func(t *testing.T) {
		j := testInitiate()
		j.SID = ""
		_, err := ParseOffer(j)
		require.ErrorIs(t, err, ErrMalformedOffer)
	})
}

func TestOfferIsImmutable(t *testing.T) {
	j := testInitiate()
	o, err := ParseOffer(j)
	require.NoError(t, err)

	// mutating the source message does not leak into the offer
	j.Contents[0].Description.PayloadTypes[0].Name = "PCMU"
	j.Contents[0].Transport.Candidates[0].IP = "192.168.1.1"

	c, ok := o.Content("audio")
	require.True(t, ok)
	require.Equal(t, "opus", c.PayloadTypes()[0].Name)
	require.Equal(t, "10.0.0.1", c.Transport().Candidates[0].IP)

	// nor does mutating what the accessors return
	pts := c.PayloadTypes()
	pts[0].Parameters["minptime"] = "20"
	require.Equal(t, "10", c.PayloadTypes()[0].Parameters["minptime"])
}

func TestRemoteTransports(t *testing.T) {
	o, err := ParseOffer(testInitiate())
	require.NoError(t, err)

	transports := o.RemoteTransports([]string{"audio", "missing"})
	require.Len(t, transports, 1)
	require.Equal(t, "u1", transports["audio"].Ufrag)
}

func TestPayloadTypeFmtpLine(t *testing.T) {
	pt := PayloadType{Parameters: map[string]string{"useinbandfec": "1", "minptime": "10"}}
	require.Equal(t, "minptime=10;useinbandfec=1", pt.FmtpLine())
	require.Empty(t, PayloadType{}.FmtpLine())
}

func TestFormats(t *testing.T) {
	o, err := ParseOffer(testInitiate())
	require.NoError(t, err)

	audio, _ := o.Content("audio")
	require.Equal(t, []string{"111 opus/48000/2"}, audio.Formats())
	data, _ := o.Content("data")
	require.Equal(t, []string{"5000 webrtc-datachannel 1024"}, data.Formats())
}

func TestTransportInfo(t *testing.T) {
	j := NewTransportInfo("sid1", map[string]Transport{
		"video": {Ufrag: "v"},
		"audio": {Ufrag: "a"},
	})
	require.Equal(t, ActionTransportInfo, j.Action)
	require.Len(t, j.Contents, 2)
	require.Equal(t, "audio", j.Contents[0].Name)
	require.Equal(t, "v", j.Contents[1].Transport.Ufrag)
}

func TestAck(t *testing.T) {
	req := NewRequest("a@x/1", "b@x/2", testInitiate())
	require.True(t, req.IsRequest())
	require.Equal(t, "sid1", req.SID())

	ack := NewAck(req)
	require.Equal(t, req.ID, ack.ID)
	require.Equal(t, "b@x/2", ack.From)
	require.Equal(t, "a@x/1", ack.To)
	require.Equal(t, MessageTypeResult, ack.Type)
	require.False(t, ack.IsRequest())
	require.True(t, ack.IsAck())
}
