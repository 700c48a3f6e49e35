package config

import (
	"context"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-hammer/pkg/jingle"
	"github.com/livekit/livekit-hammer/pkg/selector"
	"github.com/livekit/livekit-hammer/pkg/session"
)

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `signal:
  url: wss://meet.example.com/xmpp-websocket
fleet:
  users: 20
session:
  poll_interval: 100ms
  codecs:
    audio:
      - name: opus
        clock_rate: 48000
`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 20, conf.Fleet.Users)
	require.Equal(t, "Hello World!", conf.Fleet.Greeting)
	require.Equal(t, "hammer", conf.Signal.Room)
	require.Equal(t, 100*time.Millisecond, conf.Session.PollInterval)
	require.Equal(t, 30*time.Second, conf.Session.ConnectivityTimeout)
	require.True(t, conf.Session.TerminateOnTimeout)
	require.Equal(t, session.LateCandidatesAccept, conf.Session.LateCandidates)
	require.Equal(t, selector.DirectionForceBoth, conf.Session.Direction)
	require.Equal(t, []selector.Format{{Name: "opus", ClockRate: 48000}}, conf.Session.Codecs[jingle.MediaKindAudio])
	require.Equal(t, "error", conf.Logging.PionLevel)
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
signal:
  url: ws://localhost`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	_, err = NewConfig(content, false, nil, nil)
	require.NoError(t, err)
}

func TestConfig_Validate(t *testing.T) {
	_, err := NewConfig("", true, nil, nil)
	require.ErrorIs(t, err, ErrMissingServer)

	cases := map[string]error{
		"fleet: {users: -1}":                                ErrNoUsers,
		"rtc: {port_range_start: 5000, port_range_end: 10}": ErrInvalidPorts,
		"rtc: {ice_role: leader}":                           ErrInvalidICERole,
		"session: {late_candidates: maybe}":                 ErrInvalidPolicies,
		"session: {direction: sideways}":                    ErrInvalidPolicies,
	}
	for content, expected := range cases {
		_, err := NewConfig("signal: {url: ws://localhost}\n"+content, true, nil, nil)
		require.ErrorIs(t, err, expected, content)
	}
}

func TestConfig_Development(t *testing.T) {
	conf, err := NewConfig("signal: {url: ws://localhost}\ndevelopment: true", true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "debug", conf.Logging.Level)
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, true)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range generatedFlags {
		names[f.Names()[0]] = true
	}
	require.True(t, names["session.poll_interval"])
	require.True(t, names["fleet.users"])
	require.True(t, names["prometheus_port"])
	require.False(t, names["rtc.stun_servers"])

	app := cli.NewApp()
	app.Flags = append(app.Flags, generatedFlags...)

	set := flag.NewFlagSet("hammer", 0)
	set.String("signal.url", "", "")
	set.Int("fleet.users", 0, "")
	set.Uint("prometheus_port", 0, "")
	set.Duration("session.connectivity_timeout", 0, "")
	set.Bool("session.terminate_on_timeout", true, "")
	set.String("server", "", "")
	require.NoError(t, set.Parse([]string{
		"--signal.url=ws://localhost:5280",
		"--fleet.users=5",
		"--prometheus_port=9999",
		"--session.connectivity_timeout=5s",
		"--session.terminate_on_timeout=false",
	}))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.Equal(t, "ws://localhost:5280", conf.Signal.URL)
	require.Equal(t, 5, conf.Fleet.Users)
	require.Equal(t, uint32(9999), conf.PrometheusPort)
	require.Equal(t, 5*time.Second, conf.Session.ConnectivityTimeout)
	require.False(t, conf.Session.TerminateOnTimeout)
	// not set on the command line
	require.Equal(t, 250*time.Millisecond, conf.Session.PollInterval)
}

func TestNATIPs(t *testing.T) {
	conf := RTCConfig{NodeIPs: []string{"203.0.113.10"}, UseExternalIP: true}
	ips, err := conf.NATIPs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"203.0.113.10"}, ips)

	conf = RTCConfig{}
	ips, err = conf.NATIPs(context.Background())
	require.NoError(t, err)
	require.Empty(t, ips)
}
