package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestGauges(t *testing.T) {
	Init()
	Init()

	users := UsersConnected()
	AddUser()
	AddUser()
	SubUser()
	require.Equal(t, users+1, UsersConnected())
	SubUser()

	sessions := TransportSessionsActive()
	AddTransportSessions(3)
	require.Equal(t, sessions+3, TransportSessionsActive())
	SubTransportSessions(3)
	require.Equal(t, sessions, TransportSessionsActive())
	require.Equal(t, float64(sessions), testutil.ToFloat64(promTransportSessionsActive))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(promNegotiationCounter.WithLabelValues("failed", "ConnectivityTimeout"))
	RecordNegotiation("failed", "ConnectivityTimeout")
	require.Equal(t, before+1, testutil.ToFloat64(promNegotiationCounter.WithLabelValues("failed", "ConnectivityTimeout")))

	RecordSignalMessage("iq", Outgoing)
	require.GreaterOrEqual(t, testutil.ToFloat64(promSignalMessageCounter.WithLabelValues("iq", "outgoing")), float64(1))
}

func TestHostStats(t *testing.T) {
	stats, err := GetHostStats()
	require.NoError(t, err)
	require.Positive(t, stats.NumCPUs)
	require.GreaterOrEqual(t, stats.CPULoad, float64(0))
	require.LessOrEqual(t, stats.CPULoad, float64(1))
}
