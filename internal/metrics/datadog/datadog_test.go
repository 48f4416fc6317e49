package datadog

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segprep/internal/metrics"
)

func TestNewBackend_RequiresAddr(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{})
	require.Error(t, err)
	assert.Nil(t, b)
}

func TestTags_SortedKeyValue(t *testing.T) {
	t.Parallel()

	assert.Nil(t, tags(nil))
	assert.Equal(t,
		[]string{"job:general", "stage:reduce", "status:success"},
		tags(metrics.Labels{"status": "success", "job": "general", "stage": "reduce"}),
	)
}

func TestBackend_SendsToAgent(t *testing.T) {
	t.Parallel()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	b, err := NewBackend(Config{Addr: conn.LocalAddr().String(), Namespace: "segprep."})
	require.NoError(t, err)

	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{"stage": "impute"})
	b.ObserveHistogram(metrics.StageDurationSeconds, 0.5, metrics.Labels{"stage": "impute"})
	require.NoError(t, b.Flush())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got strings.Builder
	buf := make([]byte, 4096)
	for !strings.Contains(got.String(), metrics.StageDurationSeconds) || !strings.Contains(got.String(), metrics.StageTotal) {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		got.Write(buf[:n])
	}
	assert.Contains(t, got.String(), "segprep."+metrics.StageTotal+":1|c|#stage:impute")
	assert.Contains(t, got.String(), "segprep."+metrics.StageDurationSeconds+":0.5|h|#stage:impute")
}

func TestZeroBackendIsSafe(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StageTotal, 1, nil)
	b.ObserveHistogram(metrics.StageDurationSeconds, 1, nil)
	assert.NoError(t, b.Flush())
}
