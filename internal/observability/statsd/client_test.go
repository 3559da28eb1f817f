package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenUDP binds an ephemeral UDP socket and returns its address plus a
// channel of received datagrams.
func listenUDP(t *testing.T) (string, <-chan string) {
	t.Helper()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	lines := make(chan string, 16)
	go func() {
		buf := make([]byte, 1024)
		for {
			n, _, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			lines <- string(buf[:n])
		}
	}()
	return conn.LocalAddr().String(), lines
}

func receive(t *testing.T, lines <-chan string) string {
	t.Helper()
	select {
	case line := <-lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("no datagram received")
		return ""
	}
}

func TestClient_Count(t *testing.T) {
	t.Parallel()

	addr, lines := listenUDP(t)
	client, err := NewClient(Config{Enabled: true, Address: addr, Prefix: "campushub"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	client.Count("login.success", 1, nil)
	assert.Equal(t, "campushub.login.success:1|c", receive(t, lines))

	client.Count("session.swept", 42, map[string]string{"worker": "sweeper"})
	assert.Equal(t, "campushub.session.swept:42|c|#worker:sweeper", receive(t, lines))
}

func TestClient_Timing(t *testing.T) {
	t.Parallel()

	addr, lines := listenUDP(t)
	client, err := NewClient(Config{Enabled: true, Address: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	client.Timing("request.duration", 1500*time.Millisecond, nil)
	assert.Equal(t, "request.duration:1500|ms", receive(t, lines))
}

func TestClient_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:1"})
	require.NoError(t, err)

	// Must not panic or block without a connection.
	client.Count("anything", 1, nil)
	client.Timing("anything", time.Second, nil)
	assert.NoError(t, client.Close())
}

func TestClient_EnabledWithoutAddressIsNoOp(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "  "})
	require.NoError(t, err)
	client.Count("anything", 1, nil)
	assert.NoError(t, client.Close())
}

func TestClient_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var client *Client
	client.Count("anything", 1, nil)
	client.Timing("anything", time.Second, nil)
	assert.NoError(t, client.Close())
}

func TestClient_MetricName(t *testing.T) {
	t.Parallel()

	withPrefix := &Client{prefix: "campushub"}
	assert.Equal(t, "campushub.login.success", withPrefix.metricName("login.success"))
	assert.Equal(t, "campushub.two_words", withPrefix.metricName(" two words "))
	assert.Empty(t, withPrefix.metricName("  "))

	bare := &Client{}
	assert.Equal(t, "login.success", bare.metricName(".login.success."))
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatTags(nil))
	assert.Empty(t, formatTags(map[string]string{}))
	assert.Empty(t, formatTags(map[string]string{" ": "dropped"}))

	// Keys are emitted in sorted order regardless of map iteration.
	got := formatTags(map[string]string{"zone": "eu", "app": "campushub", "env": " prod "})
	assert.Equal(t, "|#app:campushub,env:prod,zone:eu", got)
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.Count("login.failure", 1, nil)
	rec.Count("login.failure", 2, map[string]string{"reason": "password"})
	rec.Count("login.success", 5, nil)
	rec.Timing("ignored", time.Second, nil)

	assert.Len(t, rec.Counts(), 3)
	assert.Equal(t, int64(3), rec.CountTotal("login.failure"))
	assert.Equal(t, int64(5), rec.CountTotal("login.success"))
	assert.Zero(t, rec.CountTotal("unknown"))
}
