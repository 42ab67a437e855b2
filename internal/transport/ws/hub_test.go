package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, conn *Connection) (Message, bool) {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			return Message{}, false
		}
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg, true
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for hub")
		return Message{}, false
	}
}

func TestHub_BroadcastReachesOnlySessionSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	a := &Connection{SessionID: "s1", Send: make(chan []byte, 4)}
	b := &Connection{SessionID: "s2", Send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)

	h.BroadcastToSession("s1", "candidate_enrolled", map[string]string{"studentId": "stu1"})

	msg, ok := receive(t, a)
	require.True(t, ok)
	assert.Equal(t, "candidate_enrolled", msg.Type)
	assert.JSONEq(t, `{"studentId":"stu1"}`, string(msg.Payload))
	assert.Empty(t, b.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub()
	defer h.Close()

	conn := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	h.Register(conn)
	assert.Eventually(t, func() bool { return h.Subscribers("s1") == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(conn)
	_, ok := receive(t, conn)
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers("s1"))
}

func TestHub_CloseDisconnectsEveryone(t *testing.T) {
	h := NewHub()
	conn := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	h.Register(conn)

	h.Close()
	h.Close()

	_, ok := receive(t, conn)
	assert.False(t, ok)

	late := &Connection{SessionID: "s1", Send: make(chan []byte, 1)}
	h.Register(late)
	_, ok = receive(t, late)
	assert.False(t, ok)

	h.BroadcastToSession("s1", "enrollment_closed", nil)
}
