package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/app"
	"github.com/blackeffigyeel/exam-orch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	a, err := app.New(ctx, &config.Config{
		StoreBackend: config.BackendMemory,
		StoreTimeout: time.Second,
		CacheTTL:     time.Minute,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		a.Close(ctx)
	})
	return srv
}

func TestSeed_FillsSessionsAndWaitlist(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer

	results, err := seed(context.Background(), &out, seedOptions{
		baseURL:    srv.URL,
		sessions:   2,
		candidates: 3,
		capacity:   2,
		duration:   90,
		start:      time.Now().Add(24 * time.Hour).UTC().Truncate(time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, results, 8)

	for _, r := range results {
		assert.False(t, r.failed, "%s %s: %s", r.session, r.subject, r.detail)
	}
	assert.Equal(t, "enrolled", results[0].status)
	assert.Equal(t, "enrolled", results[1].status)
	assert.Equal(t, "waitlisted", results[2].status)
	assert.Equal(t, "position 1", results[2].detail)
	assert.Equal(t, "proctor assigned", results[3].status)

	assert.Contains(t, out.String(), "Algorithms Final")
	assert.Contains(t, out.String(), "All 8 requests succeeded")
}

func TestSeed_OverlappingSessionsAreRejected(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer

	results, err := seed(context.Background(), &out, seedOptions{
		baseURL:    srv.URL,
		sessions:   2,
		candidates: 1,
		capacity:   5,
		duration:   180,
		start:      time.Now().Add(24 * time.Hour).UTC().Truncate(time.Minute),
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.False(t, results[0].failed)
	assert.False(t, results[1].failed)
	assert.True(t, results[2].failed)
	assert.Contains(t, results[2].detail, "400")
	assert.True(t, results[3].failed)
	assert.Contains(t, out.String(), "2 of 4 requests rejected")
}

func TestSeed_UnreachableServer(t *testing.T) {
	var out bytes.Buffer
	_, err := seed(context.Background(), &out, seedOptions{
		baseURL:  "http://127.0.0.1:1",
		sessions: 1,
		duration: 60,
		capacity: 1,
		start:    time.Now().Add(time.Hour),
	})
	assert.ErrorContains(t, err, "create session")
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--base-url", "http://example.test", "--sessions", "5"}))

	baseURL, err := cmd.Flags().GetString("base-url")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", baseURL)

	sessions, err := cmd.Flags().GetInt("sessions")
	require.NoError(t, err)
	assert.Equal(t, 5, sessions)
}
