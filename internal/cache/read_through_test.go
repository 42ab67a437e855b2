package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadThrough_FillAndInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Minute)
	rt := NewReadThrough(c)

	stored, err := rt.Fill(ctx, testSession("a", "s1"), rt.Generation("a"))
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := rt.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.EnrolledCandidates.Has("s1"))

	require.NoError(t, rt.Invalidate(ctx, "a"))
	got, err = rt.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadThrough_DropsFillOlderThanInvalidation(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Minute)
	rt := NewReadThrough(c)

	gen := rt.Generation("a")
	stale := testSession("a")
	require.NoError(t, rt.Invalidate(ctx, "a"))

	stored, err := rt.Fill(ctx, stale, gen)
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := rt.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	stored, err = rt.Fill(ctx, testSession("a", "s1"), rt.Generation("a"))
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestReadThrough_GenerationsArePerSession(t *testing.T) {
	ctx := context.Background()
	rt := NewReadThrough(NewNopSessionCache())

	genB := rt.Generation("b")
	require.NoError(t, rt.Invalidate(ctx, "a"))

	assert.Equal(t, uint64(1), rt.Generation("a"))
	stored, err := rt.Fill(ctx, testSession("b"), genB)
	require.NoError(t, err)
	assert.True(t, stored)
}
