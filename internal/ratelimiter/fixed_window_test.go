package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedWindowLimitsPerClient(t *testing.T) {
	fw := NewFixedWindow(2, time.Minute)

	ok, _ := fw.Allow("1.2.3.4")
	require.True(t, ok)
	ok, _ = fw.Allow("1.2.3.4")
	require.True(t, ok)

	ok, retry := fw.Allow("1.2.3.4")
	require.False(t, ok)
	require.Greater(t, retry, time.Duration(0))

	// other clients are unaffected
	ok, _ = fw.Allow("5.6.7.8")
	require.True(t, ok)
}

func TestFixedWindowResets(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fw := NewFixedWindow(1, time.Minute)
	fw.now = func() time.Time { return clock }

	ok, _ := fw.Allow("1.2.3.4")
	require.True(t, ok)
	ok, _ = fw.Allow("1.2.3.4")
	require.False(t, ok)

	clock = clock.Add(time.Minute)
	ok, _ = fw.Allow("1.2.3.4")
	require.True(t, ok)
}
