package escalate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreAddCountsWithinWindow(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	n, err := s.Add(ctx, EventWarning, "g1", "u1", base, time.Hour)
	require.NoError(t, err)
	assert.Equal(1, n)

	n, err = s.Add(ctx, EventWarning, "g1", "u1", base.Add(10*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(2, n)

	n, err = s.Count(ctx, EventWarning, "g1", "u1", base.Add(10*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(2, n)
}

func TestMemStorePrunesExpired(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Add(ctx, EventWarning, "g1", "u1", base, time.Hour)
	s.Add(ctx, EventWarning, "g1", "u1", base.Add(5*time.Minute), time.Hour)

	// 65 minutes later the first two have aged out
	n, err := s.Add(ctx, EventWarning, "g1", "u1", base.Add(65*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(2, n) // entry at +5m survives, plus the new one

	n, err = s.Count(ctx, EventWarning, "g1", "u1", base.Add(3*time.Hour), time.Hour)
	require.NoError(t, err)
	assert.Equal(0, n)
}

func TestMemStoreCountLeavesWindowIntact(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// three entries inside one window; the first will age out before the read
	s.Add(ctx, EventWarning, "g1", "u1", base, time.Hour)
	s.Add(ctx, EventWarning, "g1", "u1", base.Add(50*time.Minute), time.Hour)
	s.Add(ctx, EventWarning, "g1", "u1", base.Add(55*time.Minute), time.Hour)

	// a read past the first entry's expiry must not disturb the stored slice
	n, err := s.Count(ctx, EventWarning, "g1", "u1", base.Add(70*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(2, n)

	// the next write sees exactly the two survivors plus itself, not a
	// duplicated tail left behind by the read
	n, err = s.Add(ctx, EventWarning, "g1", "u1", base.Add(75*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(3, n)

	// and repeated reads agree
	n, err = s.Count(ctx, EventWarning, "g1", "u1", base.Add(75*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(3, n)
	n, err = s.Count(ctx, EventWarning, "g1", "u1", base.Add(75*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.Equal(3, n)
}

func TestMemStoreKeysAreIndependent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()
	at := time.Now()

	s.Add(ctx, EventWarning, "g1", "u1", at, time.Hour)
	s.Add(ctx, EventTimeout, "g1", "u1", at, time.Hour)
	s.Add(ctx, EventWarning, "g1", "u2", at, time.Hour)
	s.Add(ctx, EventWarning, "g2", "u1", at, time.Hour)

	n, _ := s.Count(ctx, EventWarning, "g1", "u1", at, time.Hour)
	assert.Equal(1, n)
	n, _ = s.Count(ctx, EventTimeout, "g1", "u1", at, time.Hour)
	assert.Equal(1, n)
}

func TestMemStoreReset(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()
	at := time.Now()

	s.Add(ctx, EventWarning, "g1", "u1", at, time.Hour)
	s.Add(ctx, EventWarning, "g1", "u1", at, time.Hour)
	s.Add(ctx, EventTimeout, "g1", "u1", at, time.Hour)

	require.NoError(t, s.Reset(ctx, EventWarning, "g1", "u1"))

	n, _ := s.Count(ctx, EventWarning, "g1", "u1", at, time.Hour)
	assert.Equal(0, n)

	// timeout events are untouched by a warning reset
	n, _ = s.Count(ctx, EventTimeout, "g1", "u1", at, time.Hour)
	assert.Equal(1, n)
}
