package geoloc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	fix   Fix
	err   error
	calls int
	block bool
}

func (s *fakeSource) Locate(ctx context.Context, highAccuracy bool) (Fix, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return Fix{}, ctx.Err()
	}
	if s.err != nil {
		return Fix{}, s.err
	}
	return s.fix, nil
}

func TestAcquirerSuccess(t *testing.T) {
	source := &fakeSource{fix: Fix{Latitude: -7.95, Longitude: 112.61}}
	acquirer := NewAcquirer(source, DefaultOptions())

	fix, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -7.95, fix.Latitude)
	assert.Equal(t, 112.61, fix.Longitude)
	assert.False(t, fix.AcquiredAt.IsZero())

	last := acquirer.LastFix()
	require.NotNil(t, last)
	assert.Equal(t, fix.Latitude, last.Latitude)
	assert.NoError(t, acquirer.LastError())
}

func TestAcquirerNilSourceFailsImmediately(t *testing.T) {
	acquirer := NewAcquirer(nil, DefaultOptions())

	_, err := acquirer.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, acquirer.LastError(), ErrUnavailable)
	assert.Nil(t, acquirer.LastFix())
}

func TestAcquirerTimeout(t *testing.T) {
	source := &fakeSource{block: true}
	opts := DefaultOptions()
	opts.Timeout = 20 * time.Millisecond
	acquirer := NewAcquirer(source, opts)

	_, err := acquirer.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, acquirer.LastError(), ErrTimeout)
}

func TestAcquirerCachedFixSkipsSource(t *testing.T) {
	source := &fakeSource{fix: Fix{Latitude: 1, Longitude: 2}}
	acquirer := NewAcquirer(source, DefaultOptions())

	_, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	// Second call within MaxFixAge is served from the cache.
	fix, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1.0, fix.Latitude)
}

func TestAcquirerStaleFixRefetches(t *testing.T) {
	source := &fakeSource{fix: Fix{Latitude: 1, Longitude: 2}}
	acquirer := NewAcquirer(source, DefaultOptions())

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	acquirer.now = func() time.Time { return base }

	_, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	// Advance past MaxFixAge: the cached fix is stale.
	acquirer.now = func() time.Time { return base.Add(6 * time.Minute) }
	source.fix = Fix{Latitude: 3, Longitude: 4}

	fix, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 3.0, fix.Latitude)
}

func TestAcquirerFailureKeepsPreviousFix(t *testing.T) {
	source := &fakeSource{fix: Fix{Latitude: 5, Longitude: 6}}
	opts := DefaultOptions()
	opts.MaxFixAge = 0 // force a source call every time
	acquirer := NewAcquirer(source, opts)

	_, err := acquirer.Acquire(context.Background())
	require.NoError(t, err)

	source.err = ErrPermissionDenied
	_, err = acquirer.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The earlier fix survives the failed retry.
	last := acquirer.LastFix()
	require.NotNil(t, last)
	assert.Equal(t, 5.0, last.Latitude)
	assert.ErrorIs(t, acquirer.LastError(), ErrPermissionDenied)
}
