package historystore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/internal/historystore"
)

func TestRecordAndRecentRoundTrip(t *testing.T) {
	store, err := historystore.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record("3*3", "9", false))
	require.NoError(t, store.Record("1/0", "error: DivisionByZero", true))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "3*3", entries[0].Input)
	require.False(t, entries[0].IsError)
	require.Equal(t, "1/0", entries[1].Input)
	require.True(t, entries[1].IsError)
	require.Equal(t, store.SessionID.String(), entries[0].SessionID)
}

func TestRecentRespectsLimit(t *testing.T) {
	store, err := historystore.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record("x", "y", false))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestEachOpenGetsAFreshSessionID(t *testing.T) {
	a, err := historystore.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	b, err := historystore.Open(":memory:")
	require.NoError(t, err)
	defer b.Close()

	require.NotEqual(t, a.SessionID, b.SessionID)
}
