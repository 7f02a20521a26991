package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
)

func newSnapshot() session.Snapshot {
	return session.Snapshot{
		ID:        core.SnapshotID(core.NewID()),
		SessionID: core.SessionID(core.NewID()),
		CreatedAt: core.Now(),
	}
}

func TestSnapshotStore_PutGet(t *testing.T) {
	store := NewSnapshotStore(time.Hour)
	snap := newSnapshot()
	store.Put(snap)

	got, err := store.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)

	_, err = store.Get(core.SnapshotID(core.NewID()))
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
}

func TestSnapshotStore_Expiry(t *testing.T) {
	store := NewSnapshotStore(time.Hour)
	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	snap := newSnapshot()
	store.Put(snap)

	current = current.Add(59 * time.Minute)
	_, err := store.Get(snap.ID)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = store.Get(snap.ID)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)

	// Expired entries linger until the janitor sweeps them.
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.CleanupExpired())
	assert.Equal(t, 0, store.Len())
}

func TestSnapshotStore_Delete(t *testing.T) {
	store := NewSnapshotStore(time.Hour)
	snap := newSnapshot()
	store.Put(snap)
	store.Delete(snap.ID)

	_, err := store.Get(snap.ID)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
}
