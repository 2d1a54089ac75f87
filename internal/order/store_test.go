package order

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	const user = int64(5)

	require.False(t, s.Active(user))
	require.Equal(t, ErrSessionAbsent, s.Update(user, func(st *State, d *Draft) (bool, error) {
		t.Fatal("fn must not run without a session")
		return false, nil
	}))

	d := s.Begin(user)
	require.Equal(t, user, d.UserID)
	require.True(t, s.Active(user))
	require.Equal(t, 1, s.Len())

	st, draft, ok := s.Snapshot(user)
	require.True(t, ok)
	require.Equal(t, StatePlatform, st)
	require.Equal(t, user, draft.UserID)

	require.True(t, s.Destroy(user))
	require.False(t, s.Destroy(user))
	require.False(t, s.Active(user))
	require.Zero(t, s.Len())
}

func TestStoreUpdateDestroy(t *testing.T) {
	s := NewStore()
	const user = int64(6)
	s.Begin(user)

	err := s.Update(user, func(st *State, d *Draft) (bool, error) {
		d.Platform = "Twitter"
		*st = StateService
		return false, nil
	})
	require.NoError(t, err)

	st, draft, ok := s.Snapshot(user)
	require.True(t, ok)
	require.Equal(t, StateService, st)
	require.Equal(t, "Twitter", draft.Platform)

	err = s.Update(user, func(st *State, d *Draft) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	require.False(t, s.Active(user))
}

func TestStoreBeginReplacesSession(t *testing.T) {
	s := NewStore()
	const user = int64(8)

	s.Begin(user)
	require.NoError(t, s.Update(user, func(st *State, d *Draft) (bool, error) {
		d.Platform = "Instagram"
		return false, nil
	}))

	s.Begin(user)
	_, draft, ok := s.Snapshot(user)
	require.True(t, ok)
	require.Empty(t, draft.Platform, "restart must discard the old draft")
	require.Equal(t, 1, s.Len())
}

// Duplicate taps from the same user race through Update; every invocation
// must observe a fully committed predecessor.
func TestStoreUpdateSerializesPerUser(t *testing.T) {
	s := NewStore()
	const user = int64(9)
	s.Begin(user)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = s.Update(user, func(st *State, d *Draft) (bool, error) {
				d.Quantity++
				return false, nil
			})
		}()
	}
	wg.Wait()

	_, draft, ok := s.Snapshot(user)
	require.True(t, ok)
	require.Equal(t, workers, draft.Quantity)
}

func TestStoreIsolatesUsers(t *testing.T) {
	s := NewStore()
	s.Begin(1)
	s.Begin(2)

	require.NoError(t, s.Update(1, func(st *State, d *Draft) (bool, error) {
		d.Platform = "Twitter"
		return false, nil
	}))

	_, other, ok := s.Snapshot(2)
	require.True(t, ok)
	require.Empty(t, other.Platform)
	require.True(t, s.Destroy(1))
	require.True(t, s.Active(2))
}
