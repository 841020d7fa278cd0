package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
)

// MockStore implements core.Store in memory.
// It keeps the serialized slot so tests can assert on the exact persisted bytes.
type MockStore struct {
	mu    sync.Mutex
	slot  []byte
	saves int
}

func (m *MockStore) Load(ctx context.Context) ([]core.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.slot == nil {
		return []core.Note{}, nil
	}
	var notes []core.Note
	if err := json.Unmarshal(m.slot, &notes); err != nil {
		return []core.Note{}, nil
	}
	return notes, nil
}

func (m *MockStore) Save(ctx context.Context, notes []core.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	m.slot = data
	m.saves++
	return nil
}

func (m *MockStore) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.slot...)
}

// fixedClock returns a clock frozen at t, so several notes share one tick.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newService(store core.Store) *core.Service {
	return core.NewService(store, core.WithClock(fixedClock(time.UnixMilli(1_700_000_000_000))))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Prepends New Note", func(t *testing.T) {
		store := &MockStore{}
		require.NoError(t, store.Save(ctx, []core.Note{{ID: 1, Text: "Buy milk", Category: "todo", Timestamp: 1}}))
		svc := newService(store)

		note, err := svc.Create(ctx, "Call mom", "personal")
		require.NoError(t, err)

		notes, err := svc.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, note, notes[0])
		assert.Equal(t, "Call mom", notes[0].Text)
		assert.Equal(t, "personal", notes[0].Category)
		assert.Equal(t, int64(1), notes[1].ID)
		assert.NotEqual(t, int64(1), note.ID)
	})

	t.Run("Trims Text And Defaults Category", func(t *testing.T) {
		svc := newService(&MockStore{})

		note, err := svc.Create(ctx, "  hello  ", "")
		require.NoError(t, err)
		assert.Equal(t, "hello", note.Text)
		assert.Equal(t, core.CategoryNone, note.Category)
		assert.Equal(t, int64(1_700_000_000_000), note.Timestamp)
	})

	t.Run("Rejects Empty Text Before Persisting", func(t *testing.T) {
		store := &MockStore{}
		svc := newService(store)
		_, err := svc.Create(ctx, "seed", "work")
		require.NoError(t, err)
		before := store.Bytes()

		for _, text := range []string{"", "   ", "\n\t"} {
			_, err := svc.Create(ctx, text, "work")
			assert.ErrorIs(t, err, core.ErrValidation)
		}
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, before, store.Bytes())
	})

	t.Run("Rejects Unknown Category", func(t *testing.T) {
		store := &MockStore{}
		svc := newService(store)

		_, err := svc.Create(ctx, "text", "groceries")
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Zero(t, store.saves)
	})

	t.Run("Same Tick Ids Never Collide", func(t *testing.T) {
		svc := newService(&MockStore{})

		seen := make(map[int64]bool)
		for i := 0; i < 50; i++ {
			n, err := svc.Create(ctx, "note", "ideas")
			require.NoError(t, err)
			if seen[n.ID] {
				t.Fatalf("duplicate id %d at iteration %d", n.ID, i)
			}
			seen[n.ID] = true
		}
	})

	t.Run("Ids Stay Above Existing Collection", func(t *testing.T) {
		store := &MockStore{}
		future := int64(9_999_999_999_999)
		require.NoError(t, store.Save(ctx, []core.Note{{ID: future, Text: "from the future", Category: "other"}}))
		svc := newService(store)

		n, err := svc.Create(ctx, "now", "other")
		require.NoError(t, err)
		assert.Greater(t, n.ID, future)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Edits In Place Preserving Id And Order", func(t *testing.T) {
		store := &MockStore{}
		now := time.UnixMilli(1_700_000_000_000)
		svc := core.NewService(store, core.WithClock(func() time.Time { return now }))

		first, err := svc.Create(ctx, "first", "work")
		require.NoError(t, err)
		second, err := svc.Create(ctx, "second", "work")
		require.NoError(t, err)

		now = now.Add(time.Minute)
		updated, err := svc.Update(ctx, first.ID, "first, edited", "ideas")
		require.NoError(t, err)

		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "first, edited", updated.Text)
		assert.Equal(t, "ideas", updated.Category)
		assert.Equal(t, now.UnixMilli(), updated.Timestamp)

		notes, err := svc.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, second.ID, notes[0].ID, "edit must not move the note to the front")
		assert.Equal(t, updated, notes[1])
	})

	t.Run("Missing Id Is NotFound Without Writing", func(t *testing.T) {
		store := &MockStore{}
		svc := newService(store)
		_, err := svc.Create(ctx, "only", "work")
		require.NoError(t, err)
		before := store.Bytes()

		_, err = svc.Update(ctx, 42, "text", "work")
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, before, store.Bytes())
	})

	t.Run("Empty Text Is ValidationError", func(t *testing.T) {
		svc := newService(&MockStore{})
		n, err := svc.Create(ctx, "only", "work")
		require.NoError(t, err)

		_, err = svc.Update(ctx, n.ID, " ", "work")
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Existing Note", func(t *testing.T) {
		svc := newService(&MockStore{})
		n, err := svc.Create(ctx, "bye", "other")
		require.NoError(t, err)

		removed, err := svc.Remove(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = svc.FindByID(ctx, n.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Absent Id Leaves Bytes Unchanged", func(t *testing.T) {
		store := &MockStore{}
		svc := newService(store)
		_, err := svc.Create(ctx, "keep", "other")
		require.NoError(t, err)
		before := store.Bytes()

		removed, err := svc.Remove(ctx, 12345)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, before, store.Bytes())
		assert.Equal(t, 1, store.saves)
	})

	t.Run("Is Idempotent", func(t *testing.T) {
		store := &MockStore{}
		svc := newService(store)
		n, err := svc.Create(ctx, "once", "other")
		require.NoError(t, err)

		removed, err := svc.Remove(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		after := store.Bytes()

		removed, err = svc.Remove(ctx, n.ID)
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, after, store.Bytes())
	})
}

func TestService_RoundTripAfterEveryOperation(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	svc := newService(store)

	check := func(step string) {
		t.Helper()
		var decoded []core.Note
		require.NoError(t, json.Unmarshal(store.Bytes(), &decoded), step)
		reencoded, err := json.Marshal(decoded)
		require.NoError(t, err, step)
		assert.JSONEq(t, string(store.Bytes()), string(reencoded), step)

		loaded, err := svc.FindAll(ctx)
		require.NoError(t, err, step)
		assert.Equal(t, decoded, loaded, step)
	}

	a, err := svc.Create(ctx, "alpha", "work")
	require.NoError(t, err)
	check("create alpha")

	b, err := svc.Create(ctx, "beta \"quoted\" ünïcode", "ideas")
	require.NoError(t, err)
	check("create beta")

	_, err = svc.Update(ctx, a.ID, "alpha 2", "")
	require.NoError(t, err)
	check("update alpha")

	_, err = svc.Remove(ctx, b.ID)
	require.NoError(t, err)
	check("remove beta")

	require.NoError(t, svc.Clear(ctx))
	check("clear")
}

func TestService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(&MockStore{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, "parallel", "work")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	notes, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 20, "no update may be lost")
}

type failingStore struct{ MockStore }

func (f *failingStore) Save(ctx context.Context, notes []core.Note) error {
	return errors.New("disk full")
}

func TestService_SaveFailureLeavesCollection(t *testing.T) {
	ctx := context.Background()
	svc := newService(&failingStore{})

	_, err := svc.Create(ctx, "text", "work")
	require.Error(t, err)

	notes, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc := core.NewService(&MockStore{})

	_, err := svc.Watch(context.TODO())
	if err == nil {
		t.Fatal("expected error for non-watchable store")
	}
	if err.Error() != "store does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}
