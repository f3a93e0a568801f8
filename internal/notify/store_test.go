package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddPrependsAndAssignsFields(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)

	first := s.Add(Notification{Type: TypeInfo, Title: "first"})
	second := s.Add(Notification{Type: TypeSuccess, Title: "second"})

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Read)
	assert.False(t, second.CreatedAt.IsZero())

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Title, "newest entry comes first")
	assert.Equal(t, "first", entries[1].Title)
}

func TestStore_CapDropsOldestFirst(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	for i := 0; i < MaxEntries+5; i++ {
		s.Add(Notification{Type: TypeInfo, Title: title(i)})
	}

	entries := s.List()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, title(MaxEntries+4), entries[0].Title, "newest survives")
	assert.Equal(t, title(5), entries[MaxEntries-1].Title, "the five oldest were dropped")
}

func title(i int) string {
	return fmt.Sprintf("entry-%02d", i)
}

func TestStore_UnreadCountAndMarkRead(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	a := s.Add(Notification{Type: TypeInfo, Title: "a"})
	s.Add(Notification{Type: TypeInfo, Title: "b"})

	assert.Equal(t, 2, s.UnreadCount())

	assert.True(t, s.MarkRead(a.ID))
	assert.Equal(t, 1, s.UnreadCount())

	assert.False(t, s.MarkRead("no-such-id"))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_MarkAllReadPreservesEntries(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	a := s.Add(Notification{Type: TypeInfo, Title: "a"})
	b := s.Add(Notification{Type: TypeWarning, Title: "b"})

	s.MarkAllRead()

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, 0, s.UnreadCount())

	// Only the read flag changes: ids, timestamps and ordering are untouched.
	assert.Equal(t, b.ID, entries[0].ID)
	assert.Equal(t, a.ID, entries[1].ID)
	assert.Equal(t, b.CreatedAt, entries[0].CreatedAt)
	assert.True(t, entries[0].Read)
	assert.True(t, entries[1].Read)
}

func TestStore_RemoveAndClear(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	a := s.Add(Notification{Type: TypeInfo, Title: "a"})
	s.Add(Notification{Type: TypeInfo, Title: "b"})

	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID), "removing twice fails the second time")
	require.Len(t, s.List(), 1)

	s.ClearAll()
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStore_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	s.Add(Notification{Type: TypeInfo, Title: "original"})

	entries := s.List()
	entries[0].Title = "mutated"

	assert.Equal(t, "original", s.List()[0].Title)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.json")
	p := NewFilePersister(path)

	s := NewStore(p)
	a := s.Add(Notification{Type: TypeSuccess, Title: "survives restart", Link: "/plans/1"})
	s.Add(Notification{Type: TypeInfo, Title: "second"})
	require.True(t, s.MarkRead(a.ID))

	reloaded := NewStore(NewFilePersister(path))
	entries := reloaded.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Title)
	assert.Equal(t, a.ID, entries[1].ID)
	assert.True(t, entries[1].Read)
	assert.Equal(t, "/plans/1", entries[1].Link)
	assert.Equal(t, 1, reloaded.UnreadCount())
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(NewFilePersister(path))
	assert.Empty(t, s.List())

	// The store is still writable after a corrupt load.
	s.Add(Notification{Type: TypeInfo, Title: "fresh"})
	assert.Len(t, s.List(), 1)
}

func TestCenter_SeparateStoresPerUser(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := NewCenter(dir)

	c.ForUser("alice").Add(Notification{Type: TypeInfo, Title: "for alice"})

	assert.Empty(t, c.ForUser("bob").List())
	assert.Len(t, c.ForUser("alice").List(), 1)
	assert.Same(t, c.ForUser("alice"), c.ForUser("alice"))

	// Each user's log lands in its own file.
	_, err := os.Stat(filepath.Join(dir, "notifications_alice.json"))
	assert.NoError(t, err)
}
