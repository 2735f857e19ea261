package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = User{ID: 1, Name: "Alice", Email: "a@x.com"}

type failingStore struct {
	MemoryStore
}

func (f *failingStore) Save(State) error { return errors.New("disk full") }
func (f *failingStore) Clear() error     { return errors.New("read-only") }

func TestSession_SetAndClear(t *testing.T) {
	store := &MemoryStore{}
	s, err := New(store)
	require.NoError(t, err)
	assert.False(t, s.IsLoggedIn())

	require.NoError(t, s.Set(alice, "tok"))
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "tok", s.Token())
	got, ok := s.User()
	assert.True(t, ok)
	assert.Equal(t, alice, got)
	assert.Equal(t, "tok", store.State.Token, "written through")

	require.NoError(t, s.Clear())
	assert.False(t, s.IsLoggedIn())
	_, ok = s.User()
	assert.False(t, ok)
	assert.Equal(t, State{}, store.State)
}

func TestSession_RehydratesFromStore(t *testing.T) {
	store := &MemoryStore{State: State{User: &alice, Token: "tok"}}

	s, err := New(store)
	require.NoError(t, err)
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "tok", s.Token())
}

func TestSession_FailedWriteLeavesMemoryUnchanged(t *testing.T) {
	store := &failingStore{MemoryStore{State: State{User: &alice, Token: "old"}}}
	s, err := New(store)
	require.NoError(t, err)

	assert.Error(t, s.Set(User{ID: 2}, "new"))
	assert.Equal(t, "old", s.Token())

	assert.Error(t, s.Clear())
	assert.True(t, s.IsLoggedIn())
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, State{}, state)

	s, err := New(store)
	require.NoError(t, err)
	require.NoError(t, s.Set(alice, "tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileMode), info.Mode().Perm())

	reloaded, err := New(NewFileStore(path))
	require.NoError(t, err)
	assert.True(t, reloaded.IsLoggedIn())
	got, _ := reloaded.User()
	assert.Equal(t, alice, got)

	require.NoError(t, reloaded.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := New(NewFileStore(path))
	assert.Error(t, err)
}
