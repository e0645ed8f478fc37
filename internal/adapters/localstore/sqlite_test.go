package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"meetinggate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_KeyValue(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Session(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, s.Token(ctx))

	session := &domain.UserSession{ID: "u1", Username: "alice", Token: "jwt"}
	require.NoError(t, s.Save(ctx, session))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)
	assert.Equal(t, "jwt", s.Token(ctx))

	raw, ok, err := s.Get(ctx, domain.UserSessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"u1","username":"alice","token":"jwt"}`, raw)

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptSession(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	require.NoError(t, s.Set(ctx, domain.UserSessionKey, "{not json"))

	_, err := s.Load(ctx)
	require.Error(t, err)
	assert.Empty(t, s.Token(ctx))
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "gate.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &domain.UserSession{ID: "u1"}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}
