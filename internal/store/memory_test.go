package store

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetPutDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "users", "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "users", "u1", []byte(`{"a":1}`)))
	item, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), item)

	// Put overwrites
	require.NoError(t, m.Put(ctx, "users", "u1", []byte(`{"a":2}`)))
	item, err = m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), item)

	require.NoError(t, m.Delete(ctx, "users", "u1"))
	assert.ErrorIs(t, m.Delete(ctx, "users", "u1"), ErrNotFound)
}

func TestMemoryTablesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "users", "k", []byte(`u`)))
	require.NoError(t, m.Put(ctx, "managers", "k", []byte(`m`)))

	item, err := m.Get(ctx, "managers", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`m`), item)

	require.NoError(t, m.Delete(ctx, "users", "k"))
	_, err = m.Get(ctx, "managers", "k")
	assert.NoError(t, err)
}

func TestMemoryScan(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "users", "u1", []byte(`alpha`)))
	require.NoError(t, m.Put(ctx, "users", "u2", []byte(`beta`)))

	all, err := m.Scan(ctx, "users", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "nil predicate returns every item")

	filtered, err := m.Scan(ctx, "users", func(item []byte) bool {
		return bytes.Equal(item, []byte(`beta`))
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, []byte(`beta`), filtered[0])

	empty, err := m.Scan(ctx, "unknown", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "users", "u1", []byte(`abc`)))
	item, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)

	item[0] = 'x'
	again, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), again, "callers must not be able to mutate stored items")
}
