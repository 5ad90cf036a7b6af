package desktop

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLimit(t *testing.T) {
	factory := NewFactory(nil, nil)
	reg := NewRegistry(2)

	a, b := factory.New(), factory.New()
	require.NoError(t, reg.Add(a))
	require.NoError(t, reg.Add(b))
	assert.ErrorIs(t, reg.Add(factory.New()), ErrTooManySessions)
	assert.Equal(t, 2, reg.Count())

	assert.True(t, reg.Remove(a.ID()))
	assert.False(t, reg.Remove(a.ID()))
	assert.NoError(t, reg.Add(factory.New()))
}

func TestRegistryLookup(t *testing.T) {
	factory := NewFactory(nil, nil)
	reg := NewRegistry(0)

	var ids []string
	for i := 0; i < 5; i++ {
		r := factory.New()
		require.NoError(t, reg.Add(r))
		ids = append(ids, r.ID())
	}
	sort.Strings(ids)

	assert.Equal(t, ids, reg.IDs())

	got, ok := reg.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, ids[0], got.ID())

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}
