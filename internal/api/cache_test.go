package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoComputesOnce(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() (string, error) {
		calls++
		return "value", nil
	}

	for range 3 {
		v, err := Memo(c, "k", load)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)
}

func TestMemoDoesNotCacheFailures(t *testing.T) {
	c := NewCache()
	calls := 0
	boom := errors.New("boom")

	_, err := Memo(c, "k", func() (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := Memo(c, "k", func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestMemoKeysAreIndependent(t *testing.T) {
	c := NewCache()
	a, err := Memo(c, "a", func() (string, error) { return "first", nil })
	require.NoError(t, err)
	b, err := Memo(c, "b", func() (string, error) { return "second", nil })
	require.NoError(t, err)
	assert.Equal(t, "first", a)
	assert.Equal(t, "second", b)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() (int, error) {
		calls++
		return calls, nil
	}

	v, err := Memo(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	c.Invalidate("k")

	v, err = Memo(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
