package pure_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/hook_ive_go/pure"

	"github.com/stretchr/testify/assert"
)

func TestMemoCell_Idempotence(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return 42, nil
	}

	v1, err := cell.Get(compute, pure.KeyOf("query"), pure.KeyOf(10))
	assert.NoError(t, err)
	v2, err := cell.Get(compute, pure.KeyOf("query"), pure.KeyOf(10))
	assert.NoError(t, err)

	assert.Equal(t, 42, v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, count)
}

func TestMemoCell_InvalidationByElement(t *testing.T) {
	cell := pure.NewMemoCell[string]()
	count := 0

	for _, q := range []string{"a", "b"} {
		q := q
		_, err := cell.Get(func() (string, error) {
			count++
			return q, nil
		}, pure.KeyOf(q))
		assert.NoError(t, err)
	}

	assert.Equal(t, 2, count)
}

func TestMemoCell_InvalidationByLength(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return count, nil
	}

	_, _ = cell.Get(compute, pure.KeyOf(1))
	_, _ = cell.Get(compute, pure.KeyOf(1), pure.KeyOf(2))

	assert.Equal(t, 2, count)
}

func TestMemoCell_EmptyDepsComputeOnce(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return 2 + 2, nil
	}

	for i := 0; i < 3; i++ {
		v, err := cell.Get(compute)
		assert.NoError(t, err)
		assert.Equal(t, 4, v)
	}
	assert.Equal(t, 1, count)
}

func TestMemoCell_FreshObjectKeyRecomputesEveryCall(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return count, nil
	}

	// The documented anti-pattern: a freshly-constructed composite as a
	// dependency key defeats memoization entirely.
	for i := 0; i < 3; i++ {
		_, err := cell.Get(compute, pure.KeyOf(struct{ A, B int }{1, 2}))
		assert.NoError(t, err)
	}
	assert.Equal(t, 3, count)
}

func TestMemoCell_ComputeErrorLeavesCellUntouched(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	boom := errors.New("boom")
	count := 0

	_, err := cell.Get(func() (int, error) {
		count++
		return 0, boom
	}, pure.KeyOf("k"))
	assert.ErrorIs(t, err, boom)

	// Same deps retry instead of returning a poisoned cache.
	v, err := cell.Get(func() (int, error) {
		count++
		return 7, nil
	}, pure.KeyOf("k"))
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, count)

	// And the successful value is now cached.
	_, cached := cell.Cached()
	assert.True(t, cached)
}

func TestMemoCell_ErrorDoesNotEvictPreviousValue(t *testing.T) {
	cell := pure.NewMemoCell[int]()

	v, err := cell.Get(func() (int, error) { return 1, nil }, pure.KeyOf("a"))
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = cell.Get(func() (int, error) { return 0, errors.New("boom") }, pure.KeyOf("b"))
	assert.Error(t, err)

	// The old slot survives: going back to the old deps hits the cache.
	count := 0
	v, err = cell.Get(func() (int, error) { count++; return -1, nil }, pure.KeyOf("a"))
	assert.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, count)
}

func TestMemoCell_Reset(t *testing.T) {
	cell := pure.NewMemoCell[int]()
	count := 0
	compute := func() (int, error) {
		count++
		return 5, nil
	}

	_, _ = cell.Get(compute, pure.KeyOf(1))
	cell.Reset()
	_, _ = cell.Get(compute, pure.KeyOf(1))

	assert.Equal(t, 2, count)
}
