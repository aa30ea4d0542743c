package book

import (
	"testing"

	"fenrir/internal/common"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestLevelMap_MinMaxCacheAcrossInsertDelete(t *testing.T) {
	m := NewLevelMap()
	_, ok := m.Min()
	assert.False(t, ok)

	m.GetOrCreate(d("100"))
	m.GetOrCreate(d("99"))
	m.GetOrCreate(d("101"))

	min, ok := m.Min()
	require.True(t, ok)
	assert.True(t, min.Equal(d("99")))

	max, ok := m.Max()
	require.True(t, ok)
	assert.True(t, max.Equal(d("101")))

	// Deleting a non-extremal level leaves the cache untouched.
	m.Delete(d("100"))
	min, ok = m.Min()
	require.True(t, ok)
	assert.True(t, min.Equal(d("99")))

	// Deleting the current minimum forces a recompute.
	m.Delete(d("99"))
	min, ok = m.Min()
	require.True(t, ok)
	assert.True(t, min.Equal(d("101")))

	m.Delete(d("101"))
	assert.True(t, m.IsEmpty())
	_, ok = m.Min()
	assert.False(t, ok)
	_, ok = m.Max()
	assert.False(t, ok)
}

func TestLevelMap_InOrderAndReverseOrder(t *testing.T) {
	m := NewLevelMap()
	for _, p := range []string{"10", "5", "20", "15"} {
		m.GetOrCreate(d(p))
	}

	asc := m.InOrder()
	want := []string{"5", "10", "15", "20"}
	require.Len(t, asc, len(want))
	for i, lvl := range asc {
		assert.True(t, lvl.Price.Equal(d(want[i])), "index %d", i)
	}

	desc := m.ReverseOrder()
	require.Len(t, desc, len(want))
	for i, lvl := range desc {
		assert.True(t, lvl.Price.Equal(d(want[len(want)-1-i])), "index %d", i)
	}
}

func TestLevelMap_GetOrCreateReturnsSameLevel(t *testing.T) {
	m := NewLevelMap()
	lvl := m.GetOrCreate(d("42"))
	require.NoError(t, lvl.Orders.Enqueue("o1", &common.Order{OrderID: "o1"}))

	again := m.GetOrCreate(d("42"))
	assert.Same(t, lvl, again)
	assert.Equal(t, 1, again.Orders.Len())
}
