// Package book implements the ordered price-level map: a balanced
// ordered associative container keyed by price, where each price maps
// to a FIFO queue of resting orders. It wraps
// github.com/tidwall/btree's generic BTreeG, the same container the
// original order book reached for, generalized here to carry cached
// minimum/maximum price extrema so that best-bid/best-ask reads stay
// O(1) instead of walking the tree on every read.
package book

import (
	"fenrir/internal/common"
	"fenrir/internal/queue"

	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// Level is a FIFO queue of open orders resting at a single price on a
// single side. LevelMap does not inspect the queue: GetOrCreate inserts
// an empty Level, and the caller deletes the Level from the map once
// its queue drains.
type Level struct {
	Price  decimal.Decimal
	Orders *queue.FIFO[string, *common.Order]
}

func newLevel(price decimal.Decimal) *Level {
	return &Level{Price: price, Orders: queue.New[string, *common.Order]()}
}

// LevelMap is always ordered ascending by price internally; callers
// needing descending traversal (the buy side's priority order) use
// ReverseOrder.
type LevelMap struct {
	tree *btree.BTreeG[*Level]
	min  *decimal.Decimal
	max  *decimal.Decimal
}

// NewLevelMap constructs an empty ordered price-level map.
func NewLevelMap() *LevelMap {
	less := func(a, b *Level) bool { return a.Price.LessThan(b.Price) }
	return &LevelMap{tree: btree.NewBTreeG(less)}
}

// IsEmpty reports whether the map holds no price levels at all.
func (m *LevelMap) IsEmpty() bool {
	return m.tree.Len() == 0
}

// Get looks up the level resting at price, if any.
func (m *LevelMap) Get(price decimal.Decimal) (*Level, bool) {
	return m.tree.Get(&Level{Price: price})
}

// GetOrCreate returns the level at price, creating and inserting an
// empty one if absent.
func (m *LevelMap) GetOrCreate(price decimal.Decimal) *Level {
	if lvl, ok := m.Get(price); ok {
		return lvl
	}
	lvl := newLevel(price)
	m.tree.Set(lvl)
	m.onInsert(price)
	return lvl
}

// Delete removes the level at price, reporting whether one was
// present.
func (m *LevelMap) Delete(price decimal.Decimal) bool {
	_, deleted := m.tree.Delete(&Level{Price: price})
	if !deleted {
		return false
	}
	m.onDelete(price)
	return true
}

func (m *LevelMap) onInsert(price decimal.Decimal) {
	if m.min == nil || price.LessThan(*m.min) {
		p := price
		m.min = &p
	}
	if m.max == nil || price.GreaterThan(*m.max) {
		p := price
		m.max = &p
	}
}

// onDelete updates the cached extrema. Only a deletion of the current
// extremum requires a fresh minimum/maximum walk; any other deletion
// leaves the cache untouched.
func (m *LevelMap) onDelete(price decimal.Decimal) {
	if m.min != nil && price.Equal(*m.min) {
		if item, ok := m.tree.Min(); ok {
			p := item.Price
			m.min = &p
		} else {
			m.min = nil
		}
	}
	if m.max != nil && price.Equal(*m.max) {
		if item, ok := m.tree.Max(); ok {
			p := item.Price
			m.max = &p
		} else {
			m.max = nil
		}
	}
}

// Min returns the lowest resting price, or false if the map is empty.
func (m *LevelMap) Min() (decimal.Decimal, bool) {
	if m.min == nil {
		return decimal.Decimal{}, false
	}
	return *m.min, true
}

// Max returns the highest resting price, or false if the map is
// empty.
func (m *LevelMap) Max() (decimal.Decimal, bool) {
	if m.max == nil {
		return decimal.Decimal{}, false
	}
	return *m.max, true
}

// InOrder returns levels ascending by price.
func (m *LevelMap) InOrder() []*Level {
	return m.tree.Items()
}

// ReverseOrder returns levels descending by price.
func (m *LevelMap) ReverseOrder() []*Level {
	items := m.tree.Items()
	out := make([]*Level, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
