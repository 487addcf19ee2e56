package engine

import "github.com/tidwall/btree"

// OrderedPriceIndex is the ordered, keyed-by-price associative structure
// backing one side of the book: insert/remove/get in O(log n), min/max
// extraction, and bidirectional traversal, backed by
// github.com/tidwall/btree.
//
// bestIsHighest encodes the side's polarity at construction time: true
// for the bid side (best = highest price), false for the ask side (best
// = lowest price). The tree's own comparator is built so that its
// natural minimum is always the side's best price, so a single Best()
// call works uniformly for either side.
//
// Prices compare with exact IEEE-754 equality; callers must never insert
// NaN.
type OrderedPriceIndex struct {
	tree          *btree.BTreeG[*PriceLevel]
	bestIsHighest bool
}

// NewOrderedPriceIndex builds an index for one side of the book.
// bestIsHighest should be true for bids, false for asks.
func NewOrderedPriceIndex(bestIsHighest bool) *OrderedPriceIndex {
	var less func(a, b *PriceLevel) bool
	if bestIsHighest {
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Price < b.Price }
	}
	return &OrderedPriceIndex{
		tree:          btree.NewBTreeG(less),
		bestIsHighest: bestIsHighest,
	}
}

// Insert records level under its own Price, overwriting any prior level
// already indexed at that price.
func (idx *OrderedPriceIndex) Insert(level *PriceLevel) {
	idx.tree.Set(level)
}

// Remove deletes and returns the level indexed at price, if any.
func (idx *OrderedPriceIndex) Remove(price float64) (*PriceLevel, bool) {
	return idx.tree.Delete(&PriceLevel{Price: price})
}

// Get returns the level indexed at price without removing it.
func (idx *OrderedPriceIndex) Get(price float64) (*PriceLevel, bool) {
	return idx.tree.Get(&PriceLevel{Price: price})
}

// Best returns the side's extremum level — highest price for bids,
// lowest for asks — without removing it.
func (idx *OrderedPriceIndex) Best() (*PriceLevel, bool) {
	return idx.tree.Min()
}

// Size is the number of indexed (always non-empty) levels.
func (idx *OrderedPriceIndex) Size() int {
	return idx.tree.Len()
}

// BestFirst visits every level in priority order — best price first —
// until visit returns false or every level has been visited. This is
// the traversal BookSide.TopLevels uses directly, since the tree's
// comparator already encodes priority order for the side it was built
// for.
func (idx *OrderedPriceIndex) BestFirst(visit func(level *PriceLevel) bool) {
	idx.tree.Scan(visit)
}

// Ascending visits levels in true ascending-price order (lowest first),
// independent of which side the index was built for. Descending is the
// mirror, highest price first.
func (idx *OrderedPriceIndex) Ascending(visit func(level *PriceLevel) bool) {
	if idx.bestIsHighest {
		idx.tree.Reverse(visit)
	} else {
		idx.tree.Scan(visit)
	}
}

// Descending visits levels from the highest price to the lowest.
func (idx *OrderedPriceIndex) Descending(visit func(level *PriceLevel) bool) {
	if idx.bestIsHighest {
		idx.tree.Scan(visit)
	} else {
		idx.tree.Reverse(visit)
	}
}
