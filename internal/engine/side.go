package engine

import (
	"ironbook/internal/common"
)

// LevelView is a stable, independent snapshot of one price level's
// aggregate state — a value, not a live reference, so callers querying
// top levels cannot accidentally mutate book state through the result.
type LevelView struct {
	Price    float64
	Quantity uint64
}

// Fill is one resting order's participation in a single crossing step:
// a snapshot of the resting order whose Quantity is the amount consumed
// in this step, that same quantity as Size, and the price the trade
// executes at (always the resting order's price).
type Fill struct {
	Resting common.Order
	Size    uint64
	Price   float64
}

// BookSide is one side (bid or ask) of the book: an OrderedPriceIndex of
// its PriceLevels plus an OrderIndex from order id to containing level.
type BookSide struct {
	polarity   common.Side
	priceIndex *OrderedPriceIndex
	orderIndex *OrderIndex
}

// NewBookSide builds an empty side. polarity is Buy for the bid side,
// Sell for the ask side; bestIsHighest must be true for the bid side
// (best price is the highest) and false for the ask side.
func NewBookSide(polarity common.Side, bestIsHighest bool) *BookSide {
	return &BookSide{
		polarity:   polarity,
		priceIndex: NewOrderedPriceIndex(bestIsHighest),
		orderIndex: NewOrderIndex(),
	}
}

// AddResting locates or creates the level for order.Price and appends
// order to it, then records order_id -> level in the OrderIndex. It does
// not perform matching. order must already belong to this side's
// polarity.
func (s *BookSide) AddResting(order *common.Order) error {
	if _, dup := s.orderIndex.Get(order.OrderID); dup {
		return ErrDuplicateOrderID
	}
	level, ok := s.priceIndex.Get(order.Price)
	if !ok {
		level = NewPriceLevel(order.Price, s.polarity)
		s.priceIndex.Insert(level)
	}
	level.Append(order)
	s.orderIndex.Put(order.OrderID, level)
	return nil
}

// Cancel removes orderID from this side, tearing down its level if that
// was the level's last order. Returns whether orderID was present.
func (s *BookSide) Cancel(orderID string) bool {
	level, ok := s.orderIndex.Get(orderID)
	if !ok {
		return false
	}
	if _, removed := level.RemoveByID(orderID); !removed {
		return false
	}
	s.orderIndex.Delete(orderID)
	if level.IsEmpty() {
		s.priceIndex.Remove(level.Price)
	}
	return true
}

// BestPrice is the extremum price on this side — max for bids, min for
// asks — or 0 if the side is empty.
func (s *BookSide) BestPrice() float64 {
	level, ok := s.priceIndex.Best()
	if !ok {
		return 0
	}
	return level.Price
}

// TopLevels returns up to k (price, total quantity) pairs, best price
// first. k = 0 means all levels.
func (s *BookSide) TopLevels(k int) []LevelView {
	var views []LevelView
	s.priceIndex.BestFirst(func(level *PriceLevel) bool {
		views = append(views, LevelView{Price: level.Price, Quantity: level.TotalQuantity()})
		return k == 0 || len(views) < k
	})
	return views
}

// crosses reports whether bestPrice on this (opposite) side crosses
// against an incoming order priced at incomingPrice. For the ask side
// (incoming is a buy): ask_price <= buy_price. For the bid side
// (incoming is a sell): bid_price >= sell_price. Equality crosses.
func (s *BookSide) crosses(bestPrice, incomingPrice float64) bool {
	if s.polarity == common.Sell {
		return bestPrice <= incomingPrice
	}
	return bestPrice >= incomingPrice
}

// ExecuteAgainst runs the crossing algorithm: it consumes
// resting orders on this side, best price first and oldest-at-price
// first, for as long as incoming's price crosses and incoming still has
// quantity left. emit is called once per resting order that
// participates, in match order. incoming.Quantity is decremented in
// place; any residual after the call is incoming's unmatched amount.
func (s *BookSide) ExecuteAgainst(incoming *common.Order, emit func(f Fill)) {
	for incoming.Quantity > 0 {
		best, ok := s.priceIndex.Best()
		if !ok || !s.crosses(best.Price, incoming.Price) {
			return
		}

		for incoming.Quantity > 0 && !best.IsEmpty() {
			head, _ := best.PeekHead()
			filled := min(head.Quantity, incoming.Quantity)
			incoming.Quantity -= filled

			if filled == head.Quantity {
				popped, _ := best.PopHead()
				s.orderIndex.Delete(popped.OrderID)
				emit(Fill{Resting: *popped, Size: filled, Price: best.Price})
			} else {
				snapshot := *head
				snapshot.Quantity = filled
				_ = best.DecrementHead(filled)
				emit(Fill{Resting: snapshot, Size: filled, Price: best.Price})
			}
		}

		if best.IsEmpty() {
			s.priceIndex.Remove(best.Price)
		}
	}
}
