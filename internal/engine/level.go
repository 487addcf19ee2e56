package engine

import "ironbook/internal/common"

// PriceLevel is a FIFO queue of resting orders at a single price, plus a
// running sum of their quantities. It encodes time priority: the head of
// the queue is the oldest order still resting at this price, and it must
// be matched before any younger order at the same price.
//
// Every order appended to a level must share the level's Price and Side;
// callers above (BookSide) are responsible for routing orders to the
// right level and never mix sides within one level.
type PriceLevel struct {
	Price    float64
	Side     common.Side
	orders   []*common.Order // head = orders[0], oldest first
	quantity uint64          // sum of orders[i].Quantity
}

// NewPriceLevel creates an empty level at price for the given side.
func NewPriceLevel(price float64, side common.Side) *PriceLevel {
	return &PriceLevel{Price: price, Side: side}
}

// Append places order at the tail of the queue.
func (l *PriceLevel) Append(order *common.Order) {
	l.orders = append(l.orders, order)
	l.quantity += order.Quantity
}

// PeekHead returns the oldest resting order without removing it.
func (l *PriceLevel) PeekHead() (*common.Order, bool) {
	if len(l.orders) == 0 {
		return nil, false
	}
	return l.orders[0], true
}

// PopHead removes and returns the oldest resting order, adjusting the
// running quantity total.
func (l *PriceLevel) PopHead() (*common.Order, error) {
	if len(l.orders) == 0 {
		return nil, ErrEmptyLevel
	}
	head := l.orders[0]
	l.orders = l.orders[1:]
	l.quantity -= head.Quantity
	return head, nil
}

// RemoveByID scans the queue for orderID and removes it, wherever it
// sits in the queue. Expected cost is O(queue length); cancellation is
// rare on hot levels, so a linear scan is an acceptable trade-off.
func (l *PriceLevel) RemoveByID(orderID string) (*common.Order, bool) {
	for i, o := range l.orders {
		if o.OrderID != orderID {
			continue
		}
		l.orders = append(l.orders[:i], l.orders[i+1:]...)
		l.quantity -= o.Quantity
		return o, true
	}
	return nil, false
}

// DecrementHead reduces the head order's quantity by n, where
// 0 < n < head.Quantity. Used for partial fills that do not fully
// consume the head order; the head keeps its queue position.
func (l *PriceLevel) DecrementHead(n uint64) error {
	if len(l.orders) == 0 {
		return ErrEmptyLevel
	}
	head := l.orders[0]
	if n == 0 || n >= head.Quantity {
		return ErrInvalidQuantity
	}
	head.Quantity -= n
	l.quantity -= n
	return nil
}

// IsEmpty reports whether the level holds no orders.
func (l *PriceLevel) IsEmpty() bool {
	return len(l.orders) == 0
}

// TotalQuantity returns the sum of the resting orders' quantities.
func (l *PriceLevel) TotalQuantity() uint64 {
	return l.quantity
}

// Orders returns the resting orders in FIFO order. Callers must not
// mutate the returned slice; it aliases the level's internal queue.
func (l *PriceLevel) Orders() []*common.Order {
	return l.orders
}
