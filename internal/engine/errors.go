package engine

import "errors"

// Error kinds the engine distinguishes. Not-found conditions are never
// returned as errors — cancel and trade lookup report those as plain
// booleans/zero values, ordinary outcomes rather than failures.
var (
	// ErrInvalidPrice is returned when an order's price is negative or NaN.
	ErrInvalidPrice = errors.New("engine: invalid price")
	// ErrInvalidQuantity is returned when an order's quantity is zero, and
	// by PriceLevel.DecrementHead when n is not in 0 < n < head.Quantity.
	ErrInvalidQuantity = errors.New("engine: invalid quantity")
	// ErrDuplicateOrderID is returned when an order id is already resting:
	// OrderBook.Submit checks both sides, BookSide.AddResting its own side.
	ErrDuplicateOrderID = errors.New("engine: duplicate order id")
	// ErrEmptyLevel is returned by PriceLevel operations that require a
	// non-empty queue (pop/decrement) when none is present; PeekHead
	// reports an empty level with a false second result instead.
	ErrEmptyLevel = errors.New("engine: price level is empty")
)
