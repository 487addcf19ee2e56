package engine

import (
	"fmt"
	"math"
	"time"

	"ironbook/internal/common"
)

// OrderBook is the top-level component of the matching engine: a pair of
// BookSides plus an append-only trade log. Submit crosses an incoming
// order against the opposite side and posts any residual to its own side.
//
// OrderBook is not safe for concurrent use; callers must serialize
// Submit/Cancel calls (internal/net's single-writer session handler does
// this for the TCP server).
type OrderBook struct {
	bid *BookSide
	ask *BookSide

	trades     []common.Trade
	tradesByID map[string]common.Trade
	nextTrade  uint64
}

// New creates an empty order book for a single instrument.
func New() *OrderBook {
	return &OrderBook{
		bid:        NewBookSide(common.Buy, true),
		ask:        NewBookSide(common.Sell, false),
		tradesByID: make(map[string]common.Trade),
	}
}

// validate rejects the invariant-violating cases before any state
// changes: NaN or negative price, zero quantity.
func validate(order common.Order) error {
	if math.IsNaN(order.Price) || order.Price < 0 {
		return ErrInvalidPrice
	}
	if order.Quantity == 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Submit deep-copies incoming (the caller's storage may be reclaimed
// after return), runs the crossing algorithm against the opposite side,
// records one Trade per fill, and — if quantity remains — rests the
// residual on incoming's own side. It returns the trade ids produced, in
// match order, or an empty (never nil) slice when there were no fills.
//
// On any validation failure the book is left exactly as it was; no
// partial mutation is visible to the caller.
func (b *OrderBook) Submit(incoming common.Order) ([]string, error) {
	if err := validate(incoming); err != nil {
		return nil, err
	}

	order := incoming // deep copy: Order holds no pointers or slices
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now()
	}
	if order.TotalQuantity == 0 {
		order.TotalQuantity = order.Quantity
	}

	restingSide, incomingSide := b.bid, b.ask
	if order.Side == common.Buy {
		restingSide, incomingSide = b.ask, b.bid
	}
	if _, dup := b.bid.orderIndex.Get(order.OrderID); dup {
		return nil, ErrDuplicateOrderID
	}
	if _, dup := b.ask.orderIndex.Get(order.OrderID); dup {
		return nil, ErrDuplicateOrderID
	}

	tradeIDs := make([]string, 0)
	restingSide.ExecuteAgainst(&order, func(f Fill) {
		b.nextTrade++
		trade := b.newTrade(order, f)
		b.trades = append(b.trades, trade)
		b.tradesByID[trade.TradeID] = trade
		tradeIDs = append(tradeIDs, trade.TradeID)
	})

	if order.Quantity > 0 {
		// AddResting cannot fail here: validate already rejected bad
		// price/quantity and the duplicate-id check above already ran.
		_ = incomingSide.AddResting(&order)
	}

	return tradeIDs, nil
}

// newTrade builds a Trade from a fill, assigning buy/sell roles from the
// incoming order's side: if incoming is a buy, incoming populates the buy
// fields and the matched resting order populates the sell fields, and
// vice versa.
func (b *OrderBook) newTrade(incoming common.Order, f Fill) common.Trade {
	trade := common.Trade{
		TradeID:   fmt.Sprintf("TRADE-%08d", b.nextTrade),
		Size:      f.Size,
		Price:     f.Price,
		Timestamp: time.Now(),
	}
	if incoming.Side == common.Buy {
		trade.BuyOrderID, trade.BuyUserID = incoming.OrderID, incoming.UserID
		trade.SellOrderID, trade.SellUserID = f.Resting.OrderID, f.Resting.UserID
	} else {
		trade.SellOrderID, trade.SellUserID = incoming.OrderID, incoming.UserID
		trade.BuyOrderID, trade.BuyUserID = f.Resting.OrderID, f.Resting.UserID
	}
	return trade
}

// Cancel tries the bid side first, then the ask side, and returns
// whether orderID was found and removed on either.
func (b *OrderBook) Cancel(orderID string) bool {
	if b.bid.Cancel(orderID) {
		return true
	}
	return b.ask.Cancel(orderID)
}

// BestBid is the highest resting buy price, or 0 if there are no bids.
func (b *OrderBook) BestBid() float64 {
	return b.bid.BestPrice()
}

// BestAsk is the lowest resting sell price, or 0 if there are no asks.
func (b *OrderBook) BestAsk() float64 {
	return b.ask.BestPrice()
}

// TopLevels returns up to k price levels per side: bids highest-price
// first, asks lowest-price first. k = 0 means all levels.
func (b *OrderBook) TopLevels(k int) (bids, asks []LevelView) {
	return b.bid.TopLevels(k), b.ask.TopLevels(k)
}

// Trades returns a snapshot of the TradeLog in append (chronological)
// order.
func (b *OrderBook) Trades() []common.Trade {
	out := make([]common.Trade, len(b.trades))
	copy(out, b.trades)
	return out
}

// LookupTrade returns the trade with the given id, if any.
func (b *OrderBook) LookupTrade(tradeID string) (common.Trade, bool) {
	trade, ok := b.tradesByID[tradeID]
	return trade, ok
}
