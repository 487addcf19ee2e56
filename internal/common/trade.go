package common

import (
	"fmt"
	"time"
)

// Trade records one match between a buy order and a sell order. Price is
// always the resting order's price; a Trade is immutable once recorded.
type Trade struct {
	TradeID     string
	BuyOrderID  string
	BuyUserID   string
	SellOrderID string
	SellUserID  string
	Size        uint64
	Price       float64
	Timestamp   time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		`TradeID:     %s
BuyOrderID:  %s (User %s)
SellOrderID: %s (User %s)
Size:        %d
Price:       %f
Timestamp:   %v`,
		t.TradeID,
		t.BuyOrderID, t.BuyUserID,
		t.SellOrderID, t.SellUserID,
		t.Size,
		t.Price,
		t.Timestamp.Format(time.RFC3339),
	)
}
