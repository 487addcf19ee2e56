package driver

import (
	"bytes"
	"strings"
	"testing"

	"ironbook/internal/engine"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func dispatchLines(t *testing.T, book *engine.OrderBook, lines string) string {
	t.Helper()
	var out bytes.Buffer
	logger := zerolog.Nop()
	for _, line := range strings.Split(lines, "\n") {
		Dispatch(book, logger, line, &out)
	}
	return out.String()
}

func TestDispatch_AddNoTrade(t *testing.T) {
	book := engine.New()
	out := dispatchLines(t, book, "ADD,bid1,bob,buy,99.0,50")
	assert.Contains(t, out, "No trades executed when adding order bid1.")
	assert.Equal(t, 99.0, book.BestBid())
}

func TestDispatch_AddWithTrade(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,ask1,seller,sell,100.0,50")
	out := dispatchLines(t, book, "ADD,bid1,buyer,buy,101.0,50")
	assert.Contains(t, out, "Executed 1 trades when adding order bid1:")
	assert.Contains(t, out, "Trade ID: TRADE-00000001")
}

func TestDispatch_SideDefaultsToSellWhenUnrecognized(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,o1,u,sideways,100.0,10")
	assert.Equal(t, float64(0), book.BestBid())
	assert.Equal(t, 100.0, book.BestAsk())
}

func TestDispatch_RemoveFoundAndNotFound(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,bid1,bob,buy,99.0,50")

	out := dispatchLines(t, book, "REMOVE,bid1")
	assert.Contains(t, out, "Successfully removed order bid1.")

	out = dispatchLines(t, book, "REMOVE,bid1")
	assert.Contains(t, out, "Order bid1 not found.")
}

func TestDispatch_ShowBestAndShowTop(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,bid1,bob,buy,95.0,10\nADD,bid2,bob,buy,96.0,10\nADD,ask1,alice,sell,100.0,10")

	out := dispatchLines(t, book, "SHOW_BEST")
	assert.Contains(t, out, "Best Bid: 96.00, Best Ask: 100.00")

	out = dispatchLines(t, book, "SHOW_TOP,1")
	assert.Contains(t, out, "Top 1 Bid Levels:")
	assert.Contains(t, out, "Price: 96.00, Size: 10")
	assert.Contains(t, out, "Top 1 Ask Levels:")
}

func TestDispatch_GetTradeFoundAndNotFound(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,ask1,alice,sell,100.0,10")
	dispatchLines(t, book, "ADD,bid1,bob,buy,100.0,10")

	out := dispatchLines(t, book, "GET_TRADE,TRADE-00000001")
	assert.Contains(t, out, "Trade found: ID: TRADE-00000001")

	out = dispatchLines(t, book, "GET_TRADE,nope")
	assert.Contains(t, out, "No trade found with ID 'nope'")
}

func TestDispatch_MalformedLinesAreSkippedWithoutMutatingBook(t *testing.T) {
	book := engine.New()
	dispatchLines(t, book, "ADD,only,two\nGARBAGE\nREMOVE")
	bids, asks := book.TopLevels(0)
	assert.Empty(t, bids)
	assert.Empty(t, asks)
}

func TestDispatch_BlankLineIsNoop(t *testing.T) {
	book := engine.New()
	out := dispatchLines(t, book, "   \n")
	assert.Empty(t, out)
}
