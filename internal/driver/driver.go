// Package driver implements the order book's line-based text protocol:
// one comma-separated command per line, dispatched against an
// engine.OrderBook and written back out as a human-readable result.
package driver

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ironbook/internal/common"
	"ironbook/internal/engine"

	"github.com/rs/zerolog"
)

// Dispatch parses one line and executes it against book, writing its
// human-readable result to out. Malformed lines are reported through
// logger and otherwise ignored — the book is left untouched. Blank lines
// are no-ops.
func Dispatch(book *engine.OrderBook, logger zerolog.Logger, line string, out io.Writer) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	fields := strings.Split(line, ",")
	command := strings.ToUpper(strings.TrimSpace(fields[0]))
	args := fields[1:]

	switch command {
	case "ADD":
		dispatchAdd(book, logger, line, args, out)
	case "REMOVE":
		dispatchRemove(book, logger, line, args, out)
	case "SHOW_BEST":
		fmt.Fprintf(out, "Best Bid: %.2f, Best Ask: %.2f\n", book.BestBid(), book.BestAsk())
	case "BEST_BID":
		fmt.Fprintf(out, "Best Bid: %.2f\n", book.BestBid())
	case "BEST_ASK":
		fmt.Fprintf(out, "Best Ask: %.2f\n", book.BestAsk())
	case "SHOW_TOP":
		dispatchShowTop(book, logger, line, args, out)
	case "SHOW_ALL_TRADES":
		dispatchShowAllTrades(book, out)
	case "GET_TRADE":
		dispatchGetTrade(book, logger, line, args, out)
	default:
		logger.Error().Str("command", fields[0]).Str("line", line).Msg("unrecognized command, skipping line")
	}
}

func dispatchAdd(book *engine.OrderBook, logger zerolog.Logger, line string, args []string, out io.Writer) {
	if len(args) < 5 {
		logger.Error().Str("line", line).Msg("invalid ADD format, skipping line")
		return
	}
	orderID := strings.TrimSpace(args[0])
	userID := strings.TrimSpace(args[1])
	side := parseSide(args[2])
	price, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
	if err != nil {
		logger.Error().Err(err).Str("line", line).Msg("invalid ADD price, skipping line")
		return
	}
	quantity, err := strconv.ParseUint(strings.TrimSpace(args[4]), 10, 64)
	if err != nil {
		logger.Error().Err(err).Str("line", line).Msg("invalid ADD quantity, skipping line")
		return
	}

	tradeIDs, err := book.Submit(common.Order{
		OrderID:  orderID,
		UserID:   userID,
		Side:     side,
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		logger.Error().Err(err).Str("line", line).Msg("order rejected")
		fmt.Fprintf(out, "Order %s rejected: %v\n", orderID, err)
		return
	}

	if len(tradeIDs) == 0 {
		fmt.Fprintf(out, "No trades executed when adding order %s.\n", orderID)
		return
	}
	fmt.Fprintf(out, "Executed %d trades when adding order %s:\n", len(tradeIDs), orderID)
	for _, id := range tradeIDs {
		fmt.Fprintf(out, "  Trade ID: %s\n", id)
	}
}

func dispatchRemove(book *engine.OrderBook, logger zerolog.Logger, line string, args []string, out io.Writer) {
	if len(args) < 1 {
		logger.Error().Str("line", line).Msg("invalid REMOVE format, skipping line")
		return
	}
	orderID := strings.TrimSpace(args[0])
	if book.Cancel(orderID) {
		fmt.Fprintf(out, "Successfully removed order %s.\n", orderID)
	} else {
		fmt.Fprintf(out, "Order %s not found.\n", orderID)
	}
}

func dispatchShowTop(book *engine.OrderBook, logger zerolog.Logger, line string, args []string, out io.Writer) {
	if len(args) < 1 {
		logger.Error().Str("line", line).Msg("invalid SHOW_TOP format, skipping line")
		return
	}
	k, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		logger.Error().Err(err).Str("line", line).Msg("invalid SHOW_TOP count, skipping line")
		return
	}

	bids, asks := book.TopLevels(k)
	label := strconv.Itoa(k)
	if k == 0 {
		label = "all"
	}
	fmt.Fprintf(out, "Top %s Bid Levels:\n", label)
	for _, level := range bids {
		fmt.Fprintf(out, "  Price: %.2f, Size: %d\n", level.Price, level.Quantity)
	}
	fmt.Fprintf(out, "Top %s Ask Levels:\n", label)
	for _, level := range asks {
		fmt.Fprintf(out, "  Price: %.2f, Size: %d\n", level.Price, level.Quantity)
	}
}

func dispatchShowAllTrades(book *engine.OrderBook, out io.Writer) {
	trades := book.Trades()
	fmt.Fprintf(out, "All %d trades so far:\n", len(trades))
	for _, trade := range trades {
		fmt.Fprintf(out, "  Trade ID: %s | Buy Order: %s (User %s) | Sell Order: %s (User %s) | Size: %d | Price: %.2f\n",
			trade.TradeID, trade.BuyOrderID, trade.BuyUserID, trade.SellOrderID, trade.SellUserID, trade.Size, trade.Price)
	}
}

func dispatchGetTrade(book *engine.OrderBook, logger zerolog.Logger, line string, args []string, out io.Writer) {
	if len(args) < 1 {
		logger.Error().Str("line", line).Msg("invalid GET_TRADE format, skipping line")
		return
	}
	tradeID := strings.TrimSpace(args[0])
	trade, ok := book.LookupTrade(tradeID)
	if !ok {
		fmt.Fprintf(out, "No trade found with ID '%s'\n", tradeID)
		return
	}
	fmt.Fprintf(out, "Trade found: ID: %s | Buy Order: %s (User %s) | Sell Order: %s (User %s) | Size: %d | Price: %.2f\n",
		trade.TradeID, trade.BuyOrderID, trade.BuyUserID, trade.SellOrderID, trade.SellUserID, trade.Size, trade.Price)
}

// parseSide converts the textual side field to common.Side. Anything
// other than a case-insensitive "buy" is treated as sell.
func parseSide(raw string) common.Side {
	if strings.EqualFold(strings.TrimSpace(raw), "buy") {
		return common.Buy
	}
	return common.Sell
}
