package engine

import (
	"testing"

	"ironbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(id string, qty uint64) *common.Order {
	return &common.Order{OrderID: id, Quantity: qty, TotalQuantity: qty}
}

func TestPriceLevel_AppendAndPeek(t *testing.T) {
	level := NewPriceLevel(100.0, common.Sell)
	assert.True(t, level.IsEmpty())

	level.Append(newOrder("a1", 10))
	level.Append(newOrder("a2", 5))

	head, ok := level.PeekHead()
	require.True(t, ok)
	assert.Equal(t, "a1", head.OrderID)
	assert.Equal(t, uint64(15), level.TotalQuantity())
}

func TestPriceLevel_PopHeadIsFIFO(t *testing.T) {
	level := NewPriceLevel(100.0, common.Sell)
	level.Append(newOrder("a1", 10))
	level.Append(newOrder("a2", 5))

	head, err := level.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "a1", head.OrderID)
	assert.Equal(t, uint64(5), level.TotalQuantity())

	head, err = level.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "a2", head.OrderID)
	assert.True(t, level.IsEmpty())

	_, err = level.PopHead()
	assert.ErrorIs(t, err, ErrEmptyLevel)
}

func TestPriceLevel_RemoveByID(t *testing.T) {
	level := NewPriceLevel(100.0, common.Sell)
	level.Append(newOrder("a1", 10))
	level.Append(newOrder("a2", 5))
	level.Append(newOrder("a3", 7))

	removed, ok := level.RemoveByID("a2")
	require.True(t, ok)
	assert.Equal(t, "a2", removed.OrderID)
	assert.Equal(t, uint64(17), level.TotalQuantity())

	_, ok = level.RemoveByID("a2")
	assert.False(t, ok)
}

func TestPriceLevel_DecrementHead(t *testing.T) {
	level := NewPriceLevel(100.0, common.Sell)
	level.Append(newOrder("a1", 10))

	require.NoError(t, level.DecrementHead(4))
	head, _ := level.PeekHead()
	assert.Equal(t, uint64(6), head.Quantity)
	assert.Equal(t, uint64(6), level.TotalQuantity())

	assert.ErrorIs(t, level.DecrementHead(0), ErrInvalidQuantity)
	assert.ErrorIs(t, level.DecrementHead(6), ErrInvalidQuantity)
}
