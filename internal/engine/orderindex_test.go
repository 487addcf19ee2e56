package engine

import (
	"testing"

	"ironbook/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestOrderIndex_PutGetDelete(t *testing.T) {
	idx := NewOrderIndex()
	level := NewPriceLevel(100.0, common.Sell)

	_, ok := idx.Get("a1")
	assert.False(t, ok)

	idx.Put("a1", level)
	got, ok := idx.Get("a1")
	assert.True(t, ok)
	assert.Same(t, level, got)
	assert.Equal(t, 1, idx.Len())

	idx.Delete("a1")
	_, ok = idx.Get("a1")
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

func TestOrderIndex_PutOverwritesPriorBinding(t *testing.T) {
	idx := NewOrderIndex()
	first := NewPriceLevel(100.0, common.Sell)
	second := NewPriceLevel(101.0, common.Sell)

	idx.Put("a1", first)
	idx.Put("a1", second)

	got, _ := idx.Get("a1")
	assert.Same(t, second, got)
	assert.Equal(t, 1, idx.Len())
}
