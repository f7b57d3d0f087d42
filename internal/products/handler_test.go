package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleTotal(t *testing.T) {
	assert.Equal(t, int64(87), visibleTotal(87, 5, false))
	assert.Equal(t, int64(5), visibleTotal(87, 5, true))
	assert.Equal(t, int64(0), visibleTotal(87, 0, true))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, int64(0), pageCount(0, 20))
	assert.Equal(t, int64(1), pageCount(20, 20))
	assert.Equal(t, int64(2), pageCount(21, 20))
	assert.Equal(t, int64(5), pageCount(87, 20))
}
