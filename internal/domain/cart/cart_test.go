package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart(t *testing.T) {
	c := Cart{}

	require.NoError(t, c.Add(2, 1))
	require.NoError(t, c.Add(1, 2))
	require.NoError(t, c.Add(2, 3))

	assert.Equal(t, []Entry{{BookID: 1, Quantity: 2}, {BookID: 2, Quantity: 4}}, c.Entries())
	assert.Equal(t, 6, c.TotalQuantity())

	assert.ErrorIs(t, c.Add(3, 0), ErrInvalidQuantity)

	require.NoError(t, c.Remove(1))
	assert.ErrorIs(t, c.Remove(1), ErrItemNotInCart)
	assert.Equal(t, 4, c.TotalQuantity())
}
