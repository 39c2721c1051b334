package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nobih83/bn-storefront/internal/catalog"
)

func product(id string, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Price: price}
}

func TestMerge(t *testing.T) {
	var lines []Line
	lines = Merge(lines, product("BM216", 1800), 1)
	lines = Merge(lines, product("BM170", 3000), 2)
	require.Len(t, lines, 2)

	// same product merges quantities instead of adding a line
	lines = Merge(lines, product("BM216", 1800), 3)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(4), lines[0].Quantity)

	// zero or negative quantities are treated as one
	lines = Merge(lines, product("BM209", 10000), 0)
	require.Len(t, lines, 3)
	assert.Equal(t, int64(1), lines[2].Quantity)
}

func TestAdjustClampsAtOne(t *testing.T) {
	lines := Merge(nil, product("BM216", 1800), 2)

	lines = Adjust(lines, "BM216", -1)
	assert.Equal(t, int64(1), lines[0].Quantity)

	// decrementing at one stays at one
	lines = Adjust(lines, "BM216", -1)
	assert.Equal(t, int64(1), lines[0].Quantity)

	lines = Adjust(lines, "BM216", -100)
	assert.Equal(t, int64(1), lines[0].Quantity)

	// no maximum
	lines = Adjust(lines, "BM216", 500)
	assert.Equal(t, int64(501), lines[0].Quantity)
}

func TestAdjustUnknownProduct(t *testing.T) {
	lines := Merge(nil, product("BM216", 1800), 2)
	lines = Adjust(lines, "nope", 5)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestRemove(t *testing.T) {
	lines := Merge(nil, product("BM216", 1800), 1)
	lines = Merge(lines, product("BM170", 3000), 1)

	lines = Remove(lines, "BM216")
	require.Len(t, lines, 1)
	assert.Equal(t, "BM170", lines[0].Product.ID)

	lines = Remove(lines, "nope")
	require.Len(t, lines, 1)

	lines = Remove(lines, "BM170")
	assert.Empty(t, lines)
}

func TestSubtotal(t *testing.T) {
	lines := Merge(nil, product("BM216", 1800), 2)
	lines = Merge(lines, product("BM170", 3000), 1)
	assert.Equal(t, int64(6600), Subtotal(lines))
	assert.Equal(t, int64(0), Subtotal(nil))
}
