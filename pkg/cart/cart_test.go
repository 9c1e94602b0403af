package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesale/pkg/catalog"
	"wholesale/pkg/pricing"
)

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.SetQuantity(1, 3)
	c.SetQuantity(1, 0)
	assert.NotContains(t, c.Lines(), int64(1))
	assert.True(t, c.IsEmpty())

	c.SetQuantity(2, 4)
	c.SetQuantity(2, -1)
	assert.NotContains(t, c.Lines(), int64(2))
}

func TestSetQuantityKeepsNotes(t *testing.T) {
	c := New()
	c.SetNotes(1, "少糖")
	c.SetQuantity(1, 2)
	c.SetQuantity(1, 5)

	line := c.Lines()[1]
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, "少糖", line.Notes)
}

func TestSetNotesOnAbsentLineIsNotSubmittable(t *testing.T) {
	c := New()
	c.SetNotes(3, "切片")

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Lines())
	assert.Equal(t, map[int64]Line{3: {Notes: "切片"}}, c.Drafts())

	c.SetQuantity(3, 1)
	assert.Equal(t, Line{Quantity: 1, Notes: "切片"}, c.Lines()[3])
	assert.Empty(t, c.Drafts())
}

func TestSetQuantityIsIdempotent(t *testing.T) {
	once, twice := New(), New()
	once.SetQuantity(1, 7)
	twice.SetQuantity(1, 7)
	twice.SetQuantity(1, 7)
	assert.Equal(t, once.Lines(), twice.Lines())
}

func TestClear(t *testing.T) {
	c := New()
	c.Clear()
	assert.True(t, c.IsEmpty())

	c.SetQuantity(1, 1)
	c.SetNotes(2, "x")
	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Empty(t, c.Drafts())
	assert.Zero(t, c.Count())
}

func TestAddAndCount(t *testing.T) {
	c := New()
	c.Add(1, 1)
	c.Add(1, 1)
	c.Add(2, 3)
	assert.Equal(t, 5, c.Count())
	assert.Equal(t, []int64{1, 2}, c.ProductIDs())

	c.Add(2, -3)
	assert.Equal(t, []int64{1}, c.ProductIDs())
}

func TestTotal(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Name: "法式羊角包", BasePrice: decimal.RequireFromString("5.00"), Visible: true},
		{ID: 2, Name: "全麦切片吐司", BasePrice: decimal.RequireFromString("8.00"), Visible: true},
	}
	overrides := pricing.Table{}
	overrides.Set(101, 1, pricing.PriceOverride(decimal.RequireFromString("4.5")))

	c := New()
	assert.Equal(t, "0.00", c.Total(101, products, overrides).StringFixed(2))

	c.SetQuantity(1, 2)
	c.SetQuantity(2, 3)
	c.SetQuantity(99, 4)
	assert.Equal(t, "33.00", c.Total(101, products, overrides).StringFixed(2))
	assert.Equal(t, "34.00", c.Total(102, products, overrides).StringFixed(2))
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	c.SetQuantity(1, 2)
	copied := c.Clone()
	c.SetQuantity(1, 9)
	require.Contains(t, copied.Lines(), int64(1))
	assert.Equal(t, 2, copied.Lines()[1].Quantity)
}
