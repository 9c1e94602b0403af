package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesale/pkg/order"
	"wholesale/pkg/router"
)

func TestDefaultSeed(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	assert.Len(t, data.Products, 5)
	require.Len(t, data.Customers, 2)
	assert.Equal(t, int64(101), data.Customers[0].ID)
	assert.Len(t, data.Orders, 5)
	assert.Equal(t, router.SurfaceClientMobile, data.Routes[101])

	price := data.Overrides.Resolve(101, data.Products[0]).Price
	assert.Equal(t, "4.50", price.StringFixed(2))
	_, ok := data.Overrides.Get(101, 5)
	assert.False(t, ok)
}

func TestDefaultSeedMigratesOrders(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	first := data.Orders[0]
	assert.Equal(t, order.StatusProduction, first.Status)
	assert.Equal(t, "450.00", first.Total.StringFixed(2))
	assert.Equal(t, 50, first.Items[1].Quantity)
	assert.Equal(t, "4.50", first.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "法式羊角包", first.Items[1].Name)
	assert.Equal(t, "2023-10-24", first.CreatedAt.Format(order.DateLayout))
	assert.Equal(t, order.StatusPending, data.Orders[4].Status)
}

func TestParseComputesMissingTotalsAndMergesOverrides(t *testing.T) {
	raw := []byte(`
products:
  - {id: 1, name: 吐司, category: 吐司类, base_price: 8}
customers:
  - {id: 101, name: 甲, type: 超市, billing: 现结, address: 某地, mode: desktop}
price_lists:
  101: {1: 7.5}
overrides:
  101:
    1: {alias: 白吐司, visible: false}
orders:
  - {id: A, customer_id: 101, status: 确认中, delivery_date: "2024-01-02", items: {1: 2}}
`)
	data, err := Parse(raw)
	require.NoError(t, err)

	o, ok := data.Overrides.Get(101, 1)
	require.True(t, ok)
	assert.Equal(t, "7.50", o.Price.Decimal.StringFixed(2))
	assert.Equal(t, "白吐司", o.Alias)
	require.NotNil(t, o.Visible)
	assert.False(t, *o.Visible)

	require.Len(t, data.Orders, 1)
	assert.Equal(t, "15.00", data.Orders[0].Total.StringFixed(2))
	assert.Equal(t, "甲", data.Orders[0].CustomerName)
	assert.True(t, data.Products[0].Visible)
}

func TestParseRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"category":  `products: [{id: 1, name: x, category: 饼干, base_price: 1}]`,
		"status":    `orders: [{id: A, customer_id: 1, status: 已取消, delivery_date: "2024-01-01"}]`,
		"duplicate": `customers: [{id: 101, name: a, address: b}, {id: 101, name: c, address: d}]`,
		"yaml":      `products: {`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}
