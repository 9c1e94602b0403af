package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesale/pkg/catalog"
)

func product(id int64, name, price string, visible bool) catalog.Product {
	return catalog.Product{
		ID:        id,
		Name:      name,
		Category:  catalog.CategoryBread,
		BasePrice: decimal.RequireFromString(price),
		Glyph:     "🥖",
		Alias:     "catalog alias",
		Visible:   visible,
	}
}

func boolPtr(v bool) *bool { return &v }

func TestResolveFallsThroughWithoutOverride(t *testing.T) {
	table := Table{}
	products := []catalog.Product{
		product(1, "法式羊角包", "5.00", true),
		product(2, "隐藏商品", "8.00", false),
	}
	for _, customerID := range []int64{101, 102, 999} {
		for _, p := range products {
			item := table.Resolve(customerID, p)
			assert.Equal(t, p.BasePrice.StringFixed(2), item.Price.StringFixed(2))
			assert.Equal(t, p.Name, item.DisplayName, "product alias must not replace the name")
			assert.Empty(t, item.Specification)
			assert.Equal(t, p.Visible, item.Visible)
		}
	}
}

func TestResolveAppliesEachOverrideField(t *testing.T) {
	table := Table{}
	p := product(1, "法式羊角包", "5.00", true)

	table.Set(101, 1, Override{
		Price:         decimal.NullDecimal{Decimal: decimal.RequireFromString("4.5"), Valid: true},
		Alias:         "  迷你可颂 ",
		Specification: "50g/个",
		Visible:       boolPtr(false),
	})

	item := table.Resolve(101, p)
	assert.Equal(t, "4.50", item.Price.StringFixed(2))
	assert.Equal(t, "迷你可颂", item.DisplayName)
	assert.Equal(t, "50g/个", item.Specification)
	assert.False(t, item.Visible)

	other := table.Resolve(102, p)
	assert.Equal(t, "5.00", other.Price.StringFixed(2))
	assert.True(t, other.Visible)
}

func TestResolveIgnoresBlankAndNonPositiveFields(t *testing.T) {
	p := product(3, "草莓奶油蛋糕", "15.00", true)

	cases := map[string]Override{
		"zero price":     {Price: decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}},
		"negative price": {Price: decimal.NullDecimal{Decimal: decimal.RequireFromString("-1"), Valid: true}},
		"blank strings":  {Alias: "   ", Specification: ""},
		"empty":          {},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, o.IsZero())
			item := Apply(o, p)
			assert.Equal(t, "15.00", item.Price.StringFixed(2))
			assert.Equal(t, p.Name, item.DisplayName)
			assert.True(t, item.Visible)
		})
	}
}

func TestResolvePriceNeverNegative(t *testing.T) {
	p := product(9, "坏数据", "-3.00", true)
	item := Apply(Override{}, p)
	assert.False(t, item.Price.IsNegative())
}

func TestSetZeroOverrideRemovesEntry(t *testing.T) {
	table := Table{}
	table.Set(101, 2, PriceOverride(decimal.RequireFromString("7.2")))
	_, ok := table.Get(101, 2)
	require.True(t, ok)

	table.Set(101, 2, Override{})
	_, ok = table.Get(101, 2)
	assert.False(t, ok)
	assert.NotContains(t, table, int64(101))
}

func TestVisibleTrueOverrideIsKept(t *testing.T) {
	table := Table{}
	table.Set(102, 4, Override{Visible: boolPtr(true)})
	o, ok := table.Get(102, 4)
	require.True(t, ok)
	require.NotNil(t, o.Visible)

	hidden := product(4, "肉松小贝", "4.00", false)
	assert.True(t, table.Resolve(102, hidden).Visible)
}

func TestCloneIsIndependent(t *testing.T) {
	table := Table{}
	table.Set(101, 1, PriceOverride(decimal.RequireFromString("4.5")))
	copied := table.Clone()

	table.Set(101, 1, PriceOverride(decimal.RequireFromString("1.0")))
	o, ok := copied.Get(101, 1)
	require.True(t, ok)
	assert.Equal(t, "4.50", o.Price.Decimal.StringFixed(2))
}

func TestFromPriceListMigratesBarePrices(t *testing.T) {
	migrated := FromPriceList(map[int64]decimal.Decimal{
		1: decimal.RequireFromString("4.5"),
		2: decimal.Zero,
	})
	require.Len(t, migrated, 1)
	assert.True(t, migrated[1].HasPrice())
	assert.Equal(t, "4.50", migrated[1].Price.Decimal.StringFixed(2))
	assert.Empty(t, migrated[1].Alias)
	assert.Nil(t, migrated[1].Visible)
}

func TestCustomerCatalogKeepsOrderAndFiltersHidden(t *testing.T) {
	products := []catalog.Product{
		product(5, "手撕包", "6.00", true),
		product(1, "法式羊角包", "5.00", true),
		product(4, "肉松小贝", "4.00", true),
		product(7, "停售", "9.00", false),
	}
	table := Table{}
	table.Set(102, 4, Override{Visible: boolPtr(false)})

	items := table.CustomerCatalog(102, products)
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].Product.ID)
	assert.Equal(t, int64(1), items[1].Product.ID)

	items = table.CustomerCatalog(101, products)
	require.Len(t, items, 3)
	assert.Equal(t, int64(4), items[2].Product.ID)
}

func TestCustomerCatalogOfEmptyCatalog(t *testing.T) {
	assert.Empty(t, Table{}.CustomerCatalog(101, nil))
}

func TestOnBehalfCatalogShowsEverythingWithBothNames(t *testing.T) {
	products := []catalog.Product{
		product(1, "法式羊角包", "5.00", true),
		product(7, "停售", "9.00", false),
	}
	table := Table{}
	table.Set(101, 1, Override{Alias: "可颂"})

	rows := table.OnBehalfCatalog(101, products)
	require.Len(t, rows, 2)
	assert.Equal(t, "可颂", rows[0].DisplayName)
	assert.Equal(t, "法式羊角包", rows[0].CanonicalName)
	assert.True(t, rows[0].Aliased)
	assert.False(t, rows[1].Visible)
	assert.False(t, rows[1].Aliased)
}
