package views

import (
	"github.com/shopspring/decimal"

	"wholesale/pkg/catalog"
	"wholesale/pkg/order"
)

// ForecastRow is the demand estimate for one product.
type ForecastRow struct {
	ProductID int64  `json:"product_id"`
	Glyph     string `json:"glyph"`
	Name      string `json:"name"`
	Mean      int    `json:"historical_mean"`
	Predicted int    `json:"predicted"`
}

// Dashboard is the admin landing projection.
type Dashboard struct {
	SalesTotal      decimal.Decimal `json:"sales_total"`
	PendingCount    int             `json:"pending_count"`
	OrderCount      int             `json:"order_count"`
	ForecastTotal   int             `json:"forecast_total"`
	Forecast        []ForecastRow   `json:"forecast"`
	CustomerCount   int             `json:"customer_count"`
	ProductCount    int             `json:"product_count"`
	ProductionCount int             `json:"production_count"`
}

// BuildDashboard rolls the whole log up. The sales total covers every order
// in the log; there is no per-day partition.
func BuildDashboard(log []order.Order, products []catalog.Product, customerCount int, forecast Forecaster) Dashboard {
	if forecast == nil {
		forecast = NewSyntheticForecaster(nil)
	}
	d := Dashboard{
		SalesTotal:    decimal.Zero,
		OrderCount:    len(log),
		CustomerCount: customerCount,
		ProductCount:  len(products),
		Forecast:      make([]ForecastRow, 0, len(products)),
	}
	for _, o := range log {
		d.SalesTotal = d.SalesTotal.Add(o.Total)
		switch o.Status {
		case order.StatusPending:
			d.PendingCount++
		case order.StatusProduction:
			d.ProductionCount++
		}
	}
	d.SalesTotal = d.SalesTotal.Round(2)

	for _, p := range products {
		mean, predicted := forecast.Forecast(p, log)
		d.Forecast = append(d.Forecast, ForecastRow{
			ProductID: p.ID,
			Glyph:     p.Glyph,
			Name:      p.Name,
			Mean:      mean,
			Predicted: predicted,
		})
		d.ForecastTotal += predicted
	}
	return d
}
