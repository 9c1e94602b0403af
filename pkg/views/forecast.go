package views

import (
	"math/rand"
	"sync"
	"time"

	"wholesale/pkg/catalog"
	"wholesale/pkg/order"
)

// Forecaster estimates a product's historical mean and predicted demand.
type Forecaster interface {
	Forecast(p catalog.Product, log []order.Order) (mean, predicted int)
}

// ForecasterFunc adapts a plain function to Forecaster.
type ForecasterFunc func(p catalog.Product, log []order.Order) (int, int)

func (f ForecasterFunc) Forecast(p catalog.Product, log []order.Order) (int, int) {
	return f(p, log)
}

// SyntheticForecaster draws the mean from [20,70) and the prediction from
// [30,90). It is the placeholder model used until real demand history is
// available.
type SyntheticForecaster struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticForecaster seeds from rng, or from the clock when rng is nil.
func NewSyntheticForecaster(rng *rand.Rand) *SyntheticForecaster {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SyntheticForecaster{rng: rng}
}

// NewSeededForecaster is deterministic for a given seed.
func NewSeededForecaster(seed int64) *SyntheticForecaster {
	return NewSyntheticForecaster(rand.New(rand.NewSource(seed)))
}

func (f *SyntheticForecaster) Forecast(catalog.Product, []order.Order) (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return 20 + f.rng.Intn(50), 30 + f.rng.Intn(60)
}

// HistoryForecaster derives the figures from the log: the mean quantity per
// order line of the product, and a prediction one fifth above it. Products
// never ordered fall back to Fallback.
type HistoryForecaster struct {
	Fallback Forecaster
}

func (h HistoryForecaster) Forecast(p catalog.Product, log []order.Order) (int, int) {
	qty, lines := 0, 0
	for _, o := range log {
		if line, ok := o.Items[p.ID]; ok && line.Quantity > 0 {
			qty += line.Quantity
			lines++
		}
	}
	if lines == 0 {
		if h.Fallback != nil {
			return h.Fallback.Forecast(p, log)
		}
		return 0, 0
	}
	mean := qty / lines
	return mean, mean + mean/5
}
