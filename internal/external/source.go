package external

import "context"

// Observation is a wallet as reported by a system outside our control.
type Observation struct {
	Address  string  `json:"address"`
	Quantity float64 `json:"quantity"`
	Currency string  `json:"currency"`
}

// Source supplies external wallet observations for reconciliation.
type Source interface {
	FetchExternalWallets(ctx context.Context) ([]Observation, error)
}

// Func adapts a plain function to the Source interface.
type Func func(ctx context.Context) ([]Observation, error)

// FetchExternalWallets calls f.
func (f Func) FetchExternalWallets(ctx context.Context) ([]Observation, error) {
	return f(ctx)
}

// StaticSource stands in for the external wallet API with a fixed data set.
type StaticSource struct{}

// NewStaticSource returns the fixture-backed source.
func NewStaticSource() StaticSource {
	return StaticSource{}
}

// FetchExternalWallets returns three hard-coded observations. A fresh slice
// is built on every call so callers may modify it.
func (StaticSource) FetchExternalWallets(_ context.Context) ([]Observation, error) {
	return []Observation{
		{Address: "0xExternalAddr1", Quantity: 10.0, Currency: "ETH"},
		{Address: "0xExternalAddr2", Quantity: 5.5, Currency: "BTC"},
		{Address: "0xExternalAddr3", Quantity: 0.0, Currency: "USDT"},
	}, nil
}
