package wallet

import "errors"

var (
	// ErrNotFound is returned when no wallet matches the requested id.
	ErrNotFound = errors.New("wallet not found")

	// ErrAddressExists indicates another wallet already tracks the address.
	ErrAddressExists = errors.New("wallet already exists")

	// ErrInvalidInput wraps payload validation failures.
	ErrInvalidInput = errors.New("invalid wallet input")
)

// Wallet is a tracked address with the quantity of currency we expect it to hold.
type Wallet struct {
	ID               int64   `json:"id"`
	Address          string  `json:"address"`
	ExpectedQuantity float64 `json:"expected_quantity"`
	Currency         string  `json:"currency"`
}
