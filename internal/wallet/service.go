package wallet

import (
    "context"
    "errors"
    "fmt"
    "math"
)

// Service exposes wallet CRUD operations on top of a Repository.
type Service struct {
    repo Repository
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
    return &Service{repo: repo}
}

// CreateInput captures data required to create a wallet.
type CreateInput struct {
    Address          string
    ExpectedQuantity float64
    Currency         string
}

// UpdateInput carries the optional new expected quantity. A nil quantity
// leaves the stored value untouched.
type UpdateInput struct {
    ExpectedQuantity *float64
}

// Create registers a new wallet. The address is stored exactly as given and
// checked up front; the store's unique constraint still guards concurrent
// creates.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
    if math.IsNaN(input.ExpectedQuantity) || math.IsInf(input.ExpectedQuantity, 0) {
        return Wallet{}, fmt.Errorf("%w: expected_quantity must be finite", ErrInvalidInput)
    }

    if _, err := s.repo.GetByAddress(ctx, input.Address); err == nil {
        return Wallet{}, ErrAddressExists
    } else if !errors.Is(err, ErrNotFound) {
        return Wallet{}, err
    }

    return s.repo.Create(ctx, Wallet{
        Address:          input.Address,
        ExpectedQuantity: input.ExpectedQuantity,
        Currency:         input.Currency,
    })
}

// Get retrieves a wallet by id.
func (s *Service) Get(ctx context.Context, id int64) (Wallet, error) {
    return s.repo.Get(ctx, id)
}

// List returns all wallets.
func (s *Service) List(ctx context.Context) ([]Wallet, error) {
    return s.repo.List(ctx)
}

// Update applies a new expected quantity when one is supplied.
//
// An absent or unusable quantity is a silent no-op that still returns the
// current wallet. Callers that want strict validation must reject the
// payload before reaching here.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Wallet, error) {
    q := input.ExpectedQuantity
    if q == nil || math.IsNaN(*q) || math.IsInf(*q, 0) {
        return s.repo.Get(ctx, id)
    }
    return s.repo.UpdateQuantity(ctx, id, *q)
}

// Delete removes a wallet and returns its last known state.
func (s *Service) Delete(ctx context.Context, id int64) (Wallet, error) {
    return s.repo.Delete(ctx, id)
}
