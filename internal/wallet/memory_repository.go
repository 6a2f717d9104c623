package wallet

import (
    "context"
    "sync"
)

type memoryRepository struct {
    mu        sync.RWMutex
    nextID    int64
    order     []int64
    storage   map[int64]Wallet
    byAddress map[string]int64
}

// NewMemoryRepository constructs an in-memory repository for tests and local development.
func NewMemoryRepository() Repository {
    return &memoryRepository{
        storage:   make(map[int64]Wallet),
        byAddress: make(map[string]int64),
    }
}

func (r *memoryRepository) Create(_ context.Context, wallet Wallet) (Wallet, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    if _, exists := r.byAddress[wallet.Address]; exists {
        return Wallet{}, ErrAddressExists
    }
    r.nextID++
    wallet.ID = r.nextID
    r.storage[wallet.ID] = wallet
    r.byAddress[wallet.Address] = wallet.ID
    r.order = append(r.order, wallet.ID)
    return wallet, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Wallet, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    wallet, ok := r.storage[id]
    if !ok {
        return Wallet{}, ErrNotFound
    }
    return wallet, nil
}

func (r *memoryRepository) GetByAddress(_ context.Context, address string) (Wallet, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    id, ok := r.byAddress[address]
    if !ok {
        return Wallet{}, ErrNotFound
    }
    return r.storage[id], nil
}

func (r *memoryRepository) List(_ context.Context) ([]Wallet, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    wallets := make([]Wallet, 0, len(r.order))
    for _, id := range r.order {
        wallets = append(wallets, r.storage[id])
    }
    return wallets, nil
}

func (r *memoryRepository) UpdateQuantity(_ context.Context, id int64, quantity float64) (Wallet, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    wallet, ok := r.storage[id]
    if !ok {
        return Wallet{}, ErrNotFound
    }
    wallet.ExpectedQuantity = quantity
    r.storage[id] = wallet
    return wallet, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (Wallet, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    wallet, ok := r.storage[id]
    if !ok {
        return Wallet{}, ErrNotFound
    }
    delete(r.storage, id)
    delete(r.byAddress, wallet.Address)
    for i, existing := range r.order {
        if existing == id {
            r.order = append(r.order[:i], r.order[i+1:]...)
            break
        }
    }
    return wallet, nil
}
