package wallet

import (
    "context"
    "errors"
    "math"
    "testing"
)

func TestServiceCreateAndGet(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    wallet, err := svc.Create(ctx, CreateInput{Address: "0xabc", ExpectedQuantity: 1.5, Currency: "ETH"})
    if err != nil {
        t.Fatalf("create wallet: %v", err)
    }
    if wallet.ID == 0 {
        t.Fatalf("expected generated id")
    }

    fetched, err := svc.Get(ctx, wallet.ID)
    if err != nil {
        t.Fatalf("get wallet: %v", err)
    }
    if fetched.Address != "0xabc" || fetched.ExpectedQuantity != 1.5 || fetched.Currency != "ETH" {
        t.Fatalf("unexpected wallet %+v", fetched)
    }
}

func TestServiceCreateDuplicateLeavesStoreUnchanged(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    if _, err := svc.Create(ctx, CreateInput{Address: "0xdup", ExpectedQuantity: 1, Currency: "ETH"}); err != nil {
        t.Fatalf("create wallet: %v", err)
    }
    if _, err := svc.Create(ctx, CreateInput{Address: "0xdup", ExpectedQuantity: 2, Currency: "BTC"}); !errors.Is(err, ErrAddressExists) {
        t.Fatalf("expected ErrAddressExists, got %v", err)
    }

    wallets, err := svc.List(ctx)
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    if len(wallets) != 1 || wallets[0].ExpectedQuantity != 1 || wallets[0].Currency != "ETH" {
        t.Fatalf("store mutated by rejected create: %+v", wallets)
    }
}

func TestRepositoryRejectsDuplicateAddress(t *testing.T) {
    repo := NewMemoryRepository()
    ctx := context.Background()

    if _, err := repo.Create(ctx, Wallet{Address: "0xraced", Currency: "ETH"}); err != nil {
        t.Fatalf("create: %v", err)
    }
    if _, err := repo.Create(ctx, Wallet{Address: "0xraced", Currency: "ETH"}); !errors.Is(err, ErrAddressExists) {
        t.Fatalf("expected ErrAddressExists from store, got %v", err)
    }
}

func TestServiceCreateValidation(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    if _, err := svc.Create(ctx, CreateInput{Address: "0x1", Currency: "ETH", ExpectedQuantity: math.NaN()}); !errors.Is(err, ErrInvalidInput) {
        t.Fatalf("expected ErrInvalidInput for NaN quantity, got %v", err)
    }
}

func TestServiceCreateKeepsAddressVerbatim(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    padded, err := svc.Create(ctx, CreateInput{Address: " 0xPad ", ExpectedQuantity: 1, Currency: "ETH"})
    if err != nil {
        t.Fatalf("create padded: %v", err)
    }
    if padded.Address != " 0xPad " {
        t.Fatalf("expected address stored verbatim, got %q", padded.Address)
    }
    if _, err := svc.Create(ctx, CreateInput{Address: "0xPad", ExpectedQuantity: 1, Currency: "ETH"}); err != nil {
        t.Fatalf("distinct address rejected: %v", err)
    }

    // Empty strings are present values, not missing fields.
    empty, err := svc.Create(ctx, CreateInput{Address: "0xNoCur", ExpectedQuantity: 1, Currency: ""})
    if err != nil {
        t.Fatalf("create with empty currency: %v", err)
    }
    fetched, err := svc.Get(ctx, empty.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if fetched.Currency != "" || fetched.Address != "0xNoCur" {
        t.Fatalf("unexpected wallet %+v", fetched)
    }
}

func TestServiceUpdate(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    wallet, err := svc.Create(ctx, CreateInput{Address: "0xupd", ExpectedQuantity: 2.5, Currency: "BTC"})
    if err != nil {
        t.Fatalf("create wallet: %v", err)
    }

    q := 4.25
    updated, err := svc.Update(ctx, wallet.ID, UpdateInput{ExpectedQuantity: &q})
    if err != nil {
        t.Fatalf("update: %v", err)
    }
    if updated.ExpectedQuantity != 4.25 || updated.Address != wallet.Address || updated.Currency != wallet.Currency {
        t.Fatalf("unexpected update result %+v", updated)
    }

    // Missing and non-finite quantities are ignored.
    nan := math.NaN()
    for _, in := range []UpdateInput{{}, {ExpectedQuantity: &nan}} {
        same, err := svc.Update(ctx, wallet.ID, in)
        if err != nil {
            t.Fatalf("no-op update: %v", err)
        }
        if same.ExpectedQuantity != 4.25 {
            t.Fatalf("expected quantity unchanged, got %v", same.ExpectedQuantity)
        }
    }

    if _, err := svc.Update(ctx, 999, UpdateInput{ExpectedQuantity: &q}); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound, got %v", err)
    }
    if _, err := svc.Update(ctx, 999, UpdateInput{}); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound for no-op on missing wallet, got %v", err)
    }
}

func TestServiceDelete(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    wallet, err := svc.Create(ctx, CreateInput{Address: "0xdel", ExpectedQuantity: 0, Currency: "USD"})
    if err != nil {
        t.Fatalf("create wallet: %v", err)
    }

    deleted, err := svc.Delete(ctx, wallet.ID)
    if err != nil {
        t.Fatalf("delete: %v", err)
    }
    if deleted != wallet {
        t.Fatalf("expected snapshot %+v, got %+v", wallet, deleted)
    }

    if _, err := svc.Get(ctx, wallet.ID); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound after delete, got %v", err)
    }
    if _, err := svc.Delete(ctx, wallet.ID); !errors.Is(err, ErrNotFound) {
        t.Fatalf("expected ErrNotFound on second delete, got %v", err)
    }

    // The address is free again once the wallet is gone.
    if _, err := svc.Create(ctx, CreateInput{Address: "0xdel", ExpectedQuantity: 1, Currency: "USD"}); err != nil {
        t.Fatalf("recreate: %v", err)
    }
}

func TestServiceListKeepsInsertionOrder(t *testing.T) {
    svc := NewService(NewMemoryRepository())
    ctx := context.Background()

    a, _ := svc.Create(ctx, CreateInput{Address: "0xb", ExpectedQuantity: 1, Currency: "ETH"})
    b, _ := svc.Create(ctx, CreateInput{Address: "0xa", ExpectedQuantity: 2, Currency: "BTC"})

    wallets, err := svc.List(ctx)
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    if len(wallets) != 2 || wallets[0].ID != a.ID || wallets[1].ID != b.ID {
        t.Fatalf("unexpected list %+v", wallets)
    }
}
