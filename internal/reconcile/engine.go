package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/congo-pay/wallet-reconciler/internal/external"
	"github.com/congo-pay/wallet-reconciler/internal/notification"
	"github.com/congo-pay/wallet-reconciler/internal/wallet"
)

// Reconciliation statuses.
const (
	StatusMatch            = "match"
	StatusMismatch         = "mismatch"
	StatusExternalNotFound = "external_not_found"
	StatusLocalNotFound    = "local_not_found"
)

// differencePlaces bounds the precision of Result.Difference so float noise
// such as 2.4999999999999996 is reported as 2.5.
const differencePlaces = 12

// Result is the comparison outcome for one address. Pointer fields are nil
// (JSON null) when the corresponding side has no record.
type Result struct {
	Address          string   `json:"address"`
	LocalQuantity    *float64 `json:"local_quantity"`
	LocalCurrency    *string  `json:"local_currency"`
	ExternalQuantity *float64 `json:"external_quantity"`
	ExternalCurrency *string  `json:"external_currency"`
	Status           string   `json:"status"`
	Difference       *float64 `json:"difference"`
}

// WalletLister provides the local wallet set.
type WalletLister interface {
	List(ctx context.Context) ([]wallet.Wallet, error)
}

// Engine joins local wallets with external observations by address.
type Engine struct {
	wallets  WalletLister
	source   external.Source
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewEngine builds a reconciliation engine. notifier and logger may be nil.
func NewEngine(wallets WalletLister, source external.Source, notifier notification.Notifier, logger *slog.Logger) *Engine {
	return &Engine{wallets: wallets, source: source, notifier: notifier, logger: logger}
}

// Compare classifies every address known locally or externally and returns
// one Result per address in ascending address order.
func (e *Engine) Compare(ctx context.Context) ([]Result, error) {
	locals, err := e.wallets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local wallets: %w", err)
	}
	observations, err := e.source.FetchExternalWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch external wallets: %w", err)
	}

	results := Reconcile(locals, observations)
	e.report(ctx, results)
	return results, nil
}

// Reconcile is the pure join behind Compare. Later duplicates in
// observations replace earlier ones.
func Reconcile(locals []wallet.Wallet, observations []external.Observation) []Result {
	localByAddr := make(map[string]wallet.Wallet, len(locals))
	for _, w := range locals {
		localByAddr[w.Address] = w
	}
	externalByAddr := make(map[string]external.Observation, len(observations))
	for _, o := range observations {
		externalByAddr[o.Address] = o
	}

	addresses := make([]string, 0, len(localByAddr)+len(externalByAddr))
	for addr := range localByAddr {
		addresses = append(addresses, addr)
	}
	for addr := range externalByAddr {
		if _, ok := localByAddr[addr]; !ok {
			addresses = append(addresses, addr)
		}
	}
	sort.Strings(addresses)

	results := make([]Result, 0, len(addresses))
	for _, addr := range addresses {
		local, hasLocal := localByAddr[addr]
		ext, hasExternal := externalByAddr[addr]

		r := Result{Address: addr}
		if hasLocal {
			q, c := local.ExpectedQuantity, local.Currency
			r.LocalQuantity, r.LocalCurrency = &q, &c
		}
		if hasExternal {
			q, c := ext.Quantity, ext.Currency
			r.ExternalQuantity, r.ExternalCurrency = &q, &c
		}

		switch {
		case hasLocal && hasExternal:
			if local.ExpectedQuantity == ext.Quantity {
				r.Status = StatusMatch
			} else {
				r.Status = StatusMismatch
			}
			diff := difference(local.ExpectedQuantity, ext.Quantity)
			r.Difference = &diff
		case hasLocal:
			r.Status = StatusExternalNotFound
		default:
			r.Status = StatusLocalNotFound
		}
		results = append(results, r)
	}
	return results
}

func difference(local, ext float64) float64 {
	d, _ := decimal.NewFromFloat(ext).Sub(decimal.NewFromFloat(local)).Round(differencePlaces).Float64()
	return d
}

// report sends a discrepancy notification when any address is out of sync.
// Delivery failures are logged and never fail the comparison.
func (e *Engine) report(ctx context.Context, results []Result) {
	if e.notifier == nil {
		return
	}
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	outOfSync := len(results) - counts[StatusMatch]
	if outOfSync == 0 {
		return
	}
	msg := notification.Message{
		Kind:        notification.KindReconciliationDiscrepancy,
		Destination: notification.DestinationWalletOps,
		Body:        fmt.Sprintf("%d of %d addresses out of sync", outOfSync, len(results)),
		Counts:      counts,
	}
	if err := e.notifier.Send(ctx, msg); err != nil && e.logger != nil {
		e.logger.Warn("reconciliation notification failed", slog.Any("error", err))
	}
}
