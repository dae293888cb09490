// Package engine implements the alert and classification engine: pure,
// deterministic derivations over a product catalog snapshot, a threshold
// configuration and a calendar date. It owns no state and performs no I/O;
// every call recomputes from its inputs.
package engine

import (
	"errors"
	"fmt"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// ErrInvalidInput signals a contract violation in the caller-supplied data.
// The engine is total over the valid domain; anything outside it must be
// normalized upstream.
var ErrInvalidInput = errors.New("invalid input")

// ValidateThresholds checks a threshold configuration against the engine's
// contract: non-negative low-stock limit, positive expiry horizon.
func ValidateThresholds(cfg model.ThresholdConfig) error {
	if cfg.LowStockLimit < 0 {
		return fmt.Errorf("%w: low stock limit %d is negative", ErrInvalidInput, cfg.LowStockLimit)
	}
	if cfg.ExpiryHorizonMonths <= 0 {
		return fmt.Errorf("%w: expiry horizon %d months is not positive", ErrInvalidInput, cfg.ExpiryHorizonMonths)
	}
	return nil
}

// ValidateProduct checks a product against the engine's contract:
// non-negative stock and price, well-formed expiry date when present.
func ValidateProduct(p model.Product) error {
	if p.Stock < 0 {
		return fmt.Errorf("%w: product %q stock %d is negative", ErrInvalidInput, p.Code, p.Stock)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product %q price %g is negative", ErrInvalidInput, p.Code, p.Price)
	}
	if p.ExpiryDate != nil && p.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: product %q expiry date is zero", ErrInvalidInput, p.Code)
	}
	return nil
}

func validateToday(today model.Date) error {
	if today.IsZero() {
		return fmt.Errorf("%w: today is the zero date", ErrInvalidInput)
	}
	return nil
}

// Classify assigns a product its single alert category. Precedence, highest
// severity first: StockZero when stock is exhausted, StockLow when stock is
// positive but under the limit, ExpirySoon when an expiry date falls within
// the horizon, None otherwise. A depleted product is StockZero even when its
// expiry date is near; a product without an expiry date is never ExpirySoon.
func Classify(p model.Product, cfg model.ThresholdConfig, today model.Date) (model.AlertCategory, error) {
	if err := ValidateThresholds(cfg); err != nil {
		return model.AlertNone, err
	}
	if err := validateToday(today); err != nil {
		return model.AlertNone, err
	}
	if err := ValidateProduct(p); err != nil {
		return model.AlertNone, err
	}
	return classify(p, cfg, today), nil
}

// classify holds the one and only copy of the threshold rules. Inputs must
// already be validated.
func classify(p model.Product, cfg model.ThresholdConfig, today model.Date) model.AlertCategory {
	switch {
	case p.Stock == 0:
		return model.AlertStockZero
	case p.Stock < cfg.LowStockLimit:
		return model.AlertStockLow
	case p.ExpiryDate != nil && !p.ExpiryDate.After(today.AddMonths(cfg.ExpiryHorizonMonths)):
		return model.AlertExpirySoon
	default:
		return model.AlertNone
	}
}

// severityRank orders categories for alert listing; lower sorts first.
func severityRank(c model.AlertCategory) int {
	switch c {
	case model.AlertStockZero:
		return 0
	case model.AlertStockLow:
		return 1
	case model.AlertExpirySoon:
		return 2
	default:
		return 3
	}
}
