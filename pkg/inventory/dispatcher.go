package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockguard-io/stockguard/pkg/alerts"
	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/model"
)

// Dispatcher classifies changed products and fans out flagged ones to the
// configured notifiers.
type Dispatcher struct {
	notifiers []alerts.Notifier
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(notifiers []alerts.Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		logger:    logger,
	}
}

// ProductChanged classifies a product after a mutation and notifies when it
// lands in an alert category. Notifier failures are logged and never fail
// the mutation that triggered them.
func (d *Dispatcher) ProductChanged(ctx context.Context, p model.Product, cfg model.ThresholdConfig, today model.Date) {
	category, err := engine.Classify(p, cfg, today)
	if err != nil {
		d.logger.Error("classify changed product", "code", p.Code, "error", err)
		return
	}
	if category == model.AlertNone {
		return
	}

	n := alerts.Notification{
		Category:    category,
		ProductID:   p.ID,
		Code:        p.Code,
		Description: p.Description,
		Stock:       p.Stock,
		ExpiryDate:  p.ExpiryDate,
	}

	switch category {
	case model.AlertStockZero:
		n.Message = fmt.Sprintf("Product %q is out of stock", p.Code)
	case model.AlertStockLow:
		n.Message = fmt.Sprintf("Product %q stock %d is below the limit of %d", p.Code, p.Stock, cfg.LowStockLimit)
	case model.AlertExpirySoon:
		days := today.DaysUntil(*p.ExpiryDate)
		if days < 0 {
			days = 0
		}
		n.DaysUntilExpiry = &days
		n.Message = fmt.Sprintf("Product %q expires on %s (%d days)", p.Code, p.ExpiryDate, days)
	}

	d.logger.Warn("product flagged",
		"code", p.Code,
		"category", category,
		"stock", p.Stock,
	)

	for _, notifier := range d.notifiers {
		if err := notifier.Send(ctx, n); err != nil {
			d.logger.Error("send notification failed",
				"notifier", notifier.Name(),
				"code", p.Code,
				"error", err,
			)
		}
	}
}
