package alerts

import (
	"context"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// Notification carries one flagged product to external systems.
type Notification struct {
	Category        model.AlertCategory `json:"category"`
	ProductID       string              `json:"product_id"`
	Code            string              `json:"code"`
	Description     string              `json:"description"`
	Stock           int                 `json:"stock"`
	ExpiryDate      *model.Date         `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int                `json:"days_until_expiry,omitempty"`
	Message         string              `json:"message"`
}

// Notifier sends stock notifications to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers a notification. Implementations must be safe for
	// concurrent use.
	Send(ctx context.Context, n Notification) error
}
