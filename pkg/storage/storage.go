package storage

import (
	"context"
	"errors"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// ErrNotFound is returned when a product or contact does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines the persistence layer for the catalog, contacts and the
// threshold configuration. The classification engine never touches it; it
// only ever sees snapshots read from here.
type Storage interface {
	// SaveProduct inserts a product or updates it by id.
	SaveProduct(ctx context.Context, product *model.Product) error

	// GetProduct retrieves a product by id.
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// ListProducts returns the full catalog ordered by code.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// DeleteProduct removes a product by id.
	DeleteProduct(ctx context.Context, id string) error

	// SaveContact inserts a contact or updates it by id.
	SaveContact(ctx context.Context, contact *model.Contact) error

	// GetContact retrieves a contact by id.
	GetContact(ctx context.Context, id string) (*model.Contact, error)

	// ListContacts returns all contacts ordered by name.
	ListContacts(ctx context.Context) ([]model.Contact, error)

	// DeleteContact removes a contact by id.
	DeleteContact(ctx context.Context, id string) error

	// GetThresholds returns the active threshold configuration, creating
	// the default one on first read.
	GetThresholds(ctx context.Context) (*model.ThresholdConfig, error)

	// SetThresholds replaces the active threshold configuration.
	SetThresholds(ctx context.Context, cfg *model.ThresholdConfig) error

	// Close releases resources.
	Close() error
}
