// Package inventory hosts the application layer around the classification
// engine: catalog and contact CRUD over storage, threshold management, and
// snapshot assembly for classification. The engine itself stays pure; this
// package is where I/O and the current-time source live.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/model"
	"github.com/stockguard-io/stockguard/pkg/storage"
)

// Service is the main entry point for catalog operations.
type Service struct {
	store      storage.Storage
	dispatcher *Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a service with the given dependencies. dispatcher may
// be nil when no notifiers are configured.
func NewService(store storage.Storage, dispatcher *Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the current-time source. Classification depends on
// time only through the calendar date derived from this clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() model.Date {
	return model.DateOf(s.now())
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, p *model.Product) error {
	if err := normalizeProduct(p); err != nil {
		return err
	}
	if err := s.store.SaveProduct(ctx, p); err != nil {
		return err
	}

	s.logger.Info("product created", "id", p.ID, "code", p.Code, "stock", p.Stock)
	s.notifyIfFlagged(ctx, p)
	return nil
}

// UpdateProduct validates and stores changes to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, p *model.Product) error {
	existing, err := s.store.GetProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt

	if err := normalizeProduct(p); err != nil {
		return err
	}
	if err := s.store.SaveProduct(ctx, p); err != nil {
		return err
	}

	s.logger.Info("product updated", "id", p.ID, "code", p.Code, "stock", p.Stock)
	s.notifyIfFlagged(ctx, p)
	return nil
}

// GetProduct retrieves a product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// DeleteProduct removes a product by id.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "id", id)
	return nil
}

// ListProducts returns the catalog, narrowed by the query when non-empty.
func (s *Service) ListProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilterProducts(products, query), nil
}

// PresentedProduct is a product together with its display style.
type PresentedProduct struct {
	model.Product
	Style model.StyleTag `json:"style"`
}

// PresentProducts returns the (optionally filtered) catalog with the
// display style each row should carry, derived from the same classification
// that feeds the alerts list.
func (s *Service) PresentProducts(ctx context.Context, query string) ([]PresentedProduct, error) {
	products, err := s.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	cfg, err := s.store.GetThresholds(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	presented := make([]PresentedProduct, 0, len(products))
	for _, p := range products {
		style, err := engine.PresentationFor(p, *cfg, today)
		if err != nil {
			return nil, err
		}
		presented = append(presented, PresentedProduct{Product: p, Style: style})
	}
	return presented, nil
}

// CreateContact validates and stores a new contact.
func (s *Service) CreateContact(ctx context.Context, c *model.Contact) error {
	if err := normalizeContact(c); err != nil {
		return err
	}
	if err := s.store.SaveContact(ctx, c); err != nil {
		return err
	}
	s.logger.Info("contact created", "id", c.ID, "name", c.Name, "type", c.Type)
	return nil
}

// UpdateContact validates and stores changes to an existing contact.
func (s *Service) UpdateContact(ctx context.Context, c *model.Contact) error {
	existing, err := s.store.GetContact(ctx, c.ID)
	if err != nil {
		return err
	}
	c.CreatedAt = existing.CreatedAt

	if err := normalizeContact(c); err != nil {
		return err
	}
	if err := s.store.SaveContact(ctx, c); err != nil {
		return err
	}
	s.logger.Info("contact updated", "id", c.ID, "name", c.Name)
	return nil
}

// GetContact retrieves a contact by id.
func (s *Service) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	return s.store.GetContact(ctx, id)
}

// DeleteContact removes a contact by id.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	if err := s.store.DeleteContact(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contact deleted", "id", id)
	return nil
}

// ListContacts returns all contacts, narrowed by the query when non-empty.
func (s *Service) ListContacts(ctx context.Context, query string) ([]model.Contact, error) {
	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilterContacts(contacts, query), nil
}

// Thresholds returns the active threshold configuration.
func (s *Service) Thresholds(ctx context.Context) (*model.ThresholdConfig, error) {
	return s.store.GetThresholds(ctx)
}

// UpdateThresholds validates and stores a new threshold configuration.
// There is no cached classification anywhere, so the next Alerts or
// PresentProducts call sees the new values by construction.
func (s *Service) UpdateThresholds(ctx context.Context, cfg model.ThresholdConfig) (*model.ThresholdConfig, error) {
	if err := engine.ValidateThresholds(cfg); err != nil {
		return nil, err
	}
	if err := s.store.SetThresholds(ctx, &cfg); err != nil {
		return nil, err
	}
	s.logger.Info("thresholds updated",
		"low_stock_limit", cfg.LowStockLimit,
		"expiry_horizon_months", cfg.ExpiryHorizonMonths,
	)
	return &cfg, nil
}

// Alerts classifies the current catalog snapshot against the active
// thresholds and today's date.
func (s *Service) Alerts(ctx context.Context) (*model.AlertSet, error) {
	cfg, err := s.store.GetThresholds(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return engine.BuildAlerts(products, *cfg, s.today())
}

func (s *Service) notifyIfFlagged(ctx context.Context, p *model.Product) {
	if s.dispatcher == nil {
		return
	}
	cfg, err := s.store.GetThresholds(ctx)
	if err != nil {
		s.logger.Error("load thresholds for dispatch", "error", err)
		return
	}
	s.dispatcher.ProductChanged(ctx, *p, *cfg, s.today())
}

func normalizeProduct(p *model.Product) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Description = strings.TrimSpace(p.Description)
	if p.Code == "" {
		return fmt.Errorf("%w: product code is required", engine.ErrInvalidInput)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: product description is required", engine.ErrInvalidInput)
	}
	if p.Unit == "" {
		p.Unit = model.UnitUnits
	}
	if p.Unit != model.UnitUnits && p.Unit != model.UnitBoxes {
		return fmt.Errorf("%w: unknown unit of sale %q", engine.ErrInvalidInput, p.Unit)
	}
	return engine.ValidateProduct(*p)
}

func normalizeContact(c *model.Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: contact name is required", engine.ErrInvalidInput)
	}
	if c.Type == "" {
		c.Type = model.ContactSupplier
	}
	if c.Type != model.ContactSupplier && c.Type != model.ContactStore {
		return fmt.Errorf("%w: unknown contact type %q", engine.ErrInvalidInput, c.Type)
	}
	return nil
}
