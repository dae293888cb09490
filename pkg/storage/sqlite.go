package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/stockguard-io/stockguard/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db       *sql.DB
	defaults model.ThresholdConfig
}

// NewSQLite opens or creates an SQLite database at the given path. defaults
// seeds the threshold configuration on the first read.
func NewSQLite(dbPath string, defaults model.ThresholdConfig) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db, defaults: defaults}, nil
}

func (s *SQLite) SaveProduct(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	if product.Unit == "" {
		product.Unit = model.UnitUnits
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, code, description, unit, stock, price, intake_date, expiry_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   code = excluded.code,
		   description = excluded.description,
		   unit = excluded.unit,
		   stock = excluded.stock,
		   price = excluded.price,
		   intake_date = excluded.intake_date,
		   expiry_date = excluded.expiry_date,
		   updated_at = excluded.updated_at`,
		product.ID, product.Code, product.Description, product.Unit,
		product.Stock, product.Price,
		dateArg(product.IntakeDate), dateArg(product.ExpiryDate),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (s *SQLite) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, description, unit, stock, price, intake_date, expiry_date, created_at, updated_at
		 FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *SQLite) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, description, unit, stock, price, intake_date, expiry_date, created_at, updated_at
		 FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *SQLite) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLite) SaveContact(ctx context.Context, contact *model.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	if contact.Type == "" {
		contact.Type = model.ContactSupplier
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, address, phone, email, type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   address = excluded.address,
		   phone = excluded.phone,
		   email = excluded.email,
		   type = excluded.type`,
		contact.ID, contact.Name, contact.Address, contact.Phone,
		contact.Email, contact.Type, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

func (s *SQLite) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, address, phone, email, type, created_at
		 FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Type, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

func (s *SQLite) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, phone, email, type, created_at
		 FROM contacts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *SQLite) DeleteContact(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLite) GetThresholds(ctx context.Context) (*model.ThresholdConfig, error) {
	var cfg model.ThresholdConfig
	err := s.db.QueryRowContext(ctx,
		`SELECT low_stock_limit, expiry_horizon_months, updated_at
		 FROM threshold_config WHERE id = 1`,
	).Scan(&cfg.LowStockLimit, &cfg.ExpiryHorizonMonths, &cfg.UpdatedAt)
	if err == sql.ErrNoRows {
		// First read: persist and return the defaults, so later updates
		// always have a row to replace.
		cfg = s.defaults
		if err := s.SetThresholds(ctx, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get thresholds: %w", err)
	}
	return &cfg, nil
}

func (s *SQLite) SetThresholds(ctx context.Context, cfg *model.ThresholdConfig) error {
	cfg.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO threshold_config (id, low_stock_limit, expiry_horizon_months, updated_at)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   low_stock_limit = excluded.low_stock_limit,
		   expiry_horizon_months = excluded.expiry_horizon_months,
		   updated_at = excluded.updated_at`,
		cfg.LowStockLimit, cfg.ExpiryHorizonMonths, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("set thresholds: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*model.Product, error) {
	var p model.Product
	var intake, expiry sql.NullString
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.Unit, &p.Stock, &p.Price,
		&intake, &expiry, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.IntakeDate, err = scanDate(intake); err != nil {
		return nil, err
	}
	if p.ExpiryDate, err = scanDate(expiry); err != nil {
		return nil, err
	}
	return &p, nil
}

func dateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanDate(v sql.NullString) (*model.Date, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := model.ParseDate(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
