package inventory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// catalogFile is the YAML document for catalog import and export.
type catalogFile struct {
	Products []model.Product `yaml:"products"`
}

// LoadCatalogFile reads a YAML catalog file.
func LoadCatalogFile(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog file %s: no products defined", path)
	}
	return file.Products, nil
}

// ImportCatalog loads products from a YAML file and creates each one,
// returning the number imported. It stops at the first invalid product.
func (s *Service) ImportCatalog(ctx context.Context, path string) (int, error) {
	products, err := LoadCatalogFile(path)
	if err != nil {
		return 0, err
	}

	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("import product %q: %w", products[i].Code, err)
		}
	}
	return len(products), nil
}

// ExportCatalog writes the full catalog to a YAML file and returns the
// number of products written.
func (s *Service) ExportCatalog(ctx context.Context, path string) (int, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return 0, err
	}

	data, err := yaml.Marshal(catalogFile{Products: products})
	if err != nil {
		return 0, fmt.Errorf("marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write catalog file %s: %w", path, err)
	}
	return len(products), nil
}
