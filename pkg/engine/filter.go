package engine

import (
	"strings"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// FilterProducts keeps the products whose code or description contains the
// query, case-insensitively. The result preserves the catalog's relative
// order; an empty or whitespace-only query returns the catalog unchanged.
func FilterProducts(catalog []model.Product, query string) []model.Product {
	q := normalizeQuery(query)
	if q == "" {
		return catalog
	}
	matched := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		if containsFold(p.Code, q) || containsFold(p.Description, q) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterContacts keeps the contacts whose name or email contains the query,
// case-insensitively. Contacts without an email simply cannot match on that
// field.
func FilterContacts(contacts []model.Contact, query string) []model.Contact {
	q := normalizeQuery(query)
	if q == "" {
		return contacts
	}
	matched := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		if containsFold(c.Name, q) || containsFold(c.Email, q) {
			matched = append(matched, c)
		}
	}
	return matched
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// containsFold reports whether s contains the already-lowercased substr.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
