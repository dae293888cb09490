package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/model"
)

func TestPresentationFor_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		product model.Product
		want    model.StyleTag
	}{
		{"depleted", model.Product{Code: "A1", Stock: 0}, model.StyleDepleted},
		{"low stock", model.Product{Code: "B1", Stock: 5}, model.StyleLowStock},
		{"expiring soon", model.Product{Code: "C1", Stock: 20, ExpiryDate: dateRef(testToday.AddMonths(1))}, model.StyleExpiringSoon},
		{"normal", model.Product{Code: "E1", Stock: 50}, model.StyleNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			style, err := engine.PresentationFor(tc.product, testConfig, testToday)
			require.NoError(t, err)
			assert.Equal(t, tc.want, style)
		})
	}
}

// The row style and the alert category must always agree; both are derived
// from the same classification pass.
func TestPresentationFor_AgreesWithClassify(t *testing.T) {
	styleFor := map[model.AlertCategory]model.StyleTag{
		model.AlertStockZero:  model.StyleDepleted,
		model.AlertStockLow:   model.StyleLowStock,
		model.AlertExpirySoon: model.StyleExpiringSoon,
		model.AlertNone:       model.StyleNormal,
	}

	products := scenarioCatalog()
	products = append(products,
		model.Product{ID: "p-e1", Code: "E1", Description: "Salt", Stock: 500},
		model.Product{ID: "p-f1", Code: "F1", Description: "Flour", Stock: 9, ExpiryDate: dateRef(testToday.AddDays(3))},
		model.Product{ID: "p-g1", Code: "G1", Description: "Oil", Stock: 10, ExpiryDate: dateRef(testToday.AddMonths(2))},
	)

	for _, p := range products {
		category, err := engine.Classify(p, testConfig, testToday)
		require.NoError(t, err)

		style, err := engine.PresentationFor(p, testConfig, testToday)
		require.NoError(t, err)

		assert.Equal(t, styleFor[category], style, "product %s", p.Code)
	}
}

func TestPresentationFor_InvalidInput(t *testing.T) {
	_, err := engine.PresentationFor(model.Product{Code: "X1", Stock: -1}, testConfig, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}
