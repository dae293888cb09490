package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/model"
)

func scenarioCatalog() []model.Product {
	return []model.Product{
		{ID: "p-a1", Code: "A1", Description: "Rice", Stock: 0},
		{ID: "p-b1", Code: "B1", Description: "Beans", Stock: 5},
		{ID: "p-c1", Code: "C1", Description: "Milk", Stock: 20, ExpiryDate: dateRef(testToday.AddMonths(1))},
		{ID: "p-d1", Code: "D1", Description: "Yogurt", Stock: 0, ExpiryDate: dateRef(testToday.AddDays(1))},
	}
}

func TestBuildAlerts_OrderingAndCounts(t *testing.T) {
	set, err := engine.BuildAlerts(scenarioCatalog(), testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 4)
	assert.Equal(t, "A1", set.Alerts[0].Code)
	assert.Equal(t, model.AlertStockZero, set.Alerts[0].Category)
	assert.Equal(t, "D1", set.Alerts[1].Code)
	assert.Equal(t, model.AlertStockZero, set.Alerts[1].Category)
	assert.Equal(t, "B1", set.Alerts[2].Code)
	assert.Equal(t, model.AlertStockLow, set.Alerts[2].Category)
	assert.Equal(t, "C1", set.Alerts[3].Code)
	assert.Equal(t, model.AlertExpirySoon, set.Alerts[3].Category)

	assert.Equal(t, map[model.AlertCategory]int{
		model.AlertStockZero:  2,
		model.AlertStockLow:   1,
		model.AlertExpirySoon: 1,
	}, set.Counts)
}

func TestBuildAlerts_Idempotent(t *testing.T) {
	catalog := scenarioCatalog()

	first, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)
	second, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildAlerts_CleanProductsExcluded(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 100},
		{ID: "p2", Code: "P2", Stock: 0},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 1)
	assert.Equal(t, "P2", set.Alerts[0].Code)
	assert.NotContains(t, set.Counts, model.AlertNone)
}

func TestBuildAlerts_DaysUntilExpiry(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 20, ExpiryDate: dateRef(testToday.AddDays(30))},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 1)
	require.NotNil(t, set.Alerts[0].DaysUntilExpiry)
	assert.Equal(t, 30, *set.Alerts[0].DaysUntilExpiry)
}

func TestBuildAlerts_PassedExpiryClampsToZeroDays(t *testing.T) {
	// An overdue product with stock stays on the list with zero days, not a
	// negative count.
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 20, ExpiryDate: dateRef(testToday.AddDays(-10))},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 1)
	assert.Equal(t, model.AlertExpirySoon, set.Alerts[0].Category)
	require.NotNil(t, set.Alerts[0].DaysUntilExpiry)
	assert.Equal(t, 0, *set.Alerts[0].DaysUntilExpiry)
}

func TestBuildAlerts_NoDaysForStockCategories(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 0, ExpiryDate: dateRef(testToday.AddDays(5))},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 1)
	assert.Nil(t, set.Alerts[0].DaysUntilExpiry)
}

func TestBuildAlerts_EmptyCatalog(t *testing.T) {
	set, err := engine.BuildAlerts(nil, testConfig, testToday)
	require.NoError(t, err)

	assert.Empty(t, set.Alerts)
	assert.Empty(t, set.Counts)
}

func TestBuildAlerts_InvalidProductYieldsNoPartialOutput(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 0},
		{ID: "p2", Code: "P2", Stock: -3},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Nil(t, set)
}

func TestBuildAlerts_CodeTieBreakWithinCategory(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "Z9", Stock: 0},
		{ID: "p2", Code: "A1", Stock: 0},
		{ID: "p3", Code: "M5", Stock: 0},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)

	require.Len(t, set.Alerts, 3)
	assert.Equal(t, "A1", set.Alerts[0].Code)
	assert.Equal(t, "M5", set.Alerts[1].Code)
	assert.Equal(t, "Z9", set.Alerts[2].Code)
}

func TestBuildAlerts_ThresholdChangeReclassifies(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 15},
	}

	set, err := engine.BuildAlerts(catalog, testConfig, testToday)
	require.NoError(t, err)
	assert.Empty(t, set.Alerts)

	raised := model.ThresholdConfig{LowStockLimit: 20, ExpiryHorizonMonths: 2}
	set, err = engine.BuildAlerts(catalog, raised, testToday)
	require.NoError(t, err)
	require.Len(t, set.Alerts, 1)
	assert.Equal(t, model.AlertStockLow, set.Alerts[0].Category)
}

func TestBuildAlerts_DateChangeReclassifies(t *testing.T) {
	catalog := []model.Product{
		{ID: "p1", Code: "P1", Stock: 20, ExpiryDate: dateRef(model.NewDate(2025, time.September, 1))},
	}

	early := model.NewDate(2025, time.May, 1)
	set, err := engine.BuildAlerts(catalog, testConfig, early)
	require.NoError(t, err)
	assert.Empty(t, set.Alerts)

	later := model.NewDate(2025, time.July, 2)
	set, err = engine.BuildAlerts(catalog, testConfig, later)
	require.NoError(t, err)
	require.Len(t, set.Alerts, 1)
	assert.Equal(t, model.AlertExpirySoon, set.Alerts[0].Category)
}
