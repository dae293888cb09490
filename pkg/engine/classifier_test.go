package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/model"
)

var (
	testToday  = model.NewDate(2025, time.June, 15)
	testConfig = model.ThresholdConfig{LowStockLimit: 10, ExpiryHorizonMonths: 2}
)

func dateRef(d model.Date) *model.Date { return &d }

func TestClassify_StockZero(t *testing.T) {
	p := model.Product{Code: "A1", Stock: 0}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStockZero, category)
}

func TestClassify_StockLow(t *testing.T) {
	p := model.Product{Code: "B1", Stock: 5}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStockLow, category)
}

func TestClassify_ExpirySoon(t *testing.T) {
	p := model.Product{
		Code:       "C1",
		Stock:      20,
		ExpiryDate: dateRef(testToday.AddMonths(1)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertExpirySoon, category)
}

func TestClassify_None(t *testing.T) {
	p := model.Product{
		Code:       "E1",
		Stock:      50,
		ExpiryDate: dateRef(testToday.AddMonths(6)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertNone, category)
}

func TestClassify_ZeroStockDominatesExpiry(t *testing.T) {
	// A depleted product with a near expiry date is StockZero only.
	p := model.Product{
		Code:       "D1",
		Stock:      0,
		ExpiryDate: dateRef(testToday.AddDays(1)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStockZero, category)
}

func TestClassify_LowStockDominatesExpiry(t *testing.T) {
	p := model.Product{
		Code:       "D2",
		Stock:      3,
		ExpiryDate: dateRef(testToday.AddDays(1)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertStockLow, category)
}

func TestClassify_NoExpiryDateNeverExpirySoon(t *testing.T) {
	p := model.Product{Code: "F1", Stock: 100}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertNone, category)
}

func TestClassify_ExpiryExactlyAtHorizon(t *testing.T) {
	// The horizon boundary is inclusive.
	p := model.Product{
		Code:       "G1",
		Stock:      20,
		ExpiryDate: dateRef(testToday.AddMonths(2)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertExpirySoon, category)
}

func TestClassify_ExpiryJustPastHorizon(t *testing.T) {
	p := model.Product{
		Code:       "G2",
		Stock:      20,
		ExpiryDate: dateRef(testToday.AddMonths(2).AddDays(1)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertNone, category)
}

func TestClassify_ExpiryAlreadyPassed(t *testing.T) {
	p := model.Product{
		Code:       "G3",
		Stock:      20,
		ExpiryDate: dateRef(testToday.AddDays(-5)),
	}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertExpirySoon, category)
}

func TestClassify_StockAtLimitIsNotLow(t *testing.T) {
	p := model.Product{Code: "H1", Stock: 10}

	category, err := engine.Classify(p, testConfig, testToday)
	require.NoError(t, err)
	assert.Equal(t, model.AlertNone, category)
}

func TestClassify_HorizonClampsMonthEnd(t *testing.T) {
	// Dec 31 + 2 months clamps to the last day of February.
	today := model.NewDate(2024, time.December, 31)
	p := model.Product{
		Code:       "I1",
		Stock:      20,
		ExpiryDate: dateRef(model.NewDate(2025, time.February, 28)),
	}

	category, err := engine.Classify(p, testConfig, today)
	require.NoError(t, err)
	assert.Equal(t, model.AlertExpirySoon, category)

	past := model.Product{
		Code:       "I2",
		Stock:      20,
		ExpiryDate: dateRef(model.NewDate(2025, time.March, 1)),
	}
	category, err = engine.Classify(past, testConfig, today)
	require.NoError(t, err)
	assert.Equal(t, model.AlertNone, category)
}

func TestClassify_InvalidStock(t *testing.T) {
	p := model.Product{Code: "X1", Stock: -1}

	_, err := engine.Classify(p, testConfig, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestClassify_InvalidPrice(t *testing.T) {
	p := model.Product{Code: "X2", Stock: 5, Price: -0.5}

	_, err := engine.Classify(p, testConfig, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestClassify_InvalidHorizon(t *testing.T) {
	p := model.Product{Code: "X3", Stock: 5}
	cfg := model.ThresholdConfig{LowStockLimit: 10, ExpiryHorizonMonths: 0}

	_, err := engine.Classify(p, cfg, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestClassify_InvalidLimit(t *testing.T) {
	p := model.Product{Code: "X4", Stock: 5}
	cfg := model.ThresholdConfig{LowStockLimit: -1, ExpiryHorizonMonths: 2}

	_, err := engine.Classify(p, cfg, testToday)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestClassify_ZeroToday(t *testing.T) {
	p := model.Product{Code: "X5", Stock: 5}

	_, err := engine.Classify(p, testConfig, model.Date{})
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestValidateThresholds(t *testing.T) {
	assert.NoError(t, engine.ValidateThresholds(model.DefaultThresholds()))
	assert.ErrorIs(t, engine.ValidateThresholds(model.ThresholdConfig{LowStockLimit: 0, ExpiryHorizonMonths: 0}), engine.ErrInvalidInput)
}
