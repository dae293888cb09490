package engine

import "github.com/stockguard-io/stockguard/pkg/model"

// styleByCategory is the fixed 1:1 category-to-style mapping. Row styling
// goes through Classify so the alerts panel and per-row indicators can
// never disagree.
var styleByCategory = map[model.AlertCategory]model.StyleTag{
	model.AlertStockZero:  model.StyleDepleted,
	model.AlertStockLow:   model.StyleLowStock,
	model.AlertExpirySoon: model.StyleExpiringSoon,
	model.AlertNone:       model.StyleNormal,
}

// PresentationFor returns the display style for a product row.
func PresentationFor(p model.Product, cfg model.ThresholdConfig, today model.Date) (model.StyleTag, error) {
	category, err := Classify(p, cfg, today)
	if err != nil {
		return "", err
	}
	return styleByCategory[category], nil
}
