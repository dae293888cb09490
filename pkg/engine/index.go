package engine

import (
	"sort"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// BuildAlerts classifies every product in the catalog and returns the active
// alerts plus per-category counts. Products classified None are excluded
// from the list. The whole catalog is validated before anything is
// classified, so an invalid row never yields partial output.
//
// Ordering is stable and total: severity (StockZero, StockLow, ExpirySoon)
// first, product code ascending within a category. Identical inputs produce
// identical output.
func BuildAlerts(catalog []model.Product, cfg model.ThresholdConfig, today model.Date) (*model.AlertSet, error) {
	if err := ValidateThresholds(cfg); err != nil {
		return nil, err
	}
	if err := validateToday(today); err != nil {
		return nil, err
	}
	for _, p := range catalog {
		if err := ValidateProduct(p); err != nil {
			return nil, err
		}
	}

	set := &model.AlertSet{
		Alerts: make([]model.AlertRecord, 0, len(catalog)),
		Counts: make(map[model.AlertCategory]int),
	}

	for _, p := range catalog {
		category := classify(p, cfg, today)
		if category == model.AlertNone {
			continue
		}

		record := model.AlertRecord{
			ProductID:   p.ID,
			Code:        p.Code,
			Description: p.Description,
			Category:    category,
			Stock:       p.Stock,
			ExpiryDate:  p.ExpiryDate,
		}
		if category == model.AlertExpirySoon {
			// An already-passed expiry with remaining stock stays on the
			// list; it shows as zero days, never a negative count.
			days := today.DaysUntil(*p.ExpiryDate)
			if days < 0 {
				days = 0
			}
			record.DaysUntilExpiry = &days
		}

		set.Alerts = append(set.Alerts, record)
		set.Counts[category]++
	}

	sort.SliceStable(set.Alerts, func(i, j int) bool {
		a, b := set.Alerts[i], set.Alerts[j]
		if ra, rb := severityRank(a.Category), severityRank(b.Category); ra != rb {
			return ra < rb
		}
		return a.Code < b.Code
	})

	return set, nil
}
