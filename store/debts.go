package store

import (
	"sort"
	"time"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
)

type DebtStore struct {
	*ListStore[models.Debt, models.DebtInput, models.DebtPatch, DebtTotals]
}

func NewDebtStore(api client.API) *DebtStore {
	return &DebtStore{NewListStore[models.Debt, models.DebtInput, models.DebtPatch](api, Resource[models.Debt, DebtTotals]{
		Name:   "debts",
		Path:   "/api/debts",
		ID:     func(d models.Debt) string { return d.ID },
		Totals: debtTotals,
	})}
}

// DueBy lists debts whose next payment falls on or before day, soonest first.
// Debts without a next payment date are skipped.
func (s *DebtStore) DueBy(day time.Time) []models.Debt {
	cutoff := day.Format(time.DateOnly)
	var out []models.Debt
	for _, d := range s.Items() {
		if d.NextPaymentDate != nil && *d.NextPaymentDate <= cutoff {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].NextPaymentDate < *out[j].NextPaymentDate })
	return out
}
