package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/LovationAdmin/wealth-sync/models"
)

func asset(id string, kind models.AssetType, value float64) models.Asset {
	return models.Asset{ID: id, UserID: "u1", Name: "Asset " + id, AssetType: kind, CurrentValue: value, CreatedAt: created}
}

func debt(id string, next *string) models.Debt {
	return models.Debt{
		ID:                 id,
		UserID:             "u1",
		Name:               "Debt " + id,
		DebtType:           models.DebtLoan,
		OutstandingBalance: 100,
		RepaymentFrequency: models.RepayMonthly,
		RepaymentStartDate: "2024-01-01",
		NextPaymentDate:    next,
		TenureType:         "months",
		CreatedAt:          created,
	}
}

func transaction(id, walletID string, day int) models.Transaction {
	return models.Transaction{
		ID:        id,
		UserID:    "u1",
		WalletID:  walletID,
		Amount:    10,
		Type:      models.TransactionExpense,
		Category:  "Food",
		Date:      time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		CreatedAt: created,
	}
}

func strPtr(s string) *string { return &s }

// serving answers every GET with body.
func serving(t *testing.T, body any) *fakeAPI {
	api := &fakeAPI{}
	raw := mustJSON(t, body)
	api.handler = func(call) (json.RawMessage, error) { return raw, nil }
	return api
}

func TestWalletsByType(t *testing.T) {
	cash := wallet("c", "Pocket", 15)
	cash.Type = models.WalletCash
	s := NewWalletStore(serving(t, []models.Wallet{wallet("a", "Main", 100), wallet("b", "Savings", 50.5), cash}))
	if _, err := s.FetchAll(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	got := s.ByType()
	if len(got) != 2 || got[models.WalletBank] != 150.5 || got[models.WalletCash] != 15 {
		t.Fatalf("unexpected grouping %v", got)
	}
}

func TestAssetAllocation(t *testing.T) {
	s := NewAssetStore(serving(t, []models.Asset{
		asset("a", models.AssetStock, 0.1),
		asset("b", models.AssetStock, 0.2),
		asset("c", models.AssetProperty, 1000),
	}))
	if _, err := s.FetchAll(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	got := s.Allocation()
	if got[models.AssetStock] != 0.3 || got[models.AssetProperty] != 1000 {
		t.Fatalf("unexpected allocation %v", got)
	}
}

func TestDebtsDueBy(t *testing.T) {
	s := NewDebtStore(serving(t, []models.Debt{
		debt("late", strPtr("2024-04-02")),
		debt("none", nil),
		debt("edge", strPtr("2024-03-31")),
		debt("soon", strPtr("2024-03-05")),
	}))
	if _, err := s.FetchAll(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		day  time.Time
		want []string
	}{
		{"before any", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil},
		{"includes the cutoff day", time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), []string{"soon", "edge"}},
		{"next month", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), []string{"soon", "edge", "late"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, d := range s.DueBy(tt.day) {
				got = append(got, d.ID)
			}
			if !equalStrings(got, tt.want) {
				t.Fatalf("DueBy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransactionsForWalletNewestFirst(t *testing.T) {
	s := NewTransactionStore(serving(t, []models.Transaction{
		transaction("t1", "w1", 3),
		transaction("t2", "w2", 4),
		transaction("t3", "w1", 9),
	}))
	if _, err := s.FetchAll(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tx := range s.ForWallet("w1") {
		got = append(got, tx.ID)
	}
	if !equalStrings(got, []string{"t3", "t1"}) {
		t.Fatalf("ForWallet = %v", got)
	}
	if len(s.ForWallet("missing")) != 0 {
		t.Fatal("expected nothing for an unknown wallet")
	}
}

func TestFindByID(t *testing.T) {
	s := NewWalletStore(serving(t, []models.Wallet{wallet("a", "Main", 1), wallet("b", "Savings", 2)}))
	if _, err := s.FetchAll(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	if w, ok := s.Find("b"); !ok || w.Name != "Savings" {
		t.Fatalf("Find(b) = %+v, %v", w, ok)
	}
	if _, ok := s.Find("zzz"); ok {
		t.Fatal("found an id that is not loaded")
	}
}
