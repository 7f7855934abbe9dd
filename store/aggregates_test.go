package store

import (
	"testing"
	"time"

	"github.com/LovationAdmin/wealth-sync/models"
)

func TestTotalBalance(t *testing.T) {
	tests := []struct {
		name    string
		wallets []models.Wallet
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []models.Wallet{wallet("a", "Cash", 12.5)}, 12.5},
		{"decimal sum", []models.Wallet{wallet("a", "Cash", 0.1), wallet("b", "Bank", 0.2)}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalBalance(tt.wallets); got != tt.want {
				t.Fatalf("TotalBalance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatesAreDeterministicAndPure(t *testing.T) {
	price := 80.0
	assets := []models.Asset{
		{ID: "a", Name: "House", CurrentValue: 100, PurchasePrice: &price},
		{ID: "b", Name: "Watch", CurrentValue: 20},
	}
	before := assets[0]

	first := assetTotals(assets)
	second := assetTotals(assets)
	if first != second {
		t.Fatalf("recomputation differs: %+v vs %+v", first, second)
	}
	if first.TotalValue != 120 || first.TotalInvestment != 80 {
		t.Fatalf("unexpected totals %+v", first)
	}
	if assets[0].Name != before.Name || *assets[0].PurchasePrice != 80 {
		t.Fatal("input mutated")
	}
}

func TestDebtTotalsTreatMissingPaymentAsZero(t *testing.T) {
	pay := 150.0
	debts := []models.Debt{
		{ID: "d1", OutstandingBalance: 1000, PaymentAmount: &pay},
		{ID: "d2", OutstandingBalance: 250},
	}
	got := debtTotals(debts)
	if got.TotalOutstanding != 1250 || got.TotalMonthlyPayment != 150 {
		t.Fatalf("unexpected totals %+v", got)
	}
}

func TestNetWorth(t *testing.T) {
	wallets := []models.Wallet{wallet("a", "Cash", 500)}
	assets := []models.Asset{{ID: "x", CurrentValue: 1500}}
	debts := []models.Debt{{ID: "d", OutstandingBalance: 300}}
	if got := NetWorth(wallets, assets, debts); got != 1700 {
		t.Fatalf("NetWorth = %v, want 1700", got)
	}
}

func TestSummarizeTransactions(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 10, 0, 0, 0, time.UTC) }
	txs := []models.Transaction{
		{ID: "1", Type: models.TransactionIncome, Amount: 3000, Category: "salary", Date: day(1)},
		{ID: "2", Type: models.TransactionExpense, Amount: 75, Category: "food", Date: day(3)},
		{ID: "3", Type: models.TransactionExpense, Amount: 25, Category: "transport", Date: day(4)},
		{ID: "4", Type: models.TransactionInvestment, Amount: 200, Category: "etf", Date: day(5)},
		{ID: "5", Type: models.TransactionExpense, Amount: 999, Category: "rent", Date: day(30)},
	}

	s := SummarizeTransactions(txs, day(1), day(10))
	if s.Income != 3000 || s.Expense != 100 || s.Investment != 200 {
		t.Fatalf("unexpected sums %+v", s)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %+v", s.ByCategory)
	}
	if s.ByCategory[0].Category != "food" || s.ByCategory[0].PercentOfExpense != 75 {
		t.Fatalf("unexpected first category %+v", s.ByCategory[0])
	}

	all := SummarizeTransactions(txs, time.Time{}, time.Time{})
	if all.Expense != 1099 {
		t.Fatalf("open range expense = %v, want 1099", all.Expense)
	}
}
