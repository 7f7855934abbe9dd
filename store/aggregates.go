package store

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LovationAdmin/wealth-sync/models"
)

// Aggregates are recomputed from the whole list after every mutation rather
// than maintained incrementally. Sums run in decimal and are converted once.

func sum[T any](items []T, value func(T) float64) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(value(item)))
	}
	return total.InexactFloat64()
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func TotalBalance(wallets []models.Wallet) float64 {
	return sum(wallets, func(w models.Wallet) float64 { return w.Balance })
}

func TotalAssetsValue(assets []models.Asset) float64 {
	return sum(assets, func(a models.Asset) float64 { return a.CurrentValue })
}

// TotalInvestment sums purchase prices; assets without one count as 0.
func TotalInvestment(assets []models.Asset) float64 {
	return sum(assets, func(a models.Asset) float64 { return orZero(a.PurchasePrice) })
}

func TotalOutstanding(debts []models.Debt) float64 {
	return sum(debts, func(d models.Debt) float64 { return d.OutstandingBalance })
}

// TotalMonthlyPayment sums payment amounts; debts without one count as 0.
func TotalMonthlyPayment(debts []models.Debt) float64 {
	return sum(debts, func(d models.Debt) float64 { return orZero(d.PaymentAmount) })
}

func NetWorth(wallets []models.Wallet, assets []models.Asset, debts []models.Debt) float64 {
	return decimal.NewFromFloat(TotalBalance(wallets)).
		Add(decimal.NewFromFloat(TotalAssetsValue(assets))).
		Sub(decimal.NewFromFloat(TotalOutstanding(debts))).
		InexactFloat64()
}

// ============================================================================
// PER-STORE TOTALS
// ============================================================================

type WalletTotals struct {
	TotalBalance float64 `json:"total_balance"`
}

type TransactionTotals struct {
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	Investment float64 `json:"investment"`
}

type AssetTotals struct {
	TotalValue      float64 `json:"total_value"`
	TotalInvestment float64 `json:"total_investment"`
}

type DebtTotals struct {
	TotalOutstanding    float64 `json:"total_outstanding"`
	TotalMonthlyPayment float64 `json:"total_monthly_payment"`
}

func walletTotals(wallets []models.Wallet) WalletTotals {
	return WalletTotals{TotalBalance: TotalBalance(wallets)}
}

func transactionTotals(txs []models.Transaction) TransactionTotals {
	s := SummarizeTransactions(txs, time.Time{}, time.Time{})
	return TransactionTotals{Income: s.Income, Expense: s.Expense, Investment: s.Investment}
}

func assetTotals(assets []models.Asset) AssetTotals {
	return AssetTotals{
		TotalValue:      TotalAssetsValue(assets),
		TotalInvestment: TotalInvestment(assets),
	}
}

func debtTotals(debts []models.Debt) DebtTotals {
	return DebtTotals{
		TotalOutstanding:    TotalOutstanding(debts),
		TotalMonthlyPayment: TotalMonthlyPayment(debts),
	}
}

// ============================================================================
// TRANSACTION SUMMARY
// ============================================================================

type CategoryAmount struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	PercentOfExpense float64 `json:"percent_of_expense"`
}

type TransactionSummary struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Income     float64          `json:"income"`
	Expense    float64          `json:"expense"`
	Investment float64          `json:"investment"`
	ByCategory []CategoryAmount `json:"by_category"`
}

// SummarizeTransactions totals transactions dated within [from, to]. A zero
// bound leaves that side open. Categories are ordered by amount, descending.
func SummarizeTransactions(txs []models.Transaction, from, to time.Time) TransactionSummary {
	income, expense, investment := decimal.Zero, decimal.Zero, decimal.Zero
	byCategory := map[string]decimal.Decimal{}

	for _, t := range txs {
		if !from.IsZero() && t.Date.Before(from) {
			continue
		}
		if !to.IsZero() && t.Date.After(to) {
			continue
		}
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionIncome:
			income = income.Add(amount)
		case models.TransactionExpense:
			expense = expense.Add(amount)
			category := t.Category
			if category == "" {
				category = "uncategorized"
			}
			byCategory[category] = byCategory[category].Add(amount)
		case models.TransactionInvestment:
			investment = investment.Add(amount)
		}
	}

	summary := TransactionSummary{
		From:       from,
		To:         to,
		Income:     income.InexactFloat64(),
		Expense:    expense.InexactFloat64(),
		Investment: investment.InexactFloat64(),
		ByCategory: make([]CategoryAmount, 0, len(byCategory)),
	}
	for category, amount := range byCategory {
		pct := 0.0
		if expense.IsPositive() {
			pct = amount.Div(expense).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		summary.ByCategory = append(summary.ByCategory, CategoryAmount{
			Category:         category,
			Amount:           amount.InexactFloat64(),
			PercentOfExpense: pct,
		})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Amount == summary.ByCategory[j].Amount {
			return summary.ByCategory[i].Category < summary.ByCategory[j].Category
		}
		return summary.ByCategory[i].Amount > summary.ByCategory[j].Amount
	})
	return summary
}
