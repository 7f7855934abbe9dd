package store

import (
	"sort"
	"time"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
)

type TransactionStore struct {
	*ListStore[models.Transaction, models.TransactionInput, models.TransactionPatch, TransactionTotals]
}

func NewTransactionStore(api client.API) *TransactionStore {
	return &TransactionStore{NewListStore[models.Transaction, models.TransactionInput, models.TransactionPatch](api, Resource[models.Transaction, TransactionTotals]{
		Name:   "transactions",
		Path:   "/api/transactions",
		ID:     func(t models.Transaction) string { return t.ID },
		Totals: transactionTotals,
	})}
}

func (s *TransactionStore) Summary(from, to time.Time) TransactionSummary {
	return SummarizeTransactions(s.Items(), from, to)
}

// ForWallet returns the wallet's transactions, newest first.
func (s *TransactionStore) ForWallet(walletID string) []models.Transaction {
	var out []models.Transaction
	for _, t := range s.Items() {
		if t.WalletID == walletID {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out
}

// Recent returns up to n transactions, newest first.
func (s *TransactionStore) Recent(n int) []models.Transaction {
	items := s.Items()
	sortNewestFirst(items)
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

func sortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
}
