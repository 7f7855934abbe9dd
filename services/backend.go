package services

import (
	"database/sql"

	"github.com/LovationAdmin/wealth-sync/models"
)

// Backend bundles the tables behind the reference API.
type Backend struct {
	Accounts     Table[models.Account]
	Profiles     Table[models.UserProfile]
	Wallets      Table[models.Wallet]
	Transactions Table[models.Transaction]
	Assets       Table[models.Asset]
	Debts        Table[models.Debt]
}

func NewMemoryBackend() *Backend {
	return &Backend{
		Accounts:     NewMemoryTable[models.Account](),
		Profiles:     NewMemoryTable[models.UserProfile](),
		Wallets:      NewMemoryTable[models.Wallet](),
		Transactions: NewMemoryTable[models.Transaction](),
		Assets:       NewMemoryTable[models.Asset](),
		Debts:        NewMemoryTable[models.Debt](),
	}
}

// NewPostgresBackend expects config.RunMigrations to have run.
func NewPostgresBackend(db *sql.DB) *Backend {
	return &Backend{
		Accounts:     NewPostgresTable[models.Account](db, "account"),
		Profiles:     NewPostgresTable[models.UserProfile](db, "profile"),
		Wallets:      NewPostgresTable[models.Wallet](db, "wallet"),
		Transactions: NewPostgresTable[models.Transaction](db, "transaction"),
		Assets:       NewPostgresTable[models.Asset](db, "asset"),
		Debts:        NewPostgresTable[models.Debt](db, "debt"),
	}
}
