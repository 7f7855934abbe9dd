package models

import "time"

type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionExpense    TransactionType = "expense"
	TransactionInvestment TransactionType = "investment"
)

// Transaction amounts are always positive; Type carries the direction.
type Transaction struct {
	ID          string          `json:"id" validate:"required"`
	UserID      string          `json:"user_id" validate:"required"`
	WalletID    string          `json:"wallet_id" validate:"required"`
	Amount      float64         `json:"amount" validate:"gt=0"`
	Type        TransactionType `json:"type" validate:"required,oneof=income expense investment"`
	Category    string          `json:"category" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date" validate:"required"`
	CreatedAt   time.Time       `json:"created_at" validate:"required"`
}

type TransactionInput struct {
	WalletID    string          `json:"wallet_id" validate:"required"`
	Amount      float64         `json:"amount" validate:"gt=0"`
	Type        TransactionType `json:"type" validate:"required,oneof=income expense investment"`
	Category    string          `json:"category" validate:"required"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

func (in *TransactionInput) ApplyDefaults() {
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}
}

func (in TransactionInput) Build(id, ownerID string, now time.Time) Transaction {
	return Transaction{
		ID:          id,
		UserID:      ownerID,
		WalletID:    in.WalletID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   now,
	}
}

type TransactionPatch struct {
	WalletID    *string          `json:"wallet_id,omitempty" validate:"omitempty,min=1"`
	Amount      *float64         `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Type        *TransactionType `json:"type,omitempty" validate:"omitempty,oneof=income expense investment"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.WalletID != nil {
		t.WalletID = *p.WalletID
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	return t
}
