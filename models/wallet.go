package models

import "time"

type WalletType string

const (
	WalletCash       WalletType = "cash"
	WalletBank       WalletType = "bank"
	WalletInvestment WalletType = "investment"
	WalletOther      WalletType = "other"
)

// ============================================================================
// WALLET MODEL
// ============================================================================

// Wallet balance is set directly by the user; it is never derived from transactions.
type Wallet struct {
	ID        string     `json:"id" validate:"required"`
	UserID    string     `json:"user_id" validate:"required"`
	Name      string     `json:"name" validate:"required,min=2"`
	Type      WalletType `json:"type" validate:"required,oneof=cash bank investment other"`
	Balance   float64    `json:"balance" validate:"gte=0"`
	Icon      *string    `json:"icon,omitempty"`
	CreatedAt time.Time  `json:"created_at" validate:"required"`
}

// ============================================================================
// WALLET REQUESTS
// ============================================================================

type WalletInput struct {
	Name    string     `json:"name" validate:"required,min=2"`
	Type    WalletType `json:"type" validate:"required,oneof=cash bank investment other"`
	Balance float64    `json:"balance" validate:"gte=0"`
	Icon    *string    `json:"icon,omitempty"`
}

func (in *WalletInput) ApplyDefaults() {
	if in.Type == "" {
		in.Type = WalletCash
	}
}

func (in WalletInput) Build(id, ownerID string, now time.Time) Wallet {
	return Wallet{
		ID:        id,
		UserID:    ownerID,
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		Icon:      in.Icon,
		CreatedAt: now,
	}
}

type WalletPatch struct {
	Name    *string     `json:"name,omitempty" validate:"omitempty,min=2"`
	Type    *WalletType `json:"type,omitempty" validate:"omitempty,oneof=cash bank investment other"`
	Balance *float64    `json:"balance,omitempty" validate:"omitempty,gte=0"`
	Icon    *string     `json:"icon,omitempty"`
}

func (p WalletPatch) Apply(w Wallet) Wallet {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Balance != nil {
		w.Balance = *p.Balance
	}
	if p.Icon != nil {
		w.Icon = p.Icon
	}
	return w
}
