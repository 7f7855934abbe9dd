package models

import "time"

type AssetType string

const (
	AssetCash         AssetType = "cash"
	AssetBankAccount  AssetType = "bank_account"
	AssetInvestment   AssetType = "investment"
	AssetProperty     AssetType = "property"
	AssetPersonalItem AssetType = "personal_item"
	AssetStock        AssetType = "stock"
	AssetOther        AssetType = "other"
)

// Asset keeps current value and purchase price independent; profit/loss is not stored.
type Asset struct {
	ID            string         `json:"id" validate:"required"`
	UserID        string         `json:"user_id" validate:"required"`
	Name          string         `json:"name" validate:"required,min=2"`
	AssetType     AssetType      `json:"asset_type" validate:"required,oneof=cash bank_account investment property personal_item stock other"`
	CurrentValue  float64        `json:"current_value" validate:"gte=0"`
	PurchaseDate  *string        `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice *float64       `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	Notes         *string        `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at" validate:"required"`
	Details       map[string]any `json:"details,omitempty"`
}

type AssetInput struct {
	Name          string         `json:"name" validate:"required,min=2"`
	AssetType     AssetType      `json:"asset_type" validate:"required,oneof=cash bank_account investment property personal_item stock other"`
	CurrentValue  float64        `json:"current_value" validate:"gte=0"`
	PurchaseDate  *string        `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice *float64       `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	Notes         *string        `json:"notes,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

func (in *AssetInput) ApplyDefaults() {
	if in.Details == nil {
		in.Details = map[string]any{}
	}
}

func (in AssetInput) Build(id, ownerID string, now time.Time) Asset {
	return Asset{
		ID:            id,
		UserID:        ownerID,
		Name:          in.Name,
		AssetType:     in.AssetType,
		CurrentValue:  in.CurrentValue,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
		CreatedAt:     now,
		Details:       in.Details,
	}
}

type AssetPatch struct {
	Name          *string        `json:"name,omitempty" validate:"omitempty,min=2"`
	AssetType     *AssetType     `json:"asset_type,omitempty" validate:"omitempty,oneof=cash bank_account investment property personal_item stock other"`
	CurrentValue  *float64       `json:"current_value,omitempty" validate:"omitempty,gte=0"`
	PurchaseDate  *string        `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PurchasePrice *float64       `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	Notes         *string        `json:"notes,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

func (p AssetPatch) Apply(a Asset) Asset {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.AssetType != nil {
		a.AssetType = *p.AssetType
	}
	if p.CurrentValue != nil {
		a.CurrentValue = *p.CurrentValue
	}
	if p.PurchaseDate != nil {
		a.PurchaseDate = p.PurchaseDate
	}
	if p.PurchasePrice != nil {
		a.PurchasePrice = p.PurchasePrice
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	if p.Details != nil {
		a.Details = p.Details
	}
	return a
}
