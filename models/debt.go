package models

import "time"

type DebtType string

const (
	DebtLoan       DebtType = "loan"
	DebtCreditCard DebtType = "credit_card"
	DebtP2P        DebtType = "p2p"
	DebtOther      DebtType = "other"
)

// RepaymentFrequency values accepted on input and from the server.
type RepaymentFrequency string

const (
	RepayOnce     RepaymentFrequency = "once"
	RepayWeekly   RepaymentFrequency = "weekly"
	RepayMonthly  RepaymentFrequency = "monthly"
	RepayAnnually RepaymentFrequency = "annually"
	RepayCustom   RepaymentFrequency = "custom"
)

// Debt does not enforce OutstandingBalance <= PrincipalAmount.
type Debt struct {
	ID                 string             `json:"id" validate:"required"`
	UserID             string             `json:"user_id" validate:"required"`
	Name               string             `json:"name" validate:"required,min=2"`
	DebtType           DebtType           `json:"debt_type" validate:"required,oneof=loan credit_card p2p other"`
	PrincipalAmount    float64            `json:"principal_amount" validate:"gte=0"`
	OutstandingBalance float64            `json:"outstanding_balance" validate:"gte=0"`
	InterestRate       float64            `json:"interest_rate" validate:"gte=0"`
	RepaymentFrequency RepaymentFrequency `json:"repayment_frequency" validate:"required,oneof=once weekly monthly annually custom"`
	RepaymentStartDate string             `json:"repayment_start_date" validate:"required,datetime=2006-01-02"`
	RepaymentEndDate   *string            `json:"repayment_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextPaymentDate    *string            `json:"next_payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentAmount      *float64           `json:"payment_amount,omitempty" validate:"omitempty,gte=0"`
	Tenure             float64            `json:"tenure" validate:"gte=0"`
	TenureType         string             `json:"tenure_type" validate:"required"`
	Notes              *string            `json:"notes,omitempty"`
	CreatedAt          time.Time          `json:"created_at" validate:"required"`
}

type DebtInput struct {
	Name               string             `json:"name" validate:"required,min=2"`
	DebtType           DebtType           `json:"debt_type" validate:"required,oneof=loan credit_card p2p other"`
	PrincipalAmount    float64            `json:"principal_amount" validate:"gte=0"`
	OutstandingBalance float64            `json:"outstanding_balance" validate:"gte=0"`
	InterestRate       float64            `json:"interest_rate" validate:"gte=0"`
	RepaymentFrequency RepaymentFrequency `json:"repayment_frequency" validate:"required,oneof=once weekly monthly annually custom"`
	RepaymentStartDate string             `json:"repayment_start_date" validate:"required,datetime=2006-01-02"`
	RepaymentEndDate   *string            `json:"repayment_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextPaymentDate    *string            `json:"next_payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentAmount      *float64           `json:"payment_amount,omitempty" validate:"omitempty,gte=0"`
	Tenure             float64            `json:"tenure" validate:"gte=0"`
	TenureType         string             `json:"tenure_type" validate:"required"`
	Notes              *string            `json:"notes,omitempty"`
}

// ApplyDefaults leaves OutstandingBalance at its zero value when omitted.
func (in *DebtInput) ApplyDefaults() {
	if in.RepaymentFrequency == "" {
		in.RepaymentFrequency = RepayMonthly
	}
}

func (in DebtInput) Build(id, ownerID string, now time.Time) Debt {
	return Debt{
		ID:                 id,
		UserID:             ownerID,
		Name:               in.Name,
		DebtType:           in.DebtType,
		PrincipalAmount:    in.PrincipalAmount,
		OutstandingBalance: in.OutstandingBalance,
		InterestRate:       in.InterestRate,
		RepaymentFrequency: in.RepaymentFrequency,
		RepaymentStartDate: in.RepaymentStartDate,
		RepaymentEndDate:   in.RepaymentEndDate,
		NextPaymentDate:    in.NextPaymentDate,
		PaymentAmount:      in.PaymentAmount,
		Tenure:             in.Tenure,
		TenureType:         in.TenureType,
		Notes:              in.Notes,
		CreatedAt:          now,
	}
}

type DebtPatch struct {
	Name               *string             `json:"name,omitempty" validate:"omitempty,min=2"`
	DebtType           *DebtType           `json:"debt_type,omitempty" validate:"omitempty,oneof=loan credit_card p2p other"`
	PrincipalAmount    *float64            `json:"principal_amount,omitempty" validate:"omitempty,gte=0"`
	OutstandingBalance *float64            `json:"outstanding_balance,omitempty" validate:"omitempty,gte=0"`
	InterestRate       *float64            `json:"interest_rate,omitempty" validate:"omitempty,gte=0"`
	RepaymentFrequency *RepaymentFrequency `json:"repayment_frequency,omitempty" validate:"omitempty,oneof=once weekly monthly annually custom"`
	RepaymentStartDate *string             `json:"repayment_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RepaymentEndDate   *string             `json:"repayment_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NextPaymentDate    *string             `json:"next_payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentAmount      *float64            `json:"payment_amount,omitempty" validate:"omitempty,gte=0"`
	Tenure             *float64            `json:"tenure,omitempty" validate:"omitempty,gte=0"`
	TenureType         *string             `json:"tenure_type,omitempty" validate:"omitempty,min=1"`
	Notes              *string             `json:"notes,omitempty"`
}

func (p DebtPatch) Apply(d Debt) Debt {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.DebtType != nil {
		d.DebtType = *p.DebtType
	}
	if p.PrincipalAmount != nil {
		d.PrincipalAmount = *p.PrincipalAmount
	}
	if p.OutstandingBalance != nil {
		d.OutstandingBalance = *p.OutstandingBalance
	}
	if p.InterestRate != nil {
		d.InterestRate = *p.InterestRate
	}
	if p.RepaymentFrequency != nil {
		d.RepaymentFrequency = *p.RepaymentFrequency
	}
	if p.RepaymentStartDate != nil {
		d.RepaymentStartDate = *p.RepaymentStartDate
	}
	if p.RepaymentEndDate != nil {
		d.RepaymentEndDate = p.RepaymentEndDate
	}
	if p.NextPaymentDate != nil {
		d.NextPaymentDate = p.NextPaymentDate
	}
	if p.PaymentAmount != nil {
		d.PaymentAmount = p.PaymentAmount
	}
	if p.Tenure != nil {
		d.Tenure = *p.Tenure
	}
	if p.TenureType != nil {
		d.TenureType = *p.TenureType
	}
	if p.Notes != nil {
		d.Notes = p.Notes
	}
	return d
}
