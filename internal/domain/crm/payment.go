package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a payment through its lifecycle
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// BillingCycle is the cadence a payment recurs on
type BillingCycle string

const (
	BillingMonthly   BillingCycle = "MONTHLY"
	BillingQuarterly BillingCycle = "QUARTERLY"
	BillingYearly    BillingCycle = "YEARLY"
)

// Payment is a billing record for a client
type Payment struct {
	shared.AgencyAggregateRoot
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency     string          `gorm:"type:varchar(10);not null"`
	Status       PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	BillingCycle BillingCycle    `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	DueDate      time.Time       `gorm:"not null;index"`
	PaidAt       *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record
func NewPayment(agencyID, clientID uuid.UUID, amount decimal.Decimal, currency string, status PaymentStatus, cycle BillingCycle, dueDate time.Time, notes string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency is required")
	}
	if err := validatePaymentStatus(status); err != nil {
		return nil, err
	}
	if err := validateBillingCycle(cycle); err != nil {
		return nil, err
	}

	payment := &Payment{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ClientID:            clientID,
		Amount:              amount,
		Currency:            currency,
		Status:              status,
		BillingCycle:        cycle,
		DueDate:             dueDate,
		Notes:               notes,
	}
	if status == PaymentStatusPaid {
		now := time.Now()
		payment.PaidAt = &now
	}
	return payment, nil
}

// Update applies the mutable payment fields. A transition into PAID stamps
// PaidAt; leaving PAID clears it.
func (p *Payment) Update(amount decimal.Decimal, currency string, status PaymentStatus, cycle BillingCycle, dueDate time.Time, notes string) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency is required")
	}
	if err := validatePaymentStatus(status); err != nil {
		return err
	}
	if err := validateBillingCycle(cycle); err != nil {
		return err
	}

	if status == PaymentStatusPaid && p.Status != PaymentStatusPaid {
		now := time.Now()
		p.PaidAt = &now
	}
	if status != PaymentStatusPaid {
		p.PaidAt = nil
	}

	p.Amount = amount
	p.Currency = currency
	p.Status = status
	p.BillingCycle = cycle
	p.DueDate = dueDate
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsOutstanding reports whether the payment still needs collecting
func (p *Payment) IsOutstanding() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}

func validatePaymentStatus(status PaymentStatus) error {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusFailed:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid payment status")
	}
}

func validateBillingCycle(cycle BillingCycle) error {
	switch cycle {
	case BillingMonthly, BillingQuarterly, BillingYearly:
		return nil
	default:
		return shared.NewDomainError("INVALID_CYCLE", "Billing cycle must be MONTHLY, QUARTERLY, or YEARLY")
	}
}
