package models

import "time"

// PaymentStatus is the settlement state of a fee record.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
	PaymentPartial PaymentStatus = "partial"
)

// Valid returns true when the status is a supported value.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentPartial:
		return true
	default:
		return false
	}
}

// FeeRecord is a row of student_fees.
type FeeRecord struct {
	ID            string        `db:"id" json:"id"`
	StudentID     string        `db:"student_id" json:"student_id"`
	FeeType       string        `db:"fee_type" json:"fee_type"`
	Amount        float64       `db:"amount" json:"amount"`
	PaidAmount    float64       `db:"paid_amount" json:"paid_amount"`
	DueDate       Date          `db:"due_date" json:"due_date"`
	PaidDate      *Date         `db:"paid_date" json:"paid_date,omitempty"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentMethod *string       `db:"payment_method" json:"payment_method,omitempty"`
	TransactionID *string       `db:"transaction_id" json:"transaction_id,omitempty"`
	Remarks       *string       `db:"remarks" json:"remarks,omitempty"`
	FullName      string        `db:"full_name" json:"full_name,omitempty"`
	Email         *string       `db:"email" json:"email,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// FeeFilter narrows fee listings.
type FeeFilter struct {
	StudentID string
	Status    PaymentStatus
	Search    string
}

// FeeTotals sums a set of fee records.
type FeeTotals struct {
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	Pending     float64 `json:"pending"`
}

// SumFees totals amount and paid amount; pending is their difference.
func SumFees(records []FeeRecord) FeeTotals {
	var totals FeeTotals
	for _, f := range records {
		totals.TotalAmount += f.Amount
		totals.PaidAmount += f.PaidAmount
	}
	totals.Pending = totals.TotalAmount - totals.PaidAmount
	return totals
}

// FeeStatement is a student's own fee view.
type FeeStatement struct {
	Records []FeeRecord `json:"records"`
	Totals  FeeTotals   `json:"totals"`
}
