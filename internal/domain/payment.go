package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a single recorded payment. Payments are append-only:
// once inserted they are never mutated or removed.
type Payment struct {
	ID        int64
	Amount    decimal.Decimal
	Receiver  string
	Status    PaymentStatus
	Method    PaymentMethod
	CreatedAt time.Time
	OwnerID   int64
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "success"
	StatusFailed  PaymentStatus = "failed"
	StatusPending PaymentStatus = "pending"
)

var validStatuses = map[PaymentStatus]bool{
	StatusSuccess: true,
	StatusFailed:  true,
	StatusPending: true,
}

// IsValid checks if the status is one of the known settlement states.
func (s PaymentStatus) IsValid() bool {
	return validStatuses[s]
}

// PaymentMethod is the instrument a payment was made with.
type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodCash       PaymentMethod = "cash"
)

var validMethods = map[PaymentMethod]bool{
	MethodCard:       true,
	MethodUPI:        true,
	MethodNetbanking: true,
	MethodCash:       true,
}

// IsValid checks if the method is one of the known instruments.
func (m PaymentMethod) IsValid() bool {
	return validMethods[m]
}

// PaymentDraft is a payment before the store assigns its id and timestamp.
type PaymentDraft struct {
	Amount   decimal.Decimal
	Receiver string
	Status   PaymentStatus
	Method   PaymentMethod
	OwnerID  int64
}

// Validate checks the draft against the ledger's field constraints.
// Zero amounts are legal; negative ones are not.
func (d PaymentDraft) Validate() error {
	if d.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if d.Receiver == "" {
		return ErrEmptyReceiver
	}
	if !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !d.Method.IsValid() {
		return ErrInvalidMethod
	}
	return nil
}
