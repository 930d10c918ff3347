package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypePaymentCreated = "paymentCreated"
)

// PaymentCreatedEvent is broadcast to live subscribers after a payment is
// recorded. Delivery is best-effort; subscribers treat it as a hint to
// re-query rather than as a state-carrying message.
type PaymentCreatedEvent struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Receiver  string          `json:"receiver"`
	Status    PaymentStatus   `json:"status"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt time.Time       `json:"createdAt"`
	OwnerID   int64           `json:"userId"`
}

// NewPaymentCreatedEvent builds the broadcast payload for a payment.
func NewPaymentCreatedEvent(p *Payment) PaymentCreatedEvent {
	return PaymentCreatedEvent{
		ID:        p.ID,
		Amount:    p.Amount,
		Receiver:  p.Receiver,
		Status:    p.Status,
		Method:    p.Method,
		CreatedAt: p.CreatedAt,
		OwnerID:   p.OwnerID,
	}
}
