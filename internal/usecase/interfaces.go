package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlane/payledger/internal/domain"
)

// AggregateResult holds count and amount sum over a set of payments.
type AggregateResult struct {
	Count int64
	Sum   decimal.Decimal
}

// PaymentRepository defines data access for the payment ledger.
type PaymentRepository interface {
	// Insert assigns the next id and the current UTC timestamp, persists the
	// record and returns it.
	Insert(ctx context.Context, draft domain.PaymentDraft) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	// Query returns one page of matching payments ordered by created_at
	// descending (ties broken by descending id) plus the total match count.
	Query(ctx context.Context, filter domain.PaymentFilter, limit, offset int) ([]*domain.Payment, int64, error)
	// Aggregate computes count and sum(amount) over all matching payments.
	Aggregate(ctx context.Context, filter domain.PaymentFilter) (AggregateResult, error)
}

// UserRepository defines data access for the user directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByUsername returns (nil, nil) when no user matches.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// EventBroker fans a creation event out to live subscribers. Publish must
// never block the caller; delivery is best-effort, at most once per
// subscriber.
type EventBroker interface {
	Publish(event domain.PaymentCreatedEvent)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
