package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/metrics"
)

// PaymentUseCase handles payment ledger business logic.
type PaymentUseCase struct {
	paymentRepo PaymentRepository
	broker      EventBroker
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase. metrics may be nil.
func NewPaymentUseCase(paymentRepo PaymentRepository, broker EventBroker, m *metrics.Metrics, logger zerolog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		broker:      broker,
		metrics:     m,
		logger:      logger,
	}
}

// ListPaymentsInput represents input for listing payments.
type ListPaymentsInput struct {
	Filter domain.PaymentFilter
	Page   int
	Limit  int
}

// PaymentPage is one page of query results plus paging metadata.
type PaymentPage struct {
	Payments  []*domain.Payment
	Total     int64
	Page      int
	PageCount int
}

// List returns a page of payments matching the filter. Page values below 1
// are coerced to 1; non-positive limits fall back to the default page size.
func (uc *PaymentUseCase) List(ctx context.Context, input ListPaymentsInput) (*PaymentPage, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	offset := (input.Page - 1) * input.Limit

	payments, total, err := uc.paymentRepo.Query(ctx, input.Filter, input.Limit, offset)
	if err != nil {
		return nil, err
	}

	pageCount := 0
	if total > 0 {
		pageCount = int((total + int64(input.Limit) - 1) / int64(input.Limit))
	}

	return &PaymentPage{
		Payments:  payments,
		Total:     total,
		Page:      input.Page,
		PageCount: pageCount,
	}, nil
}

// Get retrieves a payment by id.
func (uc *PaymentUseCase) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// CreatePaymentInput represents input for recording a payment.
type CreatePaymentInput struct {
	Amount   decimal.Decimal
	Receiver string
	Status   domain.PaymentStatus
	Method   domain.PaymentMethod
	OwnerID  int64
}

// Create validates and records a payment, then broadcasts a creation event
// to live subscribers. The broadcast is fire-and-forget: it neither delays
// nor fails the creation.
func (uc *PaymentUseCase) Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	draft := domain.PaymentDraft{
		Amount:   input.Amount,
		Receiver: input.Receiver,
		Status:   input.Status,
		Method:   input.Method,
		OwnerID:  input.OwnerID,
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	payment, err := uc.paymentRepo.Insert(ctx, draft)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("payment_id", payment.ID).
		Str("status", string(payment.Status)).
		Str("method", string(payment.Method)).
		Msg("payment recorded")

	if uc.metrics != nil {
		uc.metrics.PaymentsCreated.Inc()
		amount, _ := payment.Amount.Float64()
		uc.metrics.PaymentAmount.Observe(amount)
	}

	if uc.broker != nil {
		uc.broker.Publish(domain.NewPaymentCreatedEvent(payment))
	}

	return payment, nil
}
