package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository against Postgres.
// The payments table is append-only: ids come from a sequence, so they are
// unique and strictly increasing in insertion order.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Insert persists a payment, letting the database assign the id and the
// UTC creation timestamp, and returns the full record.
func (r *PaymentRepository) Insert(ctx context.Context, draft domain.PaymentDraft) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (amount, receiver, status, method, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at
	`

	payment := &domain.Payment{
		Amount:   draft.Amount,
		Receiver: draft.Receiver,
		Status:   draft.Status,
		Method:   draft.Method,
		OwnerID:  draft.OwnerID,
	}

	var createdAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, query,
		decimalToNumeric(draft.Amount),
		draft.Receiver,
		string(draft.Status),
		string(draft.Method),
		draft.OwnerID,
	).Scan(&payment.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	payment.CreatedAt = createdAt.Time.UTC()
	return payment, nil
}

// GetByID retrieves a payment by id.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `
		SELECT id, amount, receiver, status, method, created_at, owner_id
		FROM payments
		WHERE id = $1
	`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return payment, nil
}

// Query returns one page of matching payments, newest first with ties
// broken by descending id, plus the total count of all matches.
func (r *PaymentRepository) Query(ctx context.Context, filter domain.PaymentFilter, limit, offset int) ([]*domain.Payment, int64, error) {
	clause, args := buildPaymentPredicate(filter)

	countQuery := "SELECT count(*) FROM payments " + clause

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, amount, receiver, status, method, created_at, owner_id
		FROM payments %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0, limit)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query payments: %w", err)
	}

	return payments, total, nil
}

// Aggregate computes count and sum(amount) over all matching payments.
func (r *PaymentRepository) Aggregate(ctx context.Context, filter domain.PaymentFilter) (usecase.AggregateResult, error) {
	clause, args := buildPaymentPredicate(filter)

	query := "SELECT count(*), COALESCE(sum(amount), 0) FROM payments " + clause

	var (
		count int64
		sum   pgtype.Numeric
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count, &sum); err != nil {
		return usecase.AggregateResult{}, fmt.Errorf("aggregate payments: %w", err)
	}

	return usecase.AggregateResult{
		Count: count,
		Sum:   numericToDecimal(sum),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		payment   domain.Payment
		amount    pgtype.Numeric
		status    string
		method    string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&payment.ID,
		&amount,
		&payment.Receiver,
		&status,
		&method,
		&createdAt,
		&payment.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	payment.Amount = numericToDecimal(amount)
	payment.Status = domain.PaymentStatus(status)
	payment.Method = domain.PaymentMethod(method)
	payment.CreatedAt = createdAt.Time.UTC()

	return &payment, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
