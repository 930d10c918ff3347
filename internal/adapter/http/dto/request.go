package dto

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/usecase"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreatePaymentRequest represents a request to record a payment.
// Amount arrives as a JSON number or numeric string; decimal handles both.
// The pointer distinguishes an omitted amount from an explicit zero.
type CreatePaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount"   validate:"required"`
	Receiver string           `json:"receiver" validate:"required"`
	Status   string           `json:"status"   validate:"required,oneof=success failed pending"`
	Method   string           `json:"method"   validate:"required,oneof=card upi netbanking cash"`
}

// ToUseCaseInput converts to use case input. ownerID comes from the
// authenticated caller, never from the payload.
func (r *CreatePaymentRequest) ToUseCaseInput(ownerID int64) usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		Amount:   *r.Amount,
		Receiver: r.Receiver,
		Status:   domain.PaymentStatus(r.Status),
		Method:   domain.PaymentMethod(r.Method),
		OwnerID:  ownerID,
	}
}

// CreateUserRequest represents a request to create a user account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role"     validate:"required,oneof=viewer admin"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// dateLayouts are the accepted formats for startDate/endDate query params.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// PaymentFilterFromQuery parses the optional filter criteria from query
// parameters. Unknown status/method values and unparseable dates are
// rejected.
func PaymentFilterFromQuery(values url.Values) (domain.PaymentFilter, error) {
	var filter domain.PaymentFilter

	if raw := values.Get("status"); raw != "" {
		status := domain.PaymentStatus(raw)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
		}
		filter.Status = &status
	}

	if raw := values.Get("method"); raw != "" {
		method := domain.PaymentMethod(raw)
		if !method.IsValid() {
			return filter, fmt.Errorf("%w: %q", domain.ErrInvalidMethod, raw)
		}
		filter.Method = &method
	}

	if raw := values.Get("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate: %w", err)
		}
		filter.StartDate = &t
	}

	if raw := values.Get("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate: %w", err)
		}
		filter.EndDate = &t
	}

	return filter, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
