package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/usecase"
)

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID        int64                `json:"id"`
	Amount    decimal.Decimal      `json:"amount"`
	Receiver  string               `json:"receiver"`
	Status    domain.PaymentStatus `json:"status"`
	Method    domain.PaymentMethod `json:"method"`
	CreatedAt time.Time            `json:"createdAt"`
	UserID    int64                `json:"userId"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		Receiver:  p.Receiver,
		Status:    p.Status,
		Method:    p.Method,
		CreatedAt: p.CreatedAt,
		UserID:    p.OwnerID,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// ListPaymentsResponse is one page of payments plus paging metadata.
type ListPaymentsResponse struct {
	Data      []*PaymentResponse `json:"data"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageCount int                `json:"pageCount"`
}

// PageFromDomain converts a usecase payment page to a response.
func PageFromDomain(page *usecase.PaymentPage) *ListPaymentsResponse {
	return &ListPaymentsResponse{
		Data:      PaymentsFromDomain(page.Payments),
		Total:     page.Total,
		Page:      page.Page,
		PageCount: page.PageCount,
	}
}

// DailyRevenueResponse is the revenue for one UTC calendar day.
type DailyRevenueResponse struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatsResponse is the aggregate overview bundle.
type StatsResponse struct {
	TotalToday   int64                  `json:"totalToday"`
	TotalWeek    int64                  `json:"totalWeek"`
	TotalRevenue decimal.Decimal        `json:"totalRevenue"`
	FailedCount  int64                  `json:"failedCount"`
	Last7Days    []DailyRevenueResponse `json:"last7Days"`
}

// StatsFromDomain converts a usecase overview to a response.
func StatsFromDomain(overview *usecase.StatsOverview) *StatsResponse {
	last7 := make([]DailyRevenueResponse, len(overview.Last7Days))
	for i, day := range overview.Last7Days {
		last7[i] = DailyRevenueResponse{Date: day.Date, Revenue: day.Revenue}
	}
	return &StatsResponse{
		TotalToday:   overview.TotalToday,
		TotalWeek:    overview.TotalWeek,
		TotalRevenue: overview.TotalRevenue,
		FailedCount:  overview.FailedCount,
		Last7Days:    last7,
	}
}

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
