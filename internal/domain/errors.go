package domain

import "errors"

var (
	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrEmptyReceiver   = errors.New("receiver must not be empty")
	ErrInvalidStatus   = errors.New("invalid payment status")
	ErrInvalidMethod   = errors.New("invalid payment method")
	ErrInvalidAmount   = errors.New("invalid payment amount")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)
