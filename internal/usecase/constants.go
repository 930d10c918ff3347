package usecase

import "time"

const (
	// DefaultPageSize is the page size applied when the caller supplies none
	// or a non-positive value
	DefaultPageSize = 10

	// DefaultExportMaxRows caps the number of rows a single export encodes
	DefaultExportMaxRows = 10000

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// BcryptCost is the work factor for password hashing
	BcryptCost = 10
)
