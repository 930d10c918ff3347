package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/metrics"
)

// ExportFilename is the filename hint for CSV downloads.
const ExportFilename = "payments.csv"

// exportHeader is the fixed column order. It is a compatibility contract
// with downstream consumers and must not change without a version bump.
var exportHeader = []string{"id", "amount", "receiver", "status", "method", "createdAt", "userId"}

// ExportUseCase renders a filtered result set as a CSV document.
type ExportUseCase struct {
	paymentRepo PaymentRepository
	maxRows     int
	metrics     *metrics.Metrics
}

// NewExportUseCase creates a new ExportUseCase. maxRows bounds the number of
// rows a single export encodes; non-positive values fall back to the
// default. metrics may be nil.
func NewExportUseCase(paymentRepo PaymentRepository, maxRows int, m *metrics.Metrics) *ExportUseCase {
	if maxRows <= 0 {
		maxRows = DefaultExportMaxRows
	}
	return &ExportUseCase{
		paymentRepo: paymentRepo,
		maxRows:     maxRows,
		metrics:     m,
	}
}

// ExportCSV encodes every payment matching the filter, up to the row cap,
// as a CSV document with a header row. A zero-match filter yields a
// header-only document; a query failure yields no partial document.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, filter domain.PaymentFilter) ([]byte, error) {
	payments, _, err := uc.paymentRepo.Query(ctx, filter, uc.maxRows, 0)
	if err != nil {
		return nil, fmt.Errorf("export query: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("export encode: %w", err)
	}

	for _, p := range payments {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Amount.String(),
			p.Receiver,
			string(p.Status),
			string(p.Method),
			p.CreatedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(p.OwnerID, 10),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export encode: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export encode: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.ExportRows.Observe(float64(len(payments)))
	}

	return buf.Bytes(), nil
}
