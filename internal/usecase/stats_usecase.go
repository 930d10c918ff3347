package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finlane/payledger/internal/domain"
)

// StatsUseCase computes the aggregate overview bundle over the entire
// ledger. It holds no state between calls and is safe for concurrent use.
type StatsUseCase struct {
	paymentRepo PaymentRepository
	now         func() time.Time
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(paymentRepo PaymentRepository) *StatsUseCase {
	return &StatsUseCase{
		paymentRepo: paymentRepo,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (uc *StatsUseCase) WithClock(now func() time.Time) *StatsUseCase {
	uc.now = now
	return uc
}

// DailyRevenue is the revenue recorded within one UTC calendar day.
type DailyRevenue struct {
	Date    string
	Revenue decimal.Decimal
}

// StatsOverview is the aggregate bundle evaluated at call time.
type StatsOverview struct {
	TotalToday   int64
	TotalWeek    int64
	TotalRevenue decimal.Decimal
	FailedCount  int64
	Last7Days    []DailyRevenue
}

// Overview evaluates the bundle against the current instant. The sub-queries
// are mutually independent reads and run concurrently.
//
// TotalRevenue deliberately sums every record regardless of status: the
// figure reports gross recorded volume, failed and pending included.
func (uc *StatsUseCase) Overview(ctx context.Context) (*StatsOverview, error) {
	now := uc.now().UTC()
	today := domain.StartOfDay(now)
	weekStart := domain.StartOfWeek(now)

	overview := &StatsOverview{
		TotalRevenue: decimal.Zero,
		Last7Days:    make([]DailyRevenue, 7),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := uc.paymentRepo.Aggregate(gctx, domain.PaymentFilter{StartDate: &today})
		if err != nil {
			return err
		}
		overview.TotalToday = res.Count
		return nil
	})

	g.Go(func() error {
		res, err := uc.paymentRepo.Aggregate(gctx, domain.PaymentFilter{StartDate: &weekStart})
		if err != nil {
			return err
		}
		overview.TotalWeek = res.Count
		return nil
	})

	g.Go(func() error {
		res, err := uc.paymentRepo.Aggregate(gctx, domain.PaymentFilter{})
		if err != nil {
			return err
		}
		overview.TotalRevenue = res.Sum
		return nil
	})

	g.Go(func() error {
		failed := domain.StatusFailed
		res, err := uc.paymentRepo.Aggregate(gctx, domain.PaymentFilter{Status: &failed})
		if err != nil {
			return err
		}
		overview.FailedCount = res.Count
		return nil
	})

	// One entry per calendar day, oldest first, ending today inclusive.
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)

		g.Go(func() error {
			res, err := uc.paymentRepo.Aggregate(gctx, domain.PaymentFilter{StartDate: &day, EndDate: &day})
			if err != nil {
				return err
			}
			overview.Last7Days[i] = DailyRevenue{
				Date:    day.Format("2006-01-02"),
				Revenue: res.Sum,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overview, nil
}
