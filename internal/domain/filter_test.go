package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPaymentFilter_CreatedAtBounds(t *testing.T) {
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 12)

	f := PaymentFilter{StartDate: &start, EndDate: &end}
	from, to := f.CreatedAtBounds()

	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, date(2024, time.January, 10), *from)
	// End bound is exclusive: midnight of the day after endDate.
	assert.Equal(t, date(2024, time.January, 13), *to)
}

func TestPaymentFilter_CreatedAtBounds_TruncatesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.March, 5, 17, 33, 9, 0, time.UTC)
	f := PaymentFilter{StartDate: &start}

	from, to := f.CreatedAtBounds()
	require.NotNil(t, from)
	assert.Equal(t, date(2024, time.March, 5), *from)
	assert.Nil(t, to)
}

func TestPaymentFilter_Matches_Conjunctive(t *testing.T) {
	status := StatusSuccess
	method := MethodUPI
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	f := PaymentFilter{Status: &status, Method: &method, StartDate: &start, EndDate: &end}

	match := &Payment{
		Status:    StatusSuccess,
		Method:    MethodUPI,
		CreatedAt: date(2024, time.January, 15),
	}
	assert.True(t, f.Matches(match))

	wrongStatus := *match
	wrongStatus.Status = StatusFailed
	assert.False(t, f.Matches(&wrongStatus))

	wrongMethod := *match
	wrongMethod.Method = MethodCash
	assert.False(t, f.Matches(&wrongMethod))

	tooEarly := *match
	tooEarly.CreatedAt = date(2023, time.December, 31)
	assert.False(t, f.Matches(&tooEarly))

	tooLate := *match
	tooLate.CreatedAt = date(2024, time.February, 1)
	assert.False(t, f.Matches(&tooLate))
}

func TestPaymentFilter_Matches_DayGranularityInclusive(t *testing.T) {
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 10)
	f := PaymentFilter{StartDate: &start, EndDate: &end}

	// Record created exactly at startDate's midnight is included.
	atMidnight := &Payment{CreatedAt: date(2024, time.January, 10)}
	assert.True(t, f.Matches(atMidnight))

	// Last instant of endDate is included.
	lastMoment := &Payment{CreatedAt: time.Date(2024, time.January, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)}
	assert.True(t, f.Matches(lastMoment))

	// The instant after endDate's last moment is excluded.
	nextMidnight := &Payment{CreatedAt: date(2024, time.January, 11)}
	assert.False(t, f.Matches(nextMidnight))
}

func TestPaymentFilter_Empty_MatchesEverything(t *testing.T) {
	f := PaymentFilter{}
	assert.True(t, f.IsEmpty())
	assert.True(t, f.Matches(&Payment{Status: StatusFailed, Method: MethodCash, CreatedAt: date(1999, time.July, 4)}))
}

func TestStartOfWeek_SundayConvention(t *testing.T) {
	// 2024-01-10 is a Wednesday; the week started Sunday 2024-01-07.
	assert.Equal(t, date(2024, time.January, 7), StartOfWeek(time.Date(2024, time.January, 10, 15, 4, 5, 0, time.UTC)))

	// A Sunday is its own week start.
	assert.Equal(t, date(2024, time.January, 7), StartOfWeek(time.Date(2024, time.January, 7, 0, 0, 1, 0, time.UTC)))

	// Saturday belongs to the week that began six days earlier.
	assert.Equal(t, date(2024, time.January, 7), StartOfWeek(date(2024, time.January, 13)))
}

func TestStartOfDay(t *testing.T) {
	assert.Equal(t, date(2024, time.June, 1), StartOfDay(time.Date(2024, time.June, 1, 23, 59, 59, 0, time.UTC)))
}
