package workingday

import (
	"context"
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHolidaySource struct {
	holidays []holiday.Holiday
	calls    int
}

func (s *stubHolidaySource) ListForCompanyYear(ctx context.Context, companyID string, year int) ([]holiday.Holiday, error) {
	s.calls++
	return s.holidays, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountExcludesSundaysAndHolidays(t *testing.T) {
	// Dec 24-26 2025: Wed, Thu (Christmas), Fri.
	source := &stubHolidaySource{holidays: []holiday.Holiday{
		{ID: "h1", Name: "Christmas Day", Date: day(2025, time.December, 25)},
	}}
	calc := NewCalculator(source)

	count, err := calc.Count(context.Background(), "company-1", day(2025, time.December, 24), day(2025, time.December, 26))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountIncludesSaturday(t *testing.T) {
	calc := NewCalculator(&stubHolidaySource{})

	// Mon Dec 1 through Sun Dec 7 2025: six working days, only the
	// Sunday drops out.
	count, err := calc.Count(context.Background(), "company-1", day(2025, time.December, 1), day(2025, time.December, 7))
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestCountSingleDayAndInvertedRange(t *testing.T) {
	calc := NewCalculator(&stubHolidaySource{})

	count, err := calc.Count(context.Background(), "company-1", day(2025, time.December, 6), day(2025, time.December, 6))
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a lone Saturday counts")

	count, err = calc.Count(context.Background(), "company-1", day(2025, time.December, 7), day(2025, time.December, 7))
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a lone Sunday does not")

	count, err = calc.Count(context.Background(), "company-1", day(2025, time.December, 10), day(2025, time.December, 8))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHolidaySetCachedUntilInvalidated(t *testing.T) {
	source := &stubHolidaySource{}
	calc := NewCalculator(source)
	ctx := context.Background()

	_, err := calc.Count(ctx, "company-1", day(2025, time.March, 2), day(2025, time.March, 8))
	require.NoError(t, err)
	_, err = calc.Count(ctx, "company-1", day(2025, time.March, 9), day(2025, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls, "second count reuses the cached year")

	companyID := "company-1"
	calc.Invalidate(&companyID)

	_, err = calc.Count(ctx, "company-1", day(2025, time.March, 2), day(2025, time.March, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestInvalidateGlobalDropsAllCompanies(t *testing.T) {
	source := &stubHolidaySource{}
	calc := NewCalculator(source)
	ctx := context.Background()

	_, _ = calc.Count(ctx, "company-1", day(2025, time.March, 3), day(2025, time.March, 3))
	_, _ = calc.Count(ctx, "company-2", day(2025, time.March, 3), day(2025, time.March, 3))
	require.Equal(t, 2, source.calls)

	calc.Invalidate(nil)

	_, _ = calc.Count(ctx, "company-1", day(2025, time.March, 3), day(2025, time.March, 3))
	_, _ = calc.Count(ctx, "company-2", day(2025, time.March, 3), day(2025, time.March, 3))
	assert.Equal(t, 4, source.calls)
}
