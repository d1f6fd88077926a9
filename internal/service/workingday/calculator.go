package workingday

import (
	"context"
	"sync"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/holiday"
)

// HolidaySource is the read side the calculator needs; the repository
// satisfies it.
type HolidaySource interface {
	ListForCompanyYear(ctx context.Context, companyID string, year int) ([]holiday.Holiday, error)
}

type cacheKey struct {
	companyID string
	year      int
}

// Calculator counts working days: every day except Sundays and
// holidays. Saturdays count. Holiday sets are cached per
// (company, year) and invalidated on holiday writes.
type Calculator struct {
	source HolidaySource

	mu    sync.RWMutex
	cache map[cacheKey]map[string]struct{}
}

func NewCalculator(source HolidaySource) *Calculator {
	return &Calculator{
		source: source,
		cache:  make(map[cacheKey]map[string]struct{}),
	}
}

const dateKey = "2006-01-02"

// Count returns the number of working days in [start, end] inclusive.
// An inverted range counts zero.
func (c *Calculator) Count(ctx context.Context, companyID string, start, end time.Time) (int, error) {
	start = truncate(start)
	end = truncate(end)
	if start.After(end) {
		return 0, nil
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		working, err := c.IsWorkingDay(ctx, companyID, d)
		if err != nil {
			return 0, err
		}
		if working {
			count++
		}
	}
	return count, nil
}

// IsWorkingDay reports whether a single date is a working day.
func (c *Calculator) IsWorkingDay(ctx context.Context, companyID string, date time.Time) (bool, error) {
	date = truncate(date)
	if date.Weekday() == time.Sunday {
		return false, nil
	}

	holidays, err := c.holidaySet(ctx, companyID, date.Year())
	if err != nil {
		return false, err
	}
	_, isHoliday := holidays[date.Format(dateKey)]
	return !isHoliday, nil
}

// Invalidate drops cached holiday sets for a company. A nil companyID
// (a global holiday write) drops everything.
func (c *Calculator) Invalidate(companyID *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if companyID == nil {
		c.cache = make(map[cacheKey]map[string]struct{})
		return
	}
	for key := range c.cache {
		if key.companyID == *companyID {
			delete(c.cache, key)
		}
	}
}

func (c *Calculator) holidaySet(ctx context.Context, companyID string, year int) (map[string]struct{}, error) {
	key := cacheKey{companyID: companyID, year: year}

	c.mu.RLock()
	set, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return set, nil
	}

	holidays, err := c.source.ListForCompanyYear(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	set = make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[truncate(h.Date).Format(dateKey)] = struct{}{}
	}

	c.mu.Lock()
	c.cache[key] = set
	c.mu.Unlock()
	return set, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
