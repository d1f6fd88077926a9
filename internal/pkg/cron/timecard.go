package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/gajihub/hr-backend-go/internal/pkg/clock"
	timecardsvc "github.com/gajihub/hr-backend-go/internal/service/timecard"
)

// TimecardJobs closes out timecards employees forgot to finish.
type TimecardJobs struct {
	timecardService *timecardsvc.Service
	clock           clock.Clock
}

func NewTimecardJobs(timecardService *timecardsvc.Service, timezone string) *TimecardJobs {
	return &TimecardJobs{
		timecardService: timecardService,
		clock:           clock.New(timezone),
	}
}

func (j *TimecardJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_timecards", 1*time.Hour, j.AutoCloseStaleTimecards)
}

// AutoCloseStaleTimecards seals every timecard still in progress from a
// previous day. Runs hourly but only acts shortly after midnight.
func (j *TimecardJobs) AutoCloseStaleTimecards(ctx context.Context) error {
	if j.clock.Now().Hour() != 0 {
		return nil
	}

	closed, err := j.timecardService.CloseStale(ctx, j.clock.Today())
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("Cron: closed stale timecards", "count", closed)
	}
	return nil
}
