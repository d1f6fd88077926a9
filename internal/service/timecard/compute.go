package timecard

import (
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
)

// checkTransition enforces the clock action ordering against the
// current row. tc is nil when no row exists for the day yet.
func checkTransition(tc *timecard.Timecard, action timecard.Action) error {
	switch action {
	case timecard.ActionClockIn1:
		if tc != nil && tc.In1.Filled() {
			return timecard.ErrAlreadyClockedIn
		}
		return nil

	case timecard.ActionClockOut1:
		if tc == nil || !tc.In1.Filled() {
			return timecard.ErrOutOfOrderAction
		}
		if tc.Out1.Filled() {
			return timecard.ErrAlreadyClockedIn
		}
		return nil

	case timecard.ActionClockIn2:
		if tc == nil || !tc.Out1.Filled() {
			return timecard.ErrOutOfOrderAction
		}
		if tc.In2.Filled() {
			return timecard.ErrAlreadyClockedIn
		}
		return nil

	case timecard.ActionClockOut2:
		if tc == nil || !tc.In1.Filled() {
			return timecard.ErrOutOfOrderAction
		}
		if tc.Out2.Filled() {
			return timecard.ErrAlreadyClockedIn
		}
		// On break: out1 written but never clocked back in.
		if tc.Out1.Filled() && !tc.In2.Filled() {
			return timecard.ErrOutOfOrderAction
		}
		return nil
	}
	return timecard.ErrOutOfOrderAction
}

// workMinutes sums the morning and afternoon sessions; with no break
// recorded the whole span counts.
func workMinutes(tc *timecard.Timecard) int {
	minutes := 0
	if tc.In1.Filled() && tc.Out1.Filled() {
		minutes += span(*tc.In1.At, *tc.Out1.At)
	}
	if tc.In2.Filled() && tc.Out2.Filled() {
		minutes += span(*tc.In2.At, *tc.Out2.At)
	}
	if minutes == 0 && tc.In1.Filled() && tc.Out2.Filled() {
		minutes = span(*tc.In1.At, *tc.Out2.At)
	}
	return minutes
}

func span(from, to time.Time) int {
	m := int(to.Sub(from).Minutes())
	if m < 0 {
		return 0
	}
	return m
}

// seal finalizes a timecard on clock_out_2: totals, OT flag and
// completion status.
func seal(tc *timecard.Timecard, standardMinutes int, fullTime bool) {
	work := workMinutes(tc)
	ot := work - standardMinutes
	if ot < 0 {
		ot = 0
	}

	tc.WorkMinutes = &work
	tc.OTMinutes = &ot
	tc.OTFlagged = fullTime && ot > 0
	tc.Status = timecard.StatusCompleted
	tc.ApprovalStatus = timecard.ApprovalPending
}

// recomputeAfterClear rolls derived state back after an override
// cleared one or more slots.
func recomputeAfterClear(tc *timecard.Timecard) {
	if tc.Out2.Filled() {
		return
	}
	tc.WorkMinutes = nil
	tc.OTMinutes = nil
	tc.OTFlagged = false
	if tc.In1.Filled() || tc.Out1.Filled() || tc.In2.Filled() {
		tc.Status = timecard.StatusInProgress
	} else {
		tc.Status = timecard.StatusNotStarted
	}
	tc.ApprovalStatus = timecard.ApprovalPending
	tc.ApprovedBy = nil
	tc.ApprovedAt = nil
	tc.RejectionReason = nil
}
