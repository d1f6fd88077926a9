package timecard

import (
	"testing"
	"time"

	"github.com/gajihub/hr-backend-go/internal/domain/timecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) *time.Time {
	t := time.Date(2025, time.June, 10, h, m, 0, 0, time.UTC)
	return &t
}

func TestCheckTransitionOrdering(t *testing.T) {
	require.NoError(t, checkTransition(nil, timecard.ActionClockIn1))
	assert.ErrorIs(t, checkTransition(nil, timecard.ActionClockOut1), timecard.ErrOutOfOrderAction)
	assert.ErrorIs(t, checkTransition(nil, timecard.ActionClockIn2), timecard.ErrOutOfOrderAction)
	assert.ErrorIs(t, checkTransition(nil, timecard.ActionClockOut2), timecard.ErrOutOfOrderAction)

	working1 := &timecard.Timecard{In1: timecard.ClockEvent{At: at(9, 0)}}
	assert.ErrorIs(t, checkTransition(working1, timecard.ActionClockIn1), timecard.ErrAlreadyClockedIn)
	require.NoError(t, checkTransition(working1, timecard.ActionClockOut1))
	assert.ErrorIs(t, checkTransition(working1, timecard.ActionClockIn2), timecard.ErrOutOfOrderAction)
	require.NoError(t, checkTransition(working1, timecard.ActionClockOut2), "skipping the break is allowed")

	onBreak := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(9, 0)},
		Out1: timecard.ClockEvent{At: at(13, 0)},
	}
	assert.ErrorIs(t, checkTransition(onBreak, timecard.ActionClockOut1), timecard.ErrAlreadyClockedIn)
	require.NoError(t, checkTransition(onBreak, timecard.ActionClockIn2))
	assert.ErrorIs(t, checkTransition(onBreak, timecard.ActionClockOut2), timecard.ErrOutOfOrderAction,
		"cannot complete while on break")

	completed := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(9, 0)},
		Out1: timecard.ClockEvent{At: at(13, 0)},
		In2:  timecard.ClockEvent{At: at(14, 0)},
		Out2: timecard.ClockEvent{At: at(18, 0)},
	}
	assert.ErrorIs(t, checkTransition(completed, timecard.ActionClockOut2), timecard.ErrAlreadyClockedIn)
}

func TestSealRegularDayNoOvertime(t *testing.T) {
	// 09:00-12:00 and 13:00-17:00 is 420 minutes against a 510-minute
	// standard day.
	tc := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(9, 0)},
		Out1: timecard.ClockEvent{At: at(12, 0)},
		In2:  timecard.ClockEvent{At: at(13, 0)},
		Out2: timecard.ClockEvent{At: at(17, 0)},
	}
	seal(tc, 510, true)

	require.NotNil(t, tc.WorkMinutes)
	assert.Equal(t, 420, *tc.WorkMinutes)
	assert.Equal(t, 0, *tc.OTMinutes)
	assert.False(t, tc.OTFlagged)
	assert.Equal(t, timecard.StatusCompleted, tc.Status)
	assert.Equal(t, timecard.ApprovalPending, tc.ApprovalStatus)
}

func TestSealOvertimeFlaggedForFullTime(t *testing.T) {
	// 08:00-12:00 and 13:00-19:00 is 600 minutes; 90 over the standard.
	tc := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(8, 0)},
		Out1: timecard.ClockEvent{At: at(12, 0)},
		In2:  timecard.ClockEvent{At: at(13, 0)},
		Out2: timecard.ClockEvent{At: at(19, 0)},
	}
	seal(tc, 510, true)

	assert.Equal(t, 600, *tc.WorkMinutes)
	assert.Equal(t, 90, *tc.OTMinutes)
	assert.True(t, tc.OTFlagged)
}

func TestSealOvertimeNotFlaggedForPartTime(t *testing.T) {
	tc := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(8, 0)},
		Out1: timecard.ClockEvent{At: at(12, 0)},
		In2:  timecard.ClockEvent{At: at(13, 0)},
		Out2: timecard.ClockEvent{At: at(19, 0)},
	}
	seal(tc, 510, false)

	assert.Equal(t, 90, *tc.OTMinutes)
	assert.False(t, tc.OTFlagged)
}

func TestSealNoBreakUsesFullSpan(t *testing.T) {
	tc := &timecard.Timecard{
		In1:  timecard.ClockEvent{At: at(9, 0)},
		Out2: timecard.ClockEvent{At: at(17, 30)},
	}
	seal(tc, 510, true)

	assert.Equal(t, 510, *tc.WorkMinutes)
	assert.Equal(t, 0, *tc.OTMinutes)
	assert.False(t, tc.OTFlagged)
}

func TestRecomputeAfterClear(t *testing.T) {
	work, ot := 600, 90
	by := "sup-1"
	tc := &timecard.Timecard{
		In1:            timecard.ClockEvent{At: at(8, 0)},
		Out1:           timecard.ClockEvent{At: at(12, 0)},
		In2:            timecard.ClockEvent{At: at(13, 0)},
		Out2:           timecard.ClockEvent{At: at(19, 0)},
		WorkMinutes:    &work,
		OTMinutes:      &ot,
		OTFlagged:      true,
		Status:         timecard.StatusCompleted,
		ApprovalStatus: timecard.ApprovalApproved,
		ApprovedBy:     &by,
	}

	*tc.Slot(timecard.ActionClockOut2) = timecard.ClockEvent{}
	recomputeAfterClear(tc)

	assert.Nil(t, tc.WorkMinutes)
	assert.Nil(t, tc.OTMinutes)
	assert.False(t, tc.OTFlagged)
	assert.Equal(t, timecard.StatusInProgress, tc.Status)
	assert.Equal(t, timecard.ApprovalPending, tc.ApprovalStatus)
	assert.Nil(t, tc.ApprovedBy)
}

func TestRecomputeAfterClearAllSlots(t *testing.T) {
	tc := &timecard.Timecard{
		In1: timecard.ClockEvent{At: at(8, 0)},
	}
	*tc.Slot(timecard.ActionClockIn1) = timecard.ClockEvent{}
	recomputeAfterClear(tc)

	assert.Equal(t, timecard.StatusNotStarted, tc.Status)
}

func TestDerefDefaultsNilToZero(t *testing.T) {
	assert.Equal(t, 0, deref(nil))
	minutes := 90
	assert.Equal(t, 90, deref(&minutes))
}
