package repayment

import (
	"math"
	"time"
)

const (
	lateFeeDailyBps = 200  // 2% of the installment per day late
	lateFeeCapBps   = 1000 // capped at 10% of the installment
)

// DueDate returns when installment emiNumber (1-based) of a loan falls
// due: emiNumber calendar months after disbursement, clamped to the last
// day of the target month when the disbursement day does not exist there
// (Jan 31 + 1 month = Feb 28/29). The same routine feeds repayment
// recording, the schedule view and the overdue scan, so the three can
// never disagree on a due date.
func DueDate(disbursedAt time.Time, emiNumber int) time.Time {
	y, m, d := disbursedAt.Date()
	ty, tm := normalizeMonth(y, int(m)+emiNumber)
	if last := daysInMonth(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, time.Month(tm), d, 0, 0, 0, 0, disbursedAt.Location())
}

func normalizeMonth(year, month int) (int, int) {
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month <= 0 { // negative wrap, not reachable for emiNumber >= 0
		month += 12
		year--
	}
	return year, month
}

func daysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly truncates t to its calendar date in UTC. Overdue checks
// compare dates against the midnight-anchored due dates; feeding a
// wall-clock "now" into them would flag a loan overdue on its own due
// date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysLate counts whole days from due to paid, rounding partial days up.
// Zero or negative means on time.
func DaysLate(dueDate, paidAt time.Time) int {
	diff := paidAt.Sub(dueDate)
	return int(math.Ceil(diff.Hours() / 24))
}

// LateFee is 2% of the installment per day late, capped at 10% of the
// installment, rounded half-up to a whole currency unit after capping.
func LateFee(monthlyEMI int64, daysLate int) int64 {
	if daysLate <= 0 {
		return 0
	}
	bps := int64(daysLate) * lateFeeDailyBps
	if bps > lateFeeCapBps {
		bps = lateFeeCapBps
	}
	return (monthlyEMI*bps + 5000) / 10000
}
