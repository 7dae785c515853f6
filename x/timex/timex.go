package timex

import "time"

// NowMs returns a monotonic-ish millisecond timestamp for scan-round
// bookkeeping. Unix milliseconds are fine here: debounce windows only
// compare differences.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns the nanosecond PWM period for a tone frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}
