// Package clock supplies the timestamps stamped on negotiations and
// history entries.
package clock

import "time"

// NowFunc is the time source; tests substitute a deterministic one so
// history ordering assertions stay stable.
var NowFunc = time.Now

// Now returns the current time from NowFunc.
func Now() time.Time {
	return NowFunc()
}
