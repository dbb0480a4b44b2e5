//go:build unix

package batch

import (
	"time"

	"golang.org/x/sys/unix"
)

// processCPUTime returns the user+system CPU time consumed by the process so
// far. With more than one worker the per-image attribution is approximate,
// since the counter is process-wide.
func processCPUTime() time.Duration {
	var usage unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &usage); err != nil {
		return 0
	}
	user := time.Duration(usage.Utime.Sec)*time.Second + time.Duration(usage.Utime.Usec)*time.Microsecond
	sys := time.Duration(usage.Stime.Sec)*time.Second + time.Duration(usage.Stime.Usec)*time.Microsecond
	return user + sys
}
