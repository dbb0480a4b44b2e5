//go:build !unix

package batch

import "time"

// processCPUTime is unavailable on this platform; the runtime log then
// records zero CPU time and only the wall time is meaningful.
func processCPUTime() time.Duration {
	return 0
}
