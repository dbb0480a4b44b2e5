package output

import (
	"fmt"
	"os"
)

// AppendRuntime appends one line with the run's average CPU and wall time in
// seconds to the cumulative runtime log at path, creating the file on first
// use. Appending keeps the history across repeated runs.
func AppendRuntime(path string, avgCPU, avgWall float64) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open runtime log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%g %g\n", avgCPU, avgWall); err != nil {
		return fmt.Errorf("failed to append runtime log: %w", err)
	}
	return nil
}
