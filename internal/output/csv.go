package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gametechlab/hhts/internal/segment"
)

// WriteLabelCSV writes the label map as a raw integer grid, row-major, one
// CSV record per pixel row. This is the external contract consumed by the
// evaluation tooling: no header, no metadata, just labels.
func WriteLabelCSV(path string, m *segment.LabelMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			record[x] = strconv.Itoa(int(m.At(x, y)))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", y, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
