package segment

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
// Use errors.Is to detect it.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrDegenerateRegion reports an internal consistency fault: a region reduced
// to zero pixels during splitting or merging. It aborts processing of the
// affected image only.
var ErrDegenerateRegion = errors.New("degenerate region")

// ChannelFamily selects which color space families contribute value planes.
// Families combine as a bitmask; each selected family adds three planes.
type ChannelFamily uint8

const (
	// ChannelRGB adds the R, G and B planes (8-bit intensities as-is).
	ChannelRGB ChannelFamily = 1 << iota
	// ChannelHSV adds hue, saturation and value planes.
	ChannelHSV
	// ChannelLab adds CIE-L*a*b* planes.
	ChannelLab
)

// Count returns the number of value planes the selection produces.
func (f ChannelFamily) Count() int {
	n := 0
	if f&ChannelRGB != 0 {
		n += 3
	}
	if f&ChannelHSV != 0 {
		n += 3
	}
	if f&ChannelLab != 0 {
		n += 3
	}
	return n
}

// Config holds the immutable per-run segmentation settings. Construct it
// once, validate it, and pass it by value; nothing in the pipeline mutates it.
type Config struct {
	Channels       ChannelFamily // selected color families; at least one required
	Blur           bool          // Gaussian-blur the source before channel conversion
	Bins           int           // histogram bin count per channel
	SplitThreshold float64       // max impurity a region may have and still be pure
	MinHistWidth   int           // bin occupancy floor when counting populated bins
	MinSize        int           // purity floor for splitting and minimum region size for merging
	NoMerge        bool          // skip the undersized-region merger entirely
}

// DefaultConfig mirrors the historical CLI defaults: all channel families,
// no blur, 32 bins, zero split threshold, occupancy floor 5, minimum size 64.
func DefaultConfig() Config {
	return Config{
		Channels:     ChannelRGB | ChannelHSV | ChannelLab,
		Bins:         32,
		MinHistWidth: 5,
		MinSize:      64,
	}
}

// Validate reports the first configuration error, wrapped around
// ErrInvalidConfig, or nil. It must pass before any image is processed.
func (c Config) Validate() error {
	if c.Channels == 0 {
		return fmt.Errorf("%w: no color channel selected", ErrInvalidConfig)
	}
	if c.Bins <= 0 {
		return fmt.Errorf("%w: histogram bin count must be positive, got %d", ErrInvalidConfig, c.Bins)
	}
	if c.MinHistWidth < 0 {
		return fmt.Errorf("%w: minimum histogram width must not be negative, got %d", ErrInvalidConfig, c.MinHistWidth)
	}
	if c.MinSize < 1 {
		return fmt.Errorf("%w: minimum region size must be at least 1, got %d", ErrInvalidConfig, c.MinSize)
	}
	if c.SplitThreshold < 0 {
		return fmt.Errorf("%w: split threshold must not be negative, got %g", ErrInvalidConfig, c.SplitThreshold)
	}
	return nil
}

func validateTargets(targets []int) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: no target superpixel count requested", ErrInvalidConfig)
	}
	for _, t := range targets {
		if t < 1 {
			return fmt.Errorf("%w: target superpixel count must be at least 1, got %d", ErrInvalidConfig, t)
		}
	}
	return nil
}
