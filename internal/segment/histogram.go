package segment

import "math"

// channelStats is the cached histogram summary of one channel restricted to
// one region: bin counts over [0, 256), mean, standard deviation, and the
// number of bins whose occupancy exceeds the configured floor.
type channelStats struct {
	hist   []int
	mean   float64
	stddev float64
	width  int
}

// score is the per-channel impurity: value spread weighted by how many
// histogram bins the region actually occupies. A region concentrated in a
// single bin scores low even when its raw deviation is nonzero.
func (s channelStats) score() float64 {
	return s.stddev * float64(s.width)
}

// evalRegion computes the histogram summary of every channel plane restricted
// to the given pixel set. The evaluator is stateless; results are cached on
// the tree node that owns the region.
func evalRegion(pixels []int32, planes []Plane, cfg Config) []channelStats {
	stats := make([]channelStats, len(planes))
	n := float64(len(pixels))
	for c, plane := range planes {
		st := channelStats{hist: make([]int, cfg.Bins)}
		var sum, sumSq float64
		for _, idx := range pixels {
			v := plane.Pix[idx]
			st.hist[binOf(v, cfg.Bins)]++
			sum += v
			sumSq += v * v
		}
		if n > 0 {
			st.mean = sum / n
			variance := sumSq/n - st.mean*st.mean
			if variance > 0 {
				st.stddev = math.Sqrt(variance)
			}
		}
		for _, count := range st.hist {
			if count > cfg.MinHistWidth {
				st.width++
			}
		}
		stats[c] = st
	}
	return stats
}

// impurity aggregates per-channel scores into the region score: the maximum
// over channels. A region is pure when its impurity does not exceed the
// split threshold.
func impurity(stats []channelStats) float64 {
	best := 0.0
	for _, st := range stats {
		if s := st.score(); s > best {
			best = s
		}
	}
	return best
}

// binOf maps a normalized channel value in [0, 256) to a histogram bin.
func binOf(v float64, bins int) int {
	b := int(v * float64(bins) / 256.0)
	if b < 0 {
		return 0
	}
	if b >= bins {
		return bins - 1
	}
	return b
}

// otsuThreshold returns the bin index that maximizes the between-class
// variance of the histogram, i.e. the classic Otsu split point. Pixels whose
// bin is <= the returned index form the low class. Returns -1 when no split
// separates two non-empty classes (all mass in the last bin, or empty
// histogram).
func otsuThreshold(hist []int, total int) int {
	var sum float64
	for i, count := range hist {
		sum += float64(i) * float64(count)
	}

	var sumLow, weightLow float64
	bestVar := -1.0
	bestBin := -1
	for t := 0; t < len(hist); t++ {
		weightLow += float64(hist[t])
		if weightLow == 0 {
			continue
		}
		weightHigh := float64(total) - weightLow
		if weightHigh == 0 {
			break
		}
		sumLow += float64(t) * float64(hist[t])
		meanLow := sumLow / weightLow
		meanHigh := (sum - sumLow) / weightHigh
		between := weightLow * weightHigh * (meanLow - meanHigh) * (meanLow - meanHigh)
		if between > bestVar {
			bestVar = between
			bestBin = t
		}
	}
	return bestBin
}
