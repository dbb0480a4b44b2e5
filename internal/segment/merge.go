package segment

import (
	"fmt"
	"math"
)

// mergeRegion is the mutable bookkeeping for one label during merging.
type mergeRegion struct {
	pixels    []int32
	sums      []float64 // per-channel value sums, means are sums/size
	neighbors map[int32]struct{}
	alive     bool
}

func (r *mergeRegion) size() int { return len(r.pixels) }

// MergeUndersized folds every region of the label map whose pixel count is
// below minSize into its most histogram-similar spatially adjacent region,
// relabeling the map in place, until no undersized region with an eligible
// neighbor remains. Similarity is the Euclidean distance between per-channel
// mean vectors; ties prefer the larger neighbor, then the lower neighbor id.
// A region with no neighbor at all (the whole image) is never merged away.
//
// Undersized regions are processed smallest first, lower id breaking ties,
// so the result is deterministic. Labels are re-compacted to a dense range
// afterwards.
func MergeUndersized(m *LabelMap, planes []Plane, minSize int) error {
	count := m.Regions()
	if count <= 1 {
		return nil
	}

	regions := make([]mergeRegion, count)
	for i := range regions {
		regions[i] = mergeRegion{
			sums:      make([]float64, len(planes)),
			neighbors: make(map[int32]struct{}),
			alive:     true,
		}
	}

	for idx, label := range m.Pix {
		r := &regions[label]
		r.pixels = append(r.pixels, int32(idx))
		for c := range planes {
			r.sums[c] += planes[c].Pix[idx]
		}
	}
	for i := range regions {
		if regions[i].size() == 0 {
			return fmt.Errorf("%w: label %d has no pixels before merging", ErrDegenerateRegion, i)
		}
	}

	// 4-adjacency from right and down neighbors only; the relation is
	// symmetric so both directions are recorded.
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			label := m.At(x, y)
			if x+1 < m.Width {
				if other := m.At(x+1, y); other != label {
					regions[label].neighbors[other] = struct{}{}
					regions[other].neighbors[label] = struct{}{}
				}
			}
			if y+1 < m.Height {
				if other := m.At(x, y+1); other != label {
					regions[label].neighbors[other] = struct{}{}
					regions[other].neighbors[label] = struct{}{}
				}
			}
		}
	}

	for {
		small := pickUndersized(regions, minSize)
		if small < 0 {
			break
		}
		target := bestNeighbor(regions, planes, small)
		absorb(regions, int32(target), int32(small))
	}

	// Rewrite the map with dense labels in ascending surviving-id order.
	next := int32(0)
	for i := range regions {
		if !regions[i].alive {
			continue
		}
		for _, idx := range regions[i].pixels {
			m.Pix[idx] = next
		}
		next++
	}
	return nil
}

// pickUndersized returns the id of the smallest live region below minSize
// that has at least one neighbor, lower id on ties, or -1 when none remains.
func pickUndersized(regions []mergeRegion, minSize int) int {
	best := -1
	for i := range regions {
		r := &regions[i]
		if !r.alive || r.size() >= minSize || len(r.neighbors) == 0 {
			continue
		}
		if best < 0 || r.size() < regions[best].size() {
			best = i
		}
	}
	return best
}

// bestNeighbor picks the merge target for region a: smallest mean-vector
// distance, then larger size, then lower id.
func bestNeighbor(regions []mergeRegion, planes []Plane, a int) int {
	ra := &regions[a]
	best := -1
	bestDist := math.Inf(1)
	for nb := range ra.neighbors {
		rb := &regions[nb]
		d := meanDistance(ra, rb, len(planes))
		switch {
		case best < 0 || d < bestDist:
			best, bestDist = int(nb), d
		case d == bestDist && rb.size() > regions[best].size():
			best = int(nb)
		case d == bestDist && rb.size() == regions[best].size() && int(nb) < best:
			best = int(nb)
		}
	}
	return best
}

func meanDistance(a, b *mergeRegion, channels int) float64 {
	na, nb := float64(a.size()), float64(b.size())
	var sum float64
	for c := 0; c < channels; c++ {
		d := a.sums[c]/na - b.sums[c]/nb
		sum += d * d
	}
	return math.Sqrt(sum)
}

// absorb merges region a into region b, rewiring adjacency so that every
// former neighbor of a is now a neighbor of b.
func absorb(regions []mergeRegion, b, a int32) {
	ra, rb := &regions[a], &regions[b]
	rb.pixels = append(rb.pixels, ra.pixels...)
	for c := range rb.sums {
		rb.sums[c] += ra.sums[c]
	}
	for nb := range ra.neighbors {
		if nb == b {
			continue
		}
		delete(regions[nb].neighbors, a)
		regions[nb].neighbors[b] = struct{}{}
		rb.neighbors[nb] = struct{}{}
	}
	delete(rb.neighbors, a)
	ra.alive = false
	ra.pixels = nil
	ra.neighbors = nil
}
