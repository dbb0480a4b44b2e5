package segment

// LabelMap assigns every pixel of an image to a superpixel. Labels are dense
// non-negative integers local to this map; they are not stable across
// different target counts.
type LabelMap struct {
	Width  int
	Height int
	Pix    []int32 // row-major, len Width*Height
}

// NewLabelMap returns an all-zero label map of the given dimensions.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{Width: width, Height: height, Pix: make([]int32, width*height)}
}

// At returns the label at pixel (x, y).
func (m *LabelMap) At(x, y int) int32 {
	return m.Pix[y*m.Width+x]
}

// Regions reports the number of distinct labels in the map, assuming labels
// are dense starting at zero.
func (m *LabelMap) Regions() int {
	max := int32(-1)
	for _, l := range m.Pix {
		if l > max {
			max = l
		}
	}
	return int(max) + 1
}

// extract cuts the tree at the frontier that existed when the running leaf
// count first reached the target and writes a fresh label map. Targets beyond
// the total leaf count fall back to the full leaf set; the shortfall is
// expected behavior, not an error.
//
// A node belongs to the frontier for cut c when it already existed after
// split event c (createdAt <= c) and had not itself been split yet
// (splitAt == 0 or splitAt > c). Labels are assigned in arena creation order,
// which makes them dense and deterministic.
func (t *tree) extract(target int) *LabelMap {
	cut := target - 1
	if cut > t.splits {
		cut = t.splits
	}

	m := NewLabelMap(t.width, t.height)
	next := int32(0)
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.createdAt > cut {
			continue
		}
		if n.splitAt != 0 && n.splitAt <= cut {
			continue
		}
		for _, idx := range n.pixels {
			m.Pix[idx] = next
		}
		next++
	}
	return m
}

// extractAll produces one label map per requested target, in request order.
func (t *tree) extractAll(targets []int) []*LabelMap {
	maps := make([]*LabelMap, len(targets))
	for i, target := range targets {
		maps[i] = t.extract(target)
	}
	return maps
}
