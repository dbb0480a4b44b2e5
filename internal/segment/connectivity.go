package segment

// component is one 4-connected group of pixels sharing a label, in the order
// the row-major scan discovered it.
type component struct {
	label  int32
	pixels []int32
}

// EnforceConnectivity splits every label whose pixels form more than one
// 4-connected component: the largest component keeps the label (earliest
// discovered on ties) and every other component is reassigned a fresh label
// never used in the map before. The map is updated in place.
//
// Returns the number of labels that required repair. The count is diagnostic
// only; the relabeling itself is the correction.
func EnforceConnectivity(m *LabelMap) int {
	w, h := m.Width, m.Height
	visited := make([]bool, w*h)
	byLabel := make(map[int32][]component)
	order := []int32{}
	maxLabel := int32(-1)

	for start := range m.Pix {
		if visited[start] {
			continue
		}
		label := m.Pix[start]
		if label > maxLabel {
			maxLabel = label
		}
		comp := component{label: label, pixels: floodFill(m, visited, int32(start))}
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], comp)
	}

	repaired := 0
	next := maxLabel + 1
	for _, label := range order {
		comps := byLabel[label]
		if len(comps) < 2 {
			continue
		}
		repaired++
		keep := 0
		for i := 1; i < len(comps); i++ {
			if len(comps[i].pixels) > len(comps[keep].pixels) {
				keep = i
			}
		}
		for i, comp := range comps {
			if i == keep {
				continue
			}
			for _, idx := range comp.pixels {
				m.Pix[idx] = next
			}
			next++
		}
	}
	return repaired
}

// floodFill collects the 4-connected component of equal-labeled pixels
// containing start, marking each as visited. Uses an explicit stack to keep
// the recursion depth independent of region size.
func floodFill(m *LabelMap, visited []bool, start int32) []int32 {
	w := int32(m.Width)
	label := m.Pix[start]
	stack := []int32{start}
	visited[start] = true
	var pixels []int32

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pixels = append(pixels, idx)

		x := idx % w
		neighbors := [4]int32{-1, -1, -1, -1}
		if x > 0 {
			neighbors[0] = idx - 1
		}
		if x < w-1 {
			neighbors[1] = idx + 1
		}
		if idx >= w {
			neighbors[2] = idx - w
		}
		if int(idx)+int(w) < len(m.Pix) {
			neighbors[3] = idx + w
		}
		for _, nb := range neighbors {
			if nb < 0 || visited[nb] || m.Pix[nb] != label {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}
	return pixels
}
