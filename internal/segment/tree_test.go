package segment

import "testing"

// gridPlane wraps a row-major value grid as the only channel plane.
func gridPlane(values []float64) []Plane {
	return []Plane{{Name: "R", Pix: values}}
}

func TestBuildTree_UniformImageNeverSplits(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = 50
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 10, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	if tr.splits != 0 {
		t.Errorf("splits: got %d, want 0", tr.splits)
	}
	if len(tr.nodes) != 1 {
		t.Errorf("nodes: got %d, want 1", len(tr.nodes))
	}
	if tr.leaves() != 1 {
		t.Errorf("leaves: got %d, want 1", tr.leaves())
	}
}

func TestBuildTree_TwoHalves(t *testing.T) {
	// 4x4 grid, columns 0-1 hold value 10, columns 2-3 hold value 200.
	values := make([]float64, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				values[y*4+x] = 10
			} else {
				values[y*4+x] = 200
			}
		}
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 2, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	if tr.splits != 1 {
		t.Fatalf("splits: got %d, want 1", tr.splits)
	}
	if len(tr.nodes) != 3 {
		t.Fatalf("nodes: got %d, want 3", len(tr.nodes))
	}
	if len(tr.nodes[1].pixels) != 8 || len(tr.nodes[2].pixels) != 8 {
		t.Errorf("child sizes: got %d and %d, want 8 and 8",
			len(tr.nodes[1].pixels), len(tr.nodes[2].pixels))
	}

	m := tr.extract(2)
	if m.Regions() != 2 {
		t.Fatalf("regions: got %d, want 2", m.Regions())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := m.At(0, 0)
			if x >= 2 {
				want = m.At(3, 0)
			}
			if m.At(x, y) != want {
				t.Fatalf("pixel (%d,%d): got label %d, want %d", x, y, m.At(x, y), want)
			}
		}
	}
	if m.At(0, 0) == m.At(3, 0) {
		t.Error("the two halves must carry different labels")
	}
}

func TestBuildTree_StopsAtMaxLeaves(t *testing.T) {
	// 16 distinct values, one per pixel, so the tree could grow to 16 leaves.
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(i * 16)
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 3, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	if tr.leaves() != 3 {
		t.Errorf("leaves: got %d, want exactly the cap of 3", tr.leaves())
	}
}

func TestExtract_FrontierSizes(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(i * 16)
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 8, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}

	for _, target := range []int{1, 2, 4, 8} {
		m := tr.extract(target)
		if got := m.Regions(); got != target {
			t.Errorf("target %d: got %d regions", target, got)
		}
		assertDenseCoverage(t, m)
	}
}

func TestExtract_TargetBeyondLeaves(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = 50
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 100, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}
	m := tr.extract(100)
	if m.Regions() != tr.leaves() {
		t.Errorf("over-requested target should yield the full leaf set: got %d regions, %d leaves",
			m.Regions(), tr.leaves())
	}
}

func TestExtract_Nesting(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(i * 16)
	}
	tr, err := buildTree(gridPlane(values), 4, 4, 8, testConfig())
	if err != nil {
		t.Fatalf("buildTree failed: %v", err)
	}

	coarse := tr.extract(3)
	fine := tr.extract(7)
	assertCoarsening(t, coarse, fine)
}

func TestPartitionSpatial(t *testing.T) {
	t.Run("horizontal line splits on x", func(t *testing.T) {
		pixels := []int32{0, 1, 2, 3}
		if k := partitionSpatial(pixels, 4); k != 2 {
			t.Errorf("got boundary %d, want 2", k)
		}
	})
	t.Run("vertical line splits on y", func(t *testing.T) {
		pixels := []int32{0, 1, 2, 3} // 1-wide column, four rows
		if k := partitionSpatial(pixels, 1); k != 2 {
			t.Errorf("got boundary %d, want 2", k)
		}
	})
	t.Run("single pixel cannot split", func(t *testing.T) {
		if k := partitionSpatial([]int32{5}, 4); k != 0 {
			t.Errorf("got boundary %d, want 0", k)
		}
	})
}

// assertDenseCoverage fails unless every label in [0, Regions()) owns at
// least one pixel and no pixel holds a label outside that range.
func assertDenseCoverage(t *testing.T, m *LabelMap) {
	t.Helper()
	n := m.Regions()
	counts := make([]int, n)
	for _, label := range m.Pix {
		if label < 0 || int(label) >= n {
			t.Fatalf("label %d outside dense range [0,%d)", label, n)
		}
		counts[label]++
	}
	for label, count := range counts {
		if count == 0 {
			t.Fatalf("label %d owns no pixels", label)
		}
	}
}

// assertCoarsening fails unless every coarse region is a union of whole fine
// regions: pixels sharing a fine label always share a coarse label.
func assertCoarsening(t *testing.T, coarse, fine *LabelMap) {
	t.Helper()
	coarseOf := make(map[int32]int32)
	for i, fineLabel := range fine.Pix {
		if prev, ok := coarseOf[fineLabel]; ok {
			if prev != coarse.Pix[i] {
				t.Fatalf("fine label %d spans coarse labels %d and %d", fineLabel, prev, coarse.Pix[i])
			}
			continue
		}
		coarseOf[fineLabel] = coarse.Pix[i]
	}
}
