package segment

import "testing"

// labelMapFromRows builds a label map from explicit row-major labels.
func labelMapFromRows(width int, labels []int32) *LabelMap {
	return &LabelMap{Width: width, Height: len(labels) / width, Pix: labels}
}

func TestMergeUndersized_PicksMostSimilarNeighbor(t *testing.T) {
	// 6x2 map: region 0 (value 10) | region 1 (value 12) | region 2 (value 100).
	// Region 1 is undersized and closer in value to region 0.
	m := labelMapFromRows(6, []int32{
		0, 0, 1, 2, 2, 2,
		0, 0, 1, 2, 2, 2,
	})
	planes := []Plane{{Name: "R", Pix: []float64{
		10, 10, 12, 100, 100, 100,
		10, 10, 12, 100, 100, 100,
	}}}

	if err := MergeUndersized(m, planes, 3); err != nil {
		t.Fatalf("MergeUndersized failed: %v", err)
	}
	if m.Regions() != 2 {
		t.Fatalf("regions: got %d, want 2", m.Regions())
	}
	if m.At(2, 0) != m.At(0, 0) {
		t.Errorf("undersized region merged into label %d, want the similar neighbor %d",
			m.At(2, 0), m.At(0, 0))
	}
	if m.At(3, 0) == m.At(0, 0) {
		t.Error("dissimilar region must keep its own label")
	}
}

func TestMergeUndersized_Monotonic(t *testing.T) {
	// Four single-pixel regions, all identical in value; the whole row must
	// collapse until nothing is below the minimum.
	m := labelMapFromRows(4, []int32{0, 1, 2, 3})
	planes := []Plane{{Name: "R", Pix: []float64{50, 50, 50, 50}}}

	if err := MergeUndersized(m, planes, 4); err != nil {
		t.Fatalf("MergeUndersized failed: %v", err)
	}
	if m.Regions() != 1 {
		t.Fatalf("regions: got %d, want 1", m.Regions())
	}
	for i, label := range m.Pix {
		if label != 0 {
			t.Fatalf("pixel %d: got label %d, want 0 after compaction", i, label)
		}
	}
}

func TestMergeUndersized_WholeImageNeverMergedAway(t *testing.T) {
	m := labelMapFromRows(3, []int32{0, 0, 0})
	planes := []Plane{{Name: "R", Pix: []float64{50, 50, 50}}}

	if err := MergeUndersized(m, planes, 100); err != nil {
		t.Fatalf("MergeUndersized failed: %v", err)
	}
	if m.Regions() != 1 {
		t.Errorf("regions: got %d, want the single region to survive", m.Regions())
	}
}

func TestMergeUndersized_LeavesLargeRegionsAlone(t *testing.T) {
	m := labelMapFromRows(4, []int32{
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	planes := []Plane{{Name: "R", Pix: []float64{
		10, 10, 200, 200,
		10, 10, 200, 200,
	}}}

	if err := MergeUndersized(m, planes, 3); err != nil {
		t.Fatalf("MergeUndersized failed: %v", err)
	}
	if m.Regions() != 2 {
		t.Errorf("regions: got %d, want both size-4 regions kept", m.Regions())
	}
}

func TestMergeUndersized_CoverageSurvives(t *testing.T) {
	m := labelMapFromRows(4, []int32{
		0, 1, 1, 2,
		0, 1, 1, 2,
	})
	planes := []Plane{{Name: "R", Pix: []float64{
		10, 50, 50, 90,
		10, 50, 50, 90,
	}}}

	if err := MergeUndersized(m, planes, 3); err != nil {
		t.Fatalf("MergeUndersized failed: %v", err)
	}
	assertDenseCoverage(t, m)
}
