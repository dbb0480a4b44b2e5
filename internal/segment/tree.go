package segment

import (
	"container/heap"
	"fmt"
)

// node is one region in the split tree arena. Children re-slice the parent's
// pixel slice in place, so the whole tree shares a single backing array of
// pixel indices; a parent's slice remains the exact union of its children.
//
// createdAt and splitAt are 1-based split event numbers (0 on createdAt means
// the root, 0 on splitAt means the node was never split). The running leaf
// count after split event s is s+1, which is what the extractor cuts on.
type node struct {
	pixels    []int32
	left      int // arena index, -1 for a leaf
	right     int
	createdAt int
	splitAt   int
	impurity  float64
	stats     []channelStats
}

// tree is the completed split tree for one image. Arena order is creation
// order: node 0 is the root and children of split event s sit at consecutive
// indices appended when s happened.
type tree struct {
	nodes  []node
	splits int
	width  int
	height int
}

// leaves reports how many leaves the finished tree has.
func (t *tree) leaves() int {
	return t.splits + 1
}

// candidateQueue orders unresolved regions most-impure first, ties broken by
// lower arena index so the build order is deterministic.
type candidateQueue []candidate

type candidate struct {
	idx      int
	impurity float64
}

func (q candidateQueue) Len() int { return len(q) }

func (q candidateQueue) Less(i, j int) bool {
	if q[i].impurity != q[j].impurity {
		return q[i].impurity > q[j].impurity
	}
	return q[i].idx < q[j].idx
}

func (q candidateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *candidateQueue) Push(x any) { *q = append(*q, x.(candidate)) }

func (q *candidateQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}

// buildTree grows the split tree for the image until every candidate region
// is pure or the running leaf count reaches maxLeaves. Splitting a region
// thresholds its most impure channel at the within-region Otsu point; when
// that fails to separate two non-empty parts, the region's bounding box is
// cut at the midpoint of its longer axis instead.
func buildTree(planes []Plane, width, height, maxLeaves int, cfg Config) (*tree, error) {
	t := &tree{width: width, height: height}

	all := make([]int32, width*height)
	for i := range all {
		all[i] = int32(i)
	}
	root := node{pixels: all, left: -1, right: -1}
	root.stats = evalRegion(root.pixels, planes, cfg)
	root.impurity = impurity(root.stats)
	t.nodes = append(t.nodes, root)

	queue := &candidateQueue{{idx: 0, impurity: root.impurity}}
	heap.Init(queue)

	for queue.Len() > 0 && t.leaves() < maxLeaves {
		cand := heap.Pop(queue).(candidate)
		cur := &t.nodes[cand.idx]
		if cur.impurity <= cfg.SplitThreshold || len(cur.pixels) <= cfg.MinSize || len(cur.pixels) < 2 {
			continue // terminal leaf
		}

		k := partitionOtsu(cur, planes, cfg)
		if k <= 0 || k >= len(cur.pixels) {
			k = partitionSpatial(cur.pixels, width)
		}
		if k <= 0 || k >= len(cur.pixels) {
			return nil, fmt.Errorf("%w: split of %d pixels produced an empty side", ErrDegenerateRegion, len(cur.pixels))
		}

		t.splits++
		seq := t.splits
		cur.splitAt = seq
		low := cur.pixels[:k]
		high := cur.pixels[k:]
		leftIdx := t.addChild(low, seq, planes, cfg, queue)
		rightIdx := t.addChild(high, seq, planes, cfg, queue)
		// addChild may have grown the arena; re-resolve before linking.
		cur = &t.nodes[cand.idx]
		cur.left, cur.right = leftIdx, rightIdx
	}
	return t, nil
}

// addChild appends a node for the given pixel set, evaluates it, and queues
// it as a split candidate. Returns the new arena index.
func (t *tree) addChild(pixels []int32, seq int, planes []Plane, cfg Config, queue *candidateQueue) int {
	child := node{pixels: pixels, left: -1, right: -1, createdAt: seq}
	child.stats = evalRegion(pixels, planes, cfg)
	child.impurity = impurity(child.stats)
	idx := len(t.nodes)
	t.nodes = append(t.nodes, child)
	heap.Push(queue, candidate{idx: idx, impurity: child.impurity})
	return idx
}

// partitionOtsu reorders the node's pixel slice in place so that pixels at or
// below the Otsu threshold of the most impure channel come first, and returns
// the boundary index. Returns 0 when thresholding is degenerate.
func partitionOtsu(n *node, planes []Plane, cfg Config) int {
	ch := 0
	best := -1.0
	for c, st := range n.stats {
		if s := st.score(); s > best {
			best = s
			ch = c
		}
	}
	threshold := otsuThreshold(n.stats[ch].hist, len(n.pixels))
	if threshold < 0 {
		return 0
	}
	plane := planes[ch]
	return partitionPixels(n.pixels, func(idx int32) bool {
		return binOf(plane.Pix[idx], cfg.Bins) <= threshold
	})
}

// partitionSpatial cuts the region's bounding box at the midpoint of its
// longer axis. With at least two distinct pixels this always yields two
// non-empty sides on one of the axes.
func partitionSpatial(pixels []int32, width int) int {
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	maxX, maxY := -1, -1
	for _, idx := range pixels {
		x := int(idx) % width
		y := int(idx) / width
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	if maxX-minX >= maxY-minY && maxX > minX {
		mid := (minX + maxX) / 2
		return partitionPixels(pixels, func(idx int32) bool { return int(idx)%width <= mid })
	}
	if maxY > minY {
		mid := (minY + maxY) / 2
		return partitionPixels(pixels, func(idx int32) bool { return int(idx)/width <= mid })
	}
	return 0
}

// partitionPixels stably reorders pixels so that all indices satisfying keep
// precede all that do not, returning the boundary. Stability keeps the build
// deterministic for a given input order.
func partitionPixels(pixels []int32, keep func(int32) bool) int {
	sorted := make([]int32, 0, len(pixels))
	var rest []int32
	for _, idx := range pixels {
		if keep(idx) {
			sorted = append(sorted, idx)
		} else {
			rest = append(rest, idx)
		}
	}
	k := len(sorted)
	copy(pixels, sorted)
	copy(pixels[k:], rest)
	return k
}
