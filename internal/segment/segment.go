package segment

import (
	"fmt"
	"image"
)

// Result is the outcome of segmenting one image: one label map per requested
// target count, in request order, plus the per-map count of labels the
// connectivity repair had to split.
type Result struct {
	Labels  []*LabelMap
	Repairs []int
}

// Segment runs the full pipeline on one decoded image: channel sampling,
// split tree construction, per-target extraction, undersized-region merging
// (unless cfg.NoMerge), and connectivity repair.
//
// Parameters:
//   - img: the decoded source image. Must have non-zero dimensions.
//   - targets: requested superpixel counts, any order, each at least 1.
//     The returned label maps follow this order.
//   - cfg: validated per-run settings.
//
// Targets beyond what the image can support yield fewer regions than asked;
// that is expected, not an error. Segmentation is deterministic: the same
// image and configuration always produce bit-identical results.
func Segment(img image.Image, targets []int, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateTargets(targets); err != nil {
		return nil, err
	}

	planes, err := BuildPlanes(img, cfg)
	if err != nil {
		return nil, fmt.Errorf("sampling channels: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	maxTarget := targets[0]
	for _, t := range targets[1:] {
		if t > maxTarget {
			maxTarget = t
		}
	}

	t, err := buildTree(planes, w, h, maxTarget, cfg)
	if err != nil {
		return nil, fmt.Errorf("building split tree: %w", err)
	}

	res := &Result{
		Labels:  t.extractAll(targets),
		Repairs: make([]int, len(targets)),
	}
	for i, m := range res.Labels {
		if !cfg.NoMerge {
			if err := MergeUndersized(m, planes, cfg.MinSize); err != nil {
				return nil, fmt.Errorf("merging undersized regions for target %d: %w", targets[i], err)
			}
		}
		res.Repairs[i] = EnforceConnectivity(m)
	}
	return res, nil
}
