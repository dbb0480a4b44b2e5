// Package segment implements hierarchical histogram threshold segmentation
// (HHTS) of raster images into superpixel label maps.
//
// Given one decoded image and a list of target superpixel counts, the package
// produces one label map per target in a single pass: the image is recursively
// subdivided into a split tree of regions, the tree is cut at the frontier
// matching each target, undersized regions are folded into their most similar
// neighbors, and spatial connectivity is repaired so that every label denotes
// exactly one 4-connected blob.
//
// # Pipeline
//
// The stages run strictly in order for one image:
//
//  1. Channel sampling: the image is converted into per-channel value planes
//     (any subset of RGB, HSV and CIE-Lab, optionally blurred first).
//  2. Tree construction: the most impure region is repeatedly split by
//     thresholding its most impure channel at the within-region Otsu
//     threshold, until every region is pure, below the minimum size, or the
//     largest requested target count is reached.
//  3. Extraction: for each target K, the tree is cut at the frontier that
//     existed when the running leaf count first reached K, yielding a dense
//     label map. Targets beyond the total number of leaves produce the full
//     leaf set; superpixel counts are targets, not guarantees.
//  4. Merging (optional): regions below the minimum pixel size are absorbed
//     by their most histogram-similar spatial neighbor.
//  5. Connectivity repair: labels whose pixels form more than one 4-connected
//     component are split, with fresh ids for all but the largest component.
//
// Coarser maps extracted from the same tree nest inside finer ones: with
// merging disabled, every region of a smaller target is a union of whole
// regions of a larger target.
//
// # Impurity
//
// A region's impurity is, per channel, the standard deviation of the channel
// values multiplied by the number of histogram bins whose occupancy exceeds
// the configured floor; the region score is the maximum over channels. A
// region at or below the split threshold, or at or below the minimum size,
// is pure and never split.
//
// # Determinism
//
// The whole pipeline is deterministic: identical image and configuration
// yield bit-identical label maps. All tie-breaks (split order, merge
// candidate choice, component keep rule) are resolved by fixed rules.
package segment
