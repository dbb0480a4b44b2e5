// Package output persists segmentation results in the formats downstream
// tooling consumes: one CSV label grid per target count per image, optional
// contour-overlay PNGs for visual inspection, and a cumulative runtime log
// with per-run average CPU and wall times.
package output
