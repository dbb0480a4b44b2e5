// Package batch drives segmentation over a directory of images.
//
// The runner scans the input directory for image files, processes each one
// through the segmentation pipeline, and persists the per-target CSV grids
// and optional contour overlays. Images are independent, so the runner can
// process several in parallel; each worker owns its image's planes, tree and
// label maps exclusively. An image that fails to decode is logged and
// skipped; a bad file never aborts the batch. Configuration errors are
// reported before any image is touched.
package batch
