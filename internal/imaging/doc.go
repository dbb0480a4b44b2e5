// Package imaging handles image input for the batch segmenter.
//
// It decodes source images (PNG, JPEG, GIF, BMP, TIFF) and enumerates the
// image files of an input directory in a stable, sorted order. Decode
// failures are plain errors: the batch layer logs and skips the file rather
// than aborting the run.
package imaging
