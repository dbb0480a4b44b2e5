package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// imageExtensions lists the file extensions the batch driver treats as
// images, lowercase with leading dot. Matching is case-insensitive.
var imageExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff",
}

// Open decodes the image at path. Supported formats are those of the
// imaging library: PNG, JPEG, GIF, BMP and TIFF. A file that is missing or
// cannot be decoded is an error for the caller to handle; the batch driver
// skips such files instead of aborting.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image %s has zero size", path)
	}
	return img, nil
}

// IsImageFile reports whether the file name carries a recognized image
// extension.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListImages returns the full paths of all image files directly inside dir,
// sorted by name so batch runs visit files in a stable order. Subdirectories
// are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem returns the file name of path without directory or extension,
// the way output files are named after their source image.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
