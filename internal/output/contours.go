package output

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gametechlab/hhts/internal/segment"
)

// contourColor marks superpixel boundaries in overlay images.
var contourColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// DrawContours paints superpixel boundaries onto a copy of the source image.
// A pixel is a boundary pixel when its right or lower 4-neighbor carries a
// different label, so every region edge is drawn exactly one pixel wide.
func DrawContours(img image.Image, m *segment.LabelMap) *image.NRGBA {
	bounds := img.Bounds()
	result := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			label := m.At(x, y)
			if x+1 < m.Width && m.At(x+1, y) != label {
				result.SetNRGBA(x, y, contourColor)
				continue
			}
			if y+1 < m.Height && m.At(x, y+1) != label {
				result.SetNRGBA(x, y, contourColor)
			}
		}
	}
	return result
}

// SaveContours renders the contour overlay and writes it to path; the image
// format follows the file extension.
func SaveContours(path string, img image.Image, m *segment.LabelMap) error {
	if err := imaging.Save(DrawContours(img, m), path); err != nil {
		return fmt.Errorf("failed to save contour overlay: %w", err)
	}
	return nil
}
