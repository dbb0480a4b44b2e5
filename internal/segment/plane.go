package segment

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/lucasb-eyer/go-colorful"
)

// blurRadius is the Gaussian radius applied when Config.Blur is set. It
// matches the light 3x3 smoothing the original tool applied before channel
// conversion.
const blurRadius = 1.0

// Plane is one channel of the image as a flat row-major float grid. Values
// are normalized into [0, 256) for every channel so that histogram binning
// treats all planes identically:
//
//	R, G, B    8-bit intensities as-is
//	H          degrees scaled from [0, 360)
//	S, V       fractions scaled from [0, 1]
//	L, a, b    L* scaled from [0, 1], a*/b* offset from [-1, 1]
//
// Planes are built once per image and shared read-only by every region.
type Plane struct {
	Name string
	Pix  []float64
}

// BuildPlanes converts a decoded image into the ordered list of value planes
// selected by cfg.Channels: RGB planes first, then HSV, then Lab, for
// whichever families are enabled. When cfg.Blur is set, a Gaussian blur is
// applied to the source pixels before any conversion.
//
// A zero-sized image or an empty channel selection is an error; no plane is
// allocated in that case.
func BuildPlanes(img image.Image, cfg Config) ([]Plane, error) {
	if cfg.Channels == 0 {
		return nil, fmt.Errorf("%w: no color channel selected", ErrInvalidConfig)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot sample zero-sized image (%dx%d)", w, h)
	}

	if cfg.Blur {
		img = blur.Gaussian(img, blurRadius)
		bounds = img.Bounds()
	}

	planes := make([]Plane, 0, cfg.Channels.Count())
	for _, name := range planeNames(cfg.Channels) {
		planes = append(planes, Plane{Name: name, Pix: make([]float64, w*h)})
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8 := float64(r >> 8)
			g8 := float64(g >> 8)
			b8 := float64(b >> 8)

			i := y*w + x
			p := 0
			if cfg.Channels&ChannelRGB != 0 {
				planes[p+0].Pix[i] = r8
				planes[p+1].Pix[i] = g8
				planes[p+2].Pix[i] = b8
				p += 3
			}
			if cfg.Channels&(ChannelHSV|ChannelLab) != 0 {
				col := colorful.Color{R: r8 / 255.0, G: g8 / 255.0, B: b8 / 255.0}
				if cfg.Channels&ChannelHSV != 0 {
					hue, sat, val := col.Hsv()
					planes[p+0].Pix[i] = clampPlane(hue / 360.0 * 256.0)
					planes[p+1].Pix[i] = clampPlane(sat * 255.0)
					planes[p+2].Pix[i] = clampPlane(val * 255.0)
					p += 3
				}
				if cfg.Channels&ChannelLab != 0 {
					l, a, bb := col.Lab()
					planes[p+0].Pix[i] = clampPlane(l * 255.0)
					planes[p+1].Pix[i] = clampPlane(a*128.0 + 128.0)
					planes[p+2].Pix[i] = clampPlane(bb*128.0 + 128.0)
				}
			}
		}
	}
	return planes, nil
}

func planeNames(f ChannelFamily) []string {
	names := make([]string, 0, f.Count())
	if f&ChannelRGB != 0 {
		names = append(names, "R", "G", "B")
	}
	if f&ChannelHSV != 0 {
		names = append(names, "H", "S", "V")
	}
	if f&ChannelLab != 0 {
		names = append(names, "L", "a", "b")
	}
	return names
}

// clampPlane keeps normalized channel values inside [0, 256). Lab a*/b* can
// overshoot the nominal [-1, 1] range for saturated colors.
func clampPlane(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255.999 {
		return 255.999
	}
	return v
}
