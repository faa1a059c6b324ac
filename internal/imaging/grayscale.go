package imaging

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Method selects how color pixels are reduced to a single intensity channel.
type Method string

const (
	// MethodLuma weights channels as 0.299·R + 0.587·G + 0.114·B (ITU-R BT.601),
	// computed by disintegration/imaging. This is the default.
	MethodLuma Method = "luma"

	// MethodBild uses the same BT.601 weights through bild's effect package.
	MethodBild Method = "bild"

	// MethodLightness maps each pixel to its CIE L* lightness (go-colorful),
	// which tracks perceived brightness more closely than luma.
	MethodLightness Method = "lightness"
)

// BT.601 luma weights.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Methods lists every supported grayscale method in a stable order.
func Methods() []Method {
	return []Method{MethodLuma, MethodBild, MethodLightness}
}

// ParseMethod converts a method name into a Method.
//
// Matching is case-insensitive and ignores surrounding whitespace. An empty
// string selects MethodLuma.
func ParseMethod(name string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(name))) {
	case "", MethodLuma:
		return MethodLuma, nil
	case MethodBild:
		return MethodBild, nil
	case MethodLightness:
		return MethodLightness, nil
	default:
		return "", fmt.Errorf("unknown grayscale method %q (want one of %v)", name, Methods())
	}
}

// GrayOptions controls ToGray.
type GrayOptions struct {
	// Method is the channel reduction to apply. Zero value means MethodLuma.
	Method Method

	// Mirror flips the frame horizontally before conversion, the way a
	// front-facing camera preview is usually shown.
	Mirror bool
}

// ToGray converts a decoded frame into a single-channel grayscale image.
//
// This is the step where a failed decode surfaces: an InvalidImage (or a nil
// result) yields an error describing the decoder's diagnostic and no image.
//
// Parameters:
//   - res: The result of Decode.
//   - opts: Conversion method and optional horizontal mirroring.
//
// Returns:
//   - *image.Gray: One 8-bit sample per pixel, same width and height as the input.
//   - error: Non-nil if res is not a ValidImage or the method is unknown.
func ToGray(res DecodeResult, opts GrayOptions) (*image.Gray, error) {
	var img image.Image
	switch r := res.(type) {
	case ValidImage:
		if r.Image == nil {
			return nil, InvalidImage{}
		}
		img = r.Image
	case InvalidImage:
		return nil, r
	default:
		return nil, InvalidImage{}
	}

	if opts.Mirror {
		img = imaging.FlipH(img)
	}

	switch opts.Method {
	case "", MethodLuma:
		return lumaGray(img), nil
	case MethodBild:
		return bildGray(img), nil
	case MethodLightness:
		return lightnessGray(img), nil
	default:
		return nil, fmt.Errorf("unknown grayscale method %q", opts.Method)
	}
}

// lumaGray runs imaging.Grayscale and keeps one channel of its output.
// imaging.Grayscale writes the same value to R, G and B and leaves alpha
// untouched; alpha is dropped here since JPEG cannot carry it.
func lumaGray(img image.Image) *image.Gray {
	src := imaging.Grayscale(img)
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}

	return dst
}

// bildGray runs bild's weighted grayscale and keeps one channel of its output.
// bild works on premultiplied RGBA, so semi-transparent samples are divided
// back out by alpha to match what lumaGray produces for the same pixel.
func bildGray(img image.Image) *image.Gray {
	src := effect.GrayscaleWithWeights(img, lumaRed, lumaGreen, lumaBlue)
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dstRow[x] = unpremultiply(srcRow[x*4], srcRow[x*4+3])
		}
	}

	return dst
}

// unpremultiply reverses alpha premultiplication of an 8-bit sample.
// Fully transparent samples stay 0.
func unpremultiply(v, a uint8) uint8 {
	switch a {
	case 0xff:
		return v
	case 0:
		return 0
	}
	u := (uint32(v)*0xff + uint32(a)/2) / uint32(a)
	if u > 0xff {
		return 0xff
	}
	return uint8(u)
}

// lightnessGray maps each pixel to CIE L*, scaled from 0-100 to 0-255.
func lightnessGray(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			i := x * 4
			c := colorful.Color{
				R: float64(srcRow[i]) / 255.0,
				G: float64(srcRow[i+1]) / 255.0,
				B: float64(srcRow[i+2]) / 255.0,
			}
			l, _, _ := c.Lab()
			dstRow[x] = clampUnit(l)
		}
	}

	return dst
}

// clampUnit converts a value in [0,1] to a rounded 8-bit sample.
func clampUnit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
