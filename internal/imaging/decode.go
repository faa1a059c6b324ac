package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// errEmptyImage is reported when a decoder accepts the stream but produces
// an image with no pixels.
var errEmptyImage = errors.New("decoded image has no pixels")

// DefaultMaxPixels caps the declared width*height of a frame that Decode will
// expand into memory. 50 MP covers 8K video frames with room to spare.
const DefaultMaxPixels int64 = 50_000_000

// ErrTooManyPixels is wrapped by InvalidImage when the declared dimensions of
// a frame exceed the pixel limit.
var ErrTooManyPixels = errors.New("image exceeds pixel limit")

// DecodeResult is the outcome of decoding a raw frame.
//
// It is a closed set with exactly two members:
//   - ValidImage: the bytes decoded into a pixel grid
//   - InvalidImage: the bytes are not a decodable image
//
// Decode never returns an error; callers switch on the concrete type instead.
type DecodeResult interface {
	isDecodeResult()
}

// ValidImage holds a successfully decoded frame.
type ValidImage struct {
	// Image is the decoded pixel grid with EXIF orientation applied.
	Image image.Image

	// Format is the container name reported by the registered decoder
	// (e.g., "jpeg", "png", "gif", "bmp", "tiff", "webp").
	Format string
}

// InvalidImage describes why a frame could not be decoded.
type InvalidImage struct {
	// Reason is the decoder's own diagnostic.
	Reason error
}

func (ValidImage) isDecodeResult()   {}
func (InvalidImage) isDecodeResult() {}

// Error returns the decoder diagnostic, or a generic message when none is set.
func (i InvalidImage) Error() string {
	if i.Reason == nil {
		return "invalid image data"
	}
	return fmt.Sprintf("invalid image data: %v", i.Reason)
}

// Unwrap exposes the decoder diagnostic to errors.Is and errors.As.
func (i InvalidImage) Unwrap() error {
	return i.Reason
}

// Decode interprets data as an encoded still image.
//
// The container format is detected from the byte stream itself, not from any
// declared content type. PNG, JPEG and GIF are registered by the standard
// library, BMP and TIFF by disintegration/imaging, and WebP by x/image.
//
// Parameters:
//   - data: The encoded image bytes. May be empty or arbitrary garbage.
//   - maxPixels: Upper bound on width*height read from the image header.
//     Values <= 0 select DefaultMaxPixels.
//
// Returns:
//   - DecodeResult: ValidImage on success, InvalidImage otherwise. Decode never
//     panics on malformed input handled by the registered decoders, and never
//     returns nil.
//
// # Orientation
//
// JPEG EXIF orientation tags are honored, so a frame captured in portrait on
// a phone decodes upright.
//
// # Size Limit
//
// The header is read before any pixel data, so a small compressed stream that
// declares huge dimensions is rejected without allocating its pixel buffer.
func Decode(data []byte, maxPixels int64) DecodeResult {
	if len(data) == 0 {
		return InvalidImage{Reason: errors.New("empty input")}
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return InvalidImage{Reason: err}
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxPixels {
		return InvalidImage{Reason: fmt.Errorf("%w: %dx%d is %d pixels, limit is %d",
			ErrTooManyPixels, cfg.Width, cfg.Height, pixels, maxPixels)}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return InvalidImage{Reason: err}
	}

	if img.Bounds().Empty() {
		return InvalidImage{Reason: errEmptyImage}
	}

	return ValidImage{Image: img, Format: format}
}
