// Package frame implements the frame converter: raw image bytes in, base64
// grayscale JPEG (or a classified failure) out.
package frame

import (
	"fmt"
	"image"

	"github.com/ironsheep/frame-grayscale-api/internal/imaging"
)

// ErrorKind classifies a failed conversion.
type ErrorKind string

const (
	// NoFrameReceived means the caller sent an empty body.
	NoFrameReceived ErrorKind = "NoFrameReceived"

	// ConversionFailed covers decode, color conversion, encode and any
	// unexpected fault on that path.
	ConversionFailed ErrorKind = "ConversionFailed"
)

// MsgNoFrameReceived is the fixed message for an empty frame.
const MsgNoFrameReceived = "No frame received"

// Result is the outcome of Convert. It is exactly one of Success,
// ClientError or ServerError.
type Result interface {
	isResult()
}

// Success carries the converted frame.
type Success struct {
	// ProcessedFrame is the grayscale JPEG as standard padded base64.
	ProcessedFrame string

	// JPEG is the raw grayscale JPEG bitstream.
	JPEG []byte

	// Width and Height are the frame dimensions in pixels.
	Width  int
	Height int

	// Format is the detected input container format.
	Format string
}

// ClientError is a failure caused by the request itself.
type ClientError struct {
	Kind    ErrorKind
	Message string
}

// ServerError is a failure while converting a non-empty frame.
type ServerError struct {
	Kind ErrorKind
	Err  error
}

func (Success) isResult()     {}
func (ClientError) isResult() {}
func (ServerError) isResult() {}

// Message returns the underlying failure description.
func (e ServerError) Message() string {
	if e.Err == nil {
		return "conversion failed"
	}
	return e.Err.Error()
}

// Options are per-request conversion switches.
type Options struct {
	// Mirror flips the frame horizontally before conversion.
	Mirror bool
}

// Converter turns encoded frames into base64 grayscale JPEGs.
//
// A Converter holds only immutable settings and is safe for concurrent use.
type Converter struct {
	method    imaging.Method
	quality   int
	maxPixels int64

	// toGray is swapped in tests to exercise fault containment.
	toGray func(imaging.DecodeResult, imaging.GrayOptions) (*image.Gray, error)
}

// NewConverter creates a Converter using the given grayscale method, JPEG
// quality and pixel limit. A quality outside 1-100 falls back to
// imaging.DefaultJPEGQuality, and a maxPixels <= 0 to imaging.DefaultMaxPixels.
func NewConverter(method imaging.Method, quality int, maxPixels int64) *Converter {
	if quality < 1 || quality > 100 {
		quality = imaging.DefaultJPEGQuality
	}
	if method == "" {
		method = imaging.MethodLuma
	}
	if maxPixels <= 0 {
		maxPixels = imaging.DefaultMaxPixels
	}
	return &Converter{
		method:    method,
		quality:   quality,
		maxPixels: maxPixels,
		toGray:    imaging.ToGray,
	}
}

// Method reports the configured grayscale method.
func (c *Converter) Method() imaging.Method {
	return c.method
}

// Quality reports the configured JPEG quality.
func (c *Converter) Quality() int {
	return c.quality
}

// MaxPixels reports the largest frame, in pixels, the converter will decode.
func (c *Converter) MaxPixels() int64 {
	return c.maxPixels
}

// Convert decodes raw, converts it to grayscale, re-encodes it as JPEG and
// returns the JPEG as base64 text.
//
// Convert never panics and never returns nil:
//   - empty raw: ClientError{NoFrameReceived}
//   - undecodable raw, a frame larger than the pixel limit, or any fault
//     while converting: ServerError{ConversionFailed}
//   - otherwise: Success
func (c *Converter) Convert(raw []byte, opts Options) (res Result) {
	if len(raw) == 0 {
		return ClientError{Kind: NoFrameReceived, Message: MsgNoFrameReceived}
	}

	defer func() {
		if r := recover(); r != nil {
			res = ServerError{Kind: ConversionFailed, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	decoded := imaging.Decode(raw, c.maxPixels)

	gray, err := c.toGray(decoded, imaging.GrayOptions{Method: c.method, Mirror: opts.Mirror})
	if err != nil {
		return ServerError{Kind: ConversionFailed, Err: err}
	}

	data, err := imaging.EncodeJPEG(gray, c.quality)
	if err != nil {
		return ServerError{Kind: ConversionFailed, Err: err}
	}

	format := ""
	if v, ok := decoded.(imaging.ValidImage); ok {
		format = v.Format
	}

	bounds := gray.Bounds()
	return Success{
		ProcessedFrame: imaging.EncodeBase64(data),
		JPEG:           data,
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Format:         format,
	}
}
