package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the default of disintegration/imaging and of
// OpenCV's imencode.
const DefaultJPEGQuality = 95

// EncodeJPEG compresses img into a baseline JPEG bitstream.
//
// An *image.Gray input produces a single-component (grayscale) JPEG.
// Quality is clamped to 1-100 by the encoder.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 returns data as standard, padded base64 text.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
