// Package imaging provides the codec and color operations behind frame conversion.
//
// A frame moves through three steps:
//   - Decode: raw bytes to a DecodeResult (ValidImage or InvalidImage)
//   - ToGray: a DecodeResult to a single-channel *image.Gray
//   - EncodeJPEG / EncodeBase64: the gray image to JPEG bytes, then to text
//
// Decode never returns an error. A malformed frame becomes an InvalidImage and
// the failure surfaces from ToGray, so callers handle it in one place.
//
// # Grayscale Methods
//
//   - luma: 0.299·R + 0.587·G + 0.114·B via disintegration/imaging (default)
//   - bild: the same weights via anthonynsimon/bild
//   - lightness: CIE L* via lucasb-eyer/go-colorful
//
// # Thread Safety
//
// All functions are stateless and safe to call concurrently. Images passed in
// are not modified.
package imaging
