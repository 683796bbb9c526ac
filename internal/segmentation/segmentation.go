// Package segmentation implements the image transform applied to every
// upload: grayscale conversion followed by a fixed binary threshold.
package segmentation

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	// Register decoders for the accepted upload formats.
	_ "image/gif"
	_ "image/png"
)

// Threshold is the grayscale cutoff: pixels at or below it become black,
// everything above becomes white.
const Threshold = 127

// jpegQuality for the re-encoded result.
const jpegQuality = 90

// Segment decodes an uploaded image, applies the threshold transform and
// returns the result encoded as JPEG.
func Segment(original []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	segmented := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y > Threshold {
				gray.Y = 255
			} else {
				gray.Y = 0
			}
			segmented.SetGray(x, y, gray)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, segmented, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode segmented image: %w", err)
	}

	return buf.Bytes(), nil
}
