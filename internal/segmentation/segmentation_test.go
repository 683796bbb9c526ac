package segmentation

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSegment_ThresholdsPixels(t *testing.T) {
	// Left half dark, right half bright.
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 {
				img.SetGray(x, y, color.Gray{Y: 30})
			} else {
				img.SetGray(x, y, color.Gray{Y: 220})
			}
		}
	}

	out, err := Segment(encodePNG(t, img))
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	dark := color.GrayModel.Convert(decoded.At(2, 5)).(color.Gray)
	bright := color.GrayModel.Convert(decoded.At(7, 5)).(color.Gray)

	// JPEG is lossy, so allow some wobble around pure black/white.
	assert.Less(t, dark.Y, uint8(30))
	assert.Greater(t, bright.Y, uint8(225))
}

func TestSegment_AcceptsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	out, err := Segment(buf.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestSegment_RejectsGarbage(t *testing.T) {
	_, err := Segment([]byte("definitely not an image"))
	assert.Error(t, err)
}
