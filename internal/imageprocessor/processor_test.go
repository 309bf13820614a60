package imageprocessor

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

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestAvatar_CropsToSquare(t *testing.T) {
	p := NewProcessor(80, 64)

	res, err := p.Avatar(encodePNG(t, 200, 100))
	require.NoError(t, err)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, ".png", res.Extension)

	cfg, _, err := image.DecodeConfig(res.Data)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}

func TestAvatar_SmallImageNotUpscaled(t *testing.T) {
	p := NewProcessor(80, 256)

	res, err := p.Avatar(encodePNG(t, 40, 90))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(res.Data)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestAvatar_JPEGStaysJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	res, err := NewProcessor(0, 0).Avatar(&buf)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.Equal(t, ".jpg", res.Extension)
}

func TestAvatar_InvalidData(t *testing.T) {
	_, err := NewProcessor(80, 64).Avatar(bytes.NewBufferString("not an image"))
	assert.Error(t, err)
	assert.False(t, IsValidImage(bytes.NewBufferString("nope")))
}

func TestCenterSquare(t *testing.T) {
	assert.Equal(t, image.Rect(50, 0, 150, 100), centerSquare(image.Rect(0, 0, 200, 100)))
	assert.Equal(t, image.Rect(0, 25, 50, 75), centerSquare(image.Rect(0, 0, 50, 100)))
}
