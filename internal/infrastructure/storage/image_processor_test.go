package storage

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor(0)

	assert.NoError(t, p.ValidateImage(encodePNG(t, 8, 8)))
	assert.NoError(t, p.ValidateImage(encodeJPEG(t, 8, 8)))

	assert.Error(t, p.ValidateImage([]byte("not an image at all")))
	assert.Error(t, p.ValidateImage(nil))
}

func TestValidateImageRejectsOtherFormats(t *testing.T) {
	p := NewImageProcessor(0)

	buf := new(bytes.Buffer)
	require.NoError(t, gif.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))

	err := p.ValidateImage(buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gif")
}

func TestValidateImageSizeLimit(t *testing.T) {
	data := encodePNG(t, 8, 8)
	p := NewImageProcessor(int64(len(data)) - 1)

	err := p.ValidateImage(data)
	require.Error(t, err)

	p = NewImageProcessor(int64(len(data)))
	assert.NoError(t, p.ValidateImage(data))
}

func TestNormalizeReencodesAsJPEG(t *testing.T) {
	p := NewImageProcessor(0)

	data, contentType, err := p.Normalize(encodePNG(t, 8, 8))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 8, cfg.Width)
}

func TestNormalizeDownscalesOversized(t *testing.T) {
	p := NewImageProcessor(0)

	data, _, err := p.Normalize(encodePNG(t, maxDimension*2, maxDimension))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxDimension, cfg.Width)
	assert.Equal(t, maxDimension/2, cfg.Height)
}

func TestNormalizeKeepsSmallDimensions(t *testing.T) {
	p := NewImageProcessor(0)

	data, _, err := p.Normalize(encodeJPEG(t, 120, 90))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 90, cfg.Height)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	p := NewImageProcessor(0)

	_, _, err := p.Normalize([]byte("garbage"))
	assert.Error(t, err)
}
