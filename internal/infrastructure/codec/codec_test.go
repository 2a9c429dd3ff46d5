package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/internal/domain/entity"
)

func TestCodec_PNGRoundTrip(t *testing.T) {
	buf := entity.NewPixelBuffer(3, 2)
	buf.Set(0, 0, entity.Color{R: 1, A: 1})
	buf.Set(2, 1, entity.Color{B: 1, A: 1})

	c := New()
	data, err := c.EncodePNG(buf)
	require.NoError(t, err)

	got, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, buf.Pix, got.Pix)
}

func TestCodec_DecodeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var data bytes.Buffer
	require.NoError(t, jpeg.Encode(&data, img, nil))

	got, err := New().Decode(data.Bytes())
	require.NoError(t, err)
	require.Equal(t, 8, got.Width)
	require.Equal(t, 4, got.Height)
}

func TestCodec_Errors(t *testing.T) {
	c := New()

	_, err := c.Decode(nil)
	require.ErrorIs(t, err, entity.ErrNoSource)

	_, err = c.Decode([]byte("garbage"))
	require.Error(t, err)

	_, err = c.EncodePNG(nil)
	require.ErrorIs(t, err, entity.ErrNoSource)
}
