package entity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelBuffer_FromImageRowMajor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 255, A: 255})

	b := BufferFromImage(img)
	require.NoError(t, b.Validate())
	require.Equal(t, 6, b.Len())
	require.Equal(t, Color{R: 1, A: 1}, b.Pix[1*3+2])
	require.Equal(t, Color{R: 1, A: 1}, b.At(2, 1))

	back := b.Image()
	require.Equal(t, color.NRGBA{R: 255, A: 255}, back.NRGBAAt(2, 1))
}

func TestPixelBuffer_Validate(t *testing.T) {
	var nilBuf *PixelBuffer
	require.ErrorIs(t, nilBuf.Validate(), ErrNoSource)
	require.ErrorIs(t, (&PixelBuffer{Width: 2, Height: 2, Pix: make([]Color, 3)}).Validate(), ErrInvalidBuffer)
	require.ErrorIs(t, NewPixelBuffer(0, 4).Validate(), ErrInvalidBuffer)
}

func TestPixelBuffer_CloneIsIndependent(t *testing.T) {
	b := NewFilledBuffer(2, 2, White)
	c := b.Clone()
	c.Set(0, 0, Black)
	require.Equal(t, White, b.At(0, 0))
}

func TestOverlay_LaterLayerWinsWhereOpaque(t *testing.T) {
	bottom := NewFilledBuffer(2, 1, White)
	top := NewPixelBuffer(2, 1)
	top.Set(1, 0, Grey)

	out := Overlay(bottom, top)
	require.Equal(t, White, out.At(0, 0))
	require.Equal(t, Grey, out.At(1, 0))
}
