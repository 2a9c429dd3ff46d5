package entity

import (
	"fmt"
	"image"
)

// PixelBuffer хранит изображение width×height построчно (index = y*width+x).
// Буфер принадлежит этапу, который его создал; остальные только читают.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []Color
}

// NewPixelBuffer создаёт прозрачный буфер заданного размера.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// NewFilledBuffer создаёт буфер, залитый одним цветом.
func NewFilledBuffer(width, height int, c Color) *PixelBuffer {
	b := NewPixelBuffer(width, height)
	for i := range b.Pix {
		b.Pix[i] = c
	}
	return b
}

// BufferFromImage копирует image.Image в новый буфер.
func BufferFromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Height; y++ {
			row := n.Pix[(y+bounds.Min.Y-n.Rect.Min.Y)*n.Stride:]
			for x := 0; x < b.Width; x++ {
				off := (x + bounds.Min.X - n.Rect.Min.X) * 4
				b.Pix[y*b.Width+x] = Color{
					R: float32(row[off]) / 255,
					G: float32(row[off+1]) / 255,
					B: float32(row[off+2]) / 255,
					A: float32(row[off+3]) / 255,
				}
			}
		}
		return b
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			b.Pix[y*b.Width+x] = ColorFromStd(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return b
}

// Validate проверяет инвариант len(Pix) == Width*Height.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return ErrNoSource
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: empty buffer %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidBuffer, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// Len возвращает число пикселей.
func (b *PixelBuffer) Len() int {
	return b.Width * b.Height
}

// Index переводит координаты в индекс.
func (b *PixelBuffer) Index(x, y int) int {
	return y*b.Width + x
}

// In сообщает, лежит ли точка внутри буфера.
func (b *PixelBuffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *PixelBuffer) At(x, y int) Color {
	return b.Pix[y*b.Width+x]
}

func (b *PixelBuffer) Set(x, y int, c Color) {
	b.Pix[y*b.Width+x] = c
}

// Clone возвращает независимую копию.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := &PixelBuffer{Width: b.Width, Height: b.Height, Pix: make([]Color, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Image переводит буфер в *image.NRGBA.
func (b *PixelBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, c := range b.Pix {
		n := c.NRGBA()
		off := i * 4
		img.Pix[off] = n.R
		img.Pix[off+1] = n.G
		img.Pix[off+2] = n.B
		img.Pix[off+3] = n.A
	}
	return img
}

// Overlay накладывает слои по порядку: более поздний слой перекрывает
// результат только там, где он не прозрачен.
func Overlay(layers ...*PixelBuffer) *PixelBuffer {
	if len(layers) == 0 {
		return nil
	}
	out := NewPixelBuffer(layers[0].Width, layers[0].Height)
	for _, layer := range layers {
		for i, c := range layer.Pix {
			if c.A > 0 {
				out.Pix[i] = c
			}
		}
	}
	return out
}
