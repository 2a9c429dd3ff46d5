package vision

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"paint-bot/internal/domain/entity"
)

// FitToBox возвращает размер, при котором большая сторона совпадает с рамкой.
func FitToBox(width, height int, box image.Point) (int, int) {
	aspect := float64(width) / float64(height)
	if aspect > 1 {
		return box.X, max(1, int(math.Round(float64(box.X)/aspect)))
	}
	return max(1, int(math.Round(float64(box.Y)*aspect))), box.Y
}

// scaleBuffer масштабирует буфер билинейной интерполяцией.
func scaleBuffer(src *entity.PixelBuffer, width, height int) *entity.PixelBuffer {
	if src.Width == width && src.Height == height {
		return src.Clone()
	}
	srcImg := src.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	return entity.BufferFromImage(dst)
}
