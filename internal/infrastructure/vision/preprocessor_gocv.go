//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"

	"gocv.io/x/gocv"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// GoCVPreprocessor масштабирует и размывает через OpenCV.
// Медианный фильтр OpenCV работает по каналам, поэтому медиана по яркости
// остаётся на реализации без OpenCV.
type GoCVPreprocessor struct {
	fallback *Preprocessor
}

// NewGoCVPreprocessor создаёт препроцессор на OpenCV.
func NewGoCVPreprocessor(workers int) (*GoCVPreprocessor, error) {
	return &GoCVPreprocessor{fallback: NewPreprocessor(workers)}, nil
}

// ResizeKeepingAspect масштабирует билинейной интерполяцией OpenCV.
func (p *GoCVPreprocessor) ResizeKeepingAspect(ctx context.Context, src *entity.PixelBuffer, box image.Point) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := toMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	w, h := FitToBox(src.Width, src.Height, box)
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationLinear)

	entity.ProgressFrom(ctx).Report("Resize", 0)
	return fromMat(resized)
}

// MedianFilter выполняется без OpenCV (медиана по яркости).
func (p *GoCVPreprocessor) MedianFilter(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	return p.fallback.MedianFilter(ctx, src, window)
}

// GaussianBlur размывает с σ = 1 и повтором краевых пикселей.
func (p *GoCVPreprocessor) GaussianBlur(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	// OpenCV принимает только нечётные ядра.
	if window%2 == 0 {
		return p.fallback.GaussianBlur(ctx, src, window)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat, err := toMat(src)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mat, &blur, image.Pt(window, window), gaussianSigma, gaussianSigma, gocv.BorderReplicate)

	entity.ProgressFrom(ctx).Report("Blur", 0)
	return fromMat(blur)
}

// toMat превращает буфер в gocv.Mat.
func toMat(src *entity.PixelBuffer) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGBA(src.Image())
	if err != nil {
		return gocv.NewMat(), err
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.New("failed to convert image")
	}
	return mat, nil
}

// fromMat копирует gocv.Mat в новый буфер.
func fromMat(mat gocv.Mat) (*entity.PixelBuffer, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	return entity.BufferFromImage(img), nil
}

// Проверка реализации интерфейса
var _ port.Preprocessor = (*GoCVPreprocessor)(nil)
