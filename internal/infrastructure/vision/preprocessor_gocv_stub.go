//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"paint-bot/internal/domain/entity"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVPreprocessor заменяет OpenCV-препроцессор в сборке без OpenCV.
type GoCVPreprocessor struct{}

// NewGoCVPreprocessor возвращает ошибку, если сборка без тега gocv.
func NewGoCVPreprocessor(workers int) (*GoCVPreprocessor, error) {
	_ = workers
	return nil, errNoGoCV
}

// ResizeKeepingAspect возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPreprocessor) ResizeKeepingAspect(ctx context.Context, src *entity.PixelBuffer, box image.Point) (*entity.PixelBuffer, error) {
	_ = ctx
	_ = src
	_ = box
	return nil, errNoGoCV
}

// MedianFilter возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPreprocessor) MedianFilter(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	_ = ctx
	_ = src
	_ = window
	return nil, errNoGoCV
}

// GaussianBlur возвращает ошибку, если сборка без тега gocv.
func (p *GoCVPreprocessor) GaussianBlur(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	_ = ctx
	_ = src
	_ = window
	return nil, errNoGoCV
}
