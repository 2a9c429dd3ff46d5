package port

import (
	"context"
	"image"

	"paint-bot/internal/domain/entity"
)

// Preprocessor интерфейс подготовки фотографии перед кластеризацией
type Preprocessor interface {
	// ResizeKeepingAspect масштабирует так, чтобы большая сторона совпала с рамкой
	ResizeKeepingAspect(ctx context.Context, src *entity.PixelBuffer, box image.Point) (*entity.PixelBuffer, error)

	// MedianFilter заменяет пиксель медианой окна по яркости
	MedianFilter(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error)

	// GaussianBlur сглаживает нормированным гауссовым ядром (σ = 1)
	GaussianBlur(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error)
}
