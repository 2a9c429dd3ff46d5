package vision

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"math"
	"slices"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

const gaussianSigma = 1.0

// Preprocessor готовит фотографию на чистом Go: масштаб, медиана, размытие.
type Preprocessor struct {
	Workers int
}

// NewPreprocessor создаёт препроцессор с заданным числом потоков (0 означает по числу CPU).
func NewPreprocessor(workers int) *Preprocessor {
	return &Preprocessor{Workers: workers}
}

// ResizeKeepingAspect масштабирует изображение под рамку с сохранением пропорций.
func (p *Preprocessor) ResizeKeepingAspect(ctx context.Context, src *entity.PixelBuffer, box image.Point) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := FitToBox(src.Width, src.Height, box)
	entity.ProgressFrom(ctx).Report("Resize", 0)
	return scaleBuffer(src, w, h), nil
}

// MedianFilter заменяет каждый пиксель медианой окна window×window по яркости.
// Координаты за краем прижимаются к границе.
func (p *Preprocessor) MedianFilter(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	half := window / 2
	side := 2*half + 1
	out := entity.NewPixelBuffer(src.Width, src.Height)
	progress := entity.ProgressFrom(ctx)
	var rows atomic.Int64

	err := forEachRow(ctx, src.Height, p.Workers, func(y int) {
		neighbors := make([]entity.Color, 0, side*side)
		for x := 0; x < src.Width; x++ {
			neighbors = neighbors[:0]
			for dy := -half; dy <= half; dy++ {
				ny := clamp(y+dy, 0, src.Height-1)
				for dx := -half; dx <= half; dx++ {
					nx := clamp(x+dx, 0, src.Width-1)
					neighbors = append(neighbors, src.Pix[ny*src.Width+nx])
				}
			}
			slices.SortStableFunc(neighbors, func(a, b entity.Color) int {
				return cmp.Compare(a.Gray(), b.Gray())
			})
			out.Pix[y*src.Width+x] = neighbors[len(neighbors)/2]
		}
		done := rows.Add(1)
		progress.Report(fmt.Sprintf("Apply filters: %d/%d", done, src.Height), float64(done)/float64(src.Height))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GaussianBlur сворачивает изображение с нормированным гауссовым ядром window×window.
func (p *Preprocessor) GaussianBlur(ctx context.Context, src *entity.PixelBuffer, window int) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	kernel := gaussianKernel(window)
	center := window / 2
	out := entity.NewPixelBuffer(src.Width, src.Height)
	entity.ProgressFrom(ctx).Report("Blur", 0)

	err := forEachRow(ctx, src.Height, p.Workers, func(y int) {
		for x := 0; x < src.Width; x++ {
			var r, g, b, a float64
			for ky := 0; ky < window; ky++ {
				sy := clamp(y+ky-center, 0, src.Height-1)
				for kx := 0; kx < window; kx++ {
					sx := clamp(x+kx-center, 0, src.Width-1)
					w := kernel.At(kx, ky)
					c := src.Pix[sy*src.Width+sx]
					r += float64(c.R) * w
					g += float64(c.G) * w
					b += float64(c.B) * w
					a += float64(c.A) * w
				}
			}
			out.Pix[y*src.Width+x] = entity.Color{R: float32(r), G: float32(g), B: float32(b), A: float32(a)}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// gaussianKernel строит ядро с центром в window/2, сумма весов равна 1.
func gaussianKernel(window int) *mat.Dense {
	k := mat.NewDense(window, window, nil)
	mean := float64(window / 2)
	var total float64
	for i := 0; i < window; i++ {
		for j := 0; j < window; j++ {
			dx, dy := float64(i)-mean, float64(j)-mean
			w := math.Exp(-(dx*dx + dy*dy) / (2 * gaussianSigma * gaussianSigma))
			k.Set(i, j, w)
			total += w
		}
	}
	k.Scale(1/total, k)
	return k
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Проверка реализации интерфейса
var _ port.Preprocessor = (*Preprocessor)(nil)
