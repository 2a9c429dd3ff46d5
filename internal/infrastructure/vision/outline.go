package vision

import (
	"context"
	"fmt"

	"paint-bot/internal/domain/entity"
)

// OutlineGenerator строит контурный рисунок по маскам каждого цвета.
type OutlineGenerator struct {
	Workers int
}

// NewOutlineGenerator создаёт генератор контуров.
func NewOutlineGenerator(workers int) *OutlineGenerator {
	return &OutlineGenerator{Workers: workers}
}

// Outline накладывает маски всех непрозрачных цветов в порядке их появления.
// Более поздняя маска перекрывает раннюю только там, где она не прозрачна.
func (g *OutlineGenerator) Outline(ctx context.Context, src *entity.PixelBuffer, thickness int) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	colors := DistinctColors(src)
	out := entity.NewPixelBuffer(src.Width, src.Height)
	progress := entity.ProgressFrom(ctx)

	for i, target := range colors {
		mask, err := g.Mask(ctx, src, target, thickness)
		if err != nil {
			return nil, err
		}
		for j, c := range mask.Pix {
			if c.A > 0 {
				out.Pix[j] = c
			}
		}
		progress.Report(fmt.Sprintf("Draw outlines: %d/%d", i+1, len(colors)), float64(i+1)/float64(len(colors)))
	}
	return out, nil
}

// Mask строит маску одного цвета: белый там, где пиксель равен target;
// серый там, где пиксель другой, не прозрачный и в пределах thickness/2
// (по Чебышёву) от пикселя target; остальное прозрачно.
func (g *OutlineGenerator) Mask(ctx context.Context, src *entity.PixelBuffer, target entity.Color, thickness int) (*entity.PixelBuffer, error) {
	w, h := src.Width, src.Height
	half := thickness / 2

	// Квадратное окно раскладывается на два прохода: по строке, затем по столбцу.
	nearInRow := make([]bool, w*h)
	err := forEachRow(ctx, h, g.Workers, func(y int) {
		row := y * w
		last := -1 << 30
		for x := 0; x < w; x++ {
			if src.Pix[row+x] == target {
				last = x
			}
			nearInRow[row+x] = x-last <= half
		}
		last = 1 << 30
		for x := w - 1; x >= 0; x-- {
			if src.Pix[row+x] == target {
				last = x
			}
			if last-x <= half {
				nearInRow[row+x] = true
			}
		}
	})
	if err != nil {
		return nil, err
	}

	mask := entity.NewPixelBuffer(w, h)
	err = forEachRow(ctx, h, g.Workers, func(y int) {
		y0, y1 := max(0, y-half), min(h-1, y+half)
		for x := 0; x < w; x++ {
			idx := y*w + x
			c := src.Pix[idx]
			if c == target {
				mask.Pix[idx] = entity.White
				continue
			}
			if c.IsTransparent() {
				continue
			}
			for ny := y0; ny <= y1; ny++ {
				if nearInRow[ny*w+x] {
					mask.Pix[idx] = entity.Grey
					break
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return mask, nil
}

// DistinctColors возвращает непрозрачные цвета в порядке первого появления.
func DistinctColors(src *entity.PixelBuffer) []entity.Color {
	seen := make(map[entity.Color]struct{})
	var colors []entity.Color
	for _, c := range src.Pix {
		if c.IsTransparent() {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	return colors
}

// Draft убирает белые пиксели контуров и накладывает контуры на цветное изображение.
func Draft(colored, lines *entity.PixelBuffer) *entity.PixelBuffer {
	cleaned := lines.Clone()
	for i, c := range cleaned.Pix {
		if c == entity.White {
			cleaned.Pix[i] = entity.Transparent
		}
	}
	return entity.Overlay(colored, cleaned)
}
