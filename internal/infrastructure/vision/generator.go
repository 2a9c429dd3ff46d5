package vision

import (
	"context"
	"fmt"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// Generator последовательно запускает этапы конвейера.
// Каждый этап возвращает новый буфер и не меняет входной.
type Generator struct {
	pre    port.Preprocessor
	glyphs port.GlyphSource
}

// NewGenerator создаёт конвейер с заданным препроцессором и источником цифр.
func NewGenerator(pre port.Preprocessor, glyphs port.GlyphSource) *Generator {
	return &Generator{pre: pre, glyphs: glyphs}
}

// Generate строит шаблон и по мере готовности отправляет четыре изображения:
// цветное, контуры, черновик и итоговый шаблон с номерами.
func (g *Generator) Generate(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	// Прогресс не блокирует конвейер: важно только последнее значение.
	ctx = entity.WithProgress(ctx, func(p entity.Progress) {
		select {
		case events <- entity.Event{Progress: &p}:
		default:
		}
	})
	emit := func(out entity.StageOutput) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case events <- entity.Event{Output: &out}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	img, err := g.pre.ResizeKeepingAspect(ctx, src, opts.TargetResolution)
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	if img, err = g.pre.MedianFilter(ctx, img, opts.MedianWindow); err != nil {
		return fmt.Errorf("median filter: %w", err)
	}
	if img, err = g.pre.GaussianBlur(ctx, img, opts.GaussianWindow); err != nil {
		return fmt.Errorf("gaussian blur: %w", err)
	}

	quantizer := NewQuantizer(opts.Seed, opts.Workers)
	palette, err := quantizer.Quantize(ctx, img.Pix, opts.PaletteSize)
	if err != nil {
		return fmt.Errorf("quantize: %w", err)
	}
	colored, err := quantizer.Recolor(ctx, img, palette)
	if err != nil {
		return fmt.Errorf("recolor: %w", err)
	}

	merger := NewMerger(opts.Seed)
	for i, pass := range opts.DenoisePasses {
		if colored, err = merger.Denoise(ctx, colored, pass); err != nil {
			return fmt.Errorf("denoise pass %d: %w", i+1, err)
		}
	}
	if err := emit(entity.StageOutput{Stage: entity.StageQuantized, Image: colored, Palette: palette}); err != nil {
		return err
	}

	lines, err := NewOutlineGenerator(opts.Workers).Outline(ctx, colored, opts.OutlineThickness)
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	if err := emit(entity.StageOutput{Stage: entity.StageLineArt, Image: lines, Palette: palette}); err != nil {
		return err
	}
	if err := emit(entity.StageOutput{Stage: entity.StageDraft, Image: Draft(colored, lines), Palette: palette}); err != nil {
		return err
	}

	final, err := NewStamper(g.glyphs, opts, opts.Seed).Stamp(ctx, colored, lines, palette)
	if err != nil {
		return fmt.Errorf("stamp: %w", err)
	}
	return emit(entity.StageOutput{Stage: entity.StageFinal, Image: final, Palette: palette})
}

// Проверка реализации интерфейса
var _ port.TemplateGenerator = (*Generator)(nil)
