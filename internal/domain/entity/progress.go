package entity

import "context"

// Stage обозначает готовый результат конвейера.
type Stage int

const (
	StageQuantized Stage = iota // Изображение в цветах палитры
	StageLineArt                // Контуры областей
	StageDraft                  // Контуры поверх цветного изображения
	StageFinal                  // Контуры с номерами
)

func (s Stage) String() string {
	switch s {
	case StageQuantized:
		return "quantized"
	case StageLineArt:
		return "lines"
	case StageDraft:
		return "draft"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Progress содержит название текущей операции и долю выполнения [0, 1].
// Между этапами доля сбрасывается.
type Progress struct {
	Label    string
	Fraction float64
}

// StageOutput содержит изображение, готовое на очередном этапе.
type StageOutput struct {
	Stage   Stage
	Image   *PixelBuffer
	Palette Palette
}

// Event несёт либо прогресс, либо готовый этап.
type Event struct {
	Progress *Progress
	Output   *StageOutput
}

// ProgressFunc получает обновления прогресса.
type ProgressFunc func(Progress)

// Report безопасно вызывает f, если он задан.
func (f ProgressFunc) Report(label string, fraction float64) {
	if f == nil {
		return
	}
	f(Progress{Label: label, Fraction: fraction})
}

type progressKey struct{}

// WithProgress прикрепляет получателя прогресса к контексту запуска.
func WithProgress(ctx context.Context, f ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, f)
}

// ProgressFrom возвращает получателя прогресса из контекста (может быть nil).
func ProgressFrom(ctx context.Context) ProgressFunc {
	f, _ := ctx.Value(progressKey{}).(ProgressFunc)
	return f
}
