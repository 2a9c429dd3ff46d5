package port

import (
	"context"

	"paint-bot/internal/domain/entity"
)

// TemplateGenerator интерфейс конвейера «фото → шаблон по номерам»
type TemplateGenerator interface {
	// Generate выполняет все этапы и отправляет в events прогресс и готовые изображения.
	// После отмены возвращает ошибку контекста и больше ничего не отправляет.
	Generate(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error
}
