package port

import "paint-bot/internal/domain/entity"

// GlyphSource интерфейс источника текстур цифр
type GlyphSource interface {
	// DigitTexture возвращает текстуру символа или false, если её нет
	DigitTexture(r rune) (*entity.PixelBuffer, bool)
}
