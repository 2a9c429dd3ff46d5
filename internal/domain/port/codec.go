package port

import "paint-bot/internal/domain/entity"

// ImageCodec интерфейс декодирования фотографий и кодирования результатов
type ImageCodec interface {
	// Decode разбирает байты файла изображения
	Decode(data []byte) (*entity.PixelBuffer, error)

	// EncodePNG кодирует буфер в PNG
	EncodePNG(buf *entity.PixelBuffer) ([]byte, error)
}
