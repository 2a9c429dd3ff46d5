package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Форматы, которые принимает бот.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// Codec декодирует фотографии и кодирует результаты в PNG.
type Codec struct{}

// New создаёт кодек.
func New() *Codec {
	return &Codec{}
}

// Decode разбирает JPEG, PNG, GIF, BMP, TIFF или WebP.
func (c *Codec) Decode(data []byte) (*entity.PixelBuffer, error) {
	if len(data) == 0 {
		return nil, entity.ErrNoSource
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return entity.BufferFromImage(img), nil
}

// EncodePNG кодирует буфер в PNG.
func (c *Codec) EncodePNG(buf *entity.PixelBuffer) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, buf.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

// Проверка реализации интерфейса
var _ port.ImageCodec = (*Codec)(nil)
