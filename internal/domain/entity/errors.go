package entity

import "errors"

var (
	// Запуск запрошен без исходного изображения.
	ErrNoSource = errors.New("no source image")
	// Размеры буфера не согласованы с числом пикселей.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
	// k вне диапазона [1, число пикселей].
	ErrInvalidPaletteSize = errors.New("invalid palette size")
	// Параметры генерации вне допустимых значений.
	ErrInvalidOptions = errors.New("invalid generation options")
	// Операция над областью без пикселей.
	ErrEmptyRegion = errors.New("empty region")
	// Для цвета области нет похожего цвета палитры.
	ErrPaletteMiss = errors.New("no similar palette color")
	// Нет текстуры для нужной цифры.
	ErrGlyphMissing = errors.New("glyph is missing")
)
