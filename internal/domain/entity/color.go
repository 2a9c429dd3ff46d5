package entity

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color хранит цвет пикселя, каналы в диапазоне [0, 1].
// Сравнение через == точное, на этом построен поиск областей.
type Color struct {
	R, G, B, A float32
}

var (
	Transparent = Color{}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Grey        = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	Black       = Color{A: 1}
)

// ColorFromStd переводит цвет стандартной библиотеки в Color (без премультипликации).
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// NRGBA возвращает 8-битное представление цвета.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(c.A),
	}
}

// Hex возвращает цвет в виде #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// Opaque возвращает тот же цвет с полной непрозрачностью.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// IsTransparent сообщает, полностью ли прозрачен пиксель.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Gray возвращает яркость пикселя, по ней упорядочивается медианный фильтр.
func (c Color) Gray() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// DistanceSq возвращает квадрат евклидова расстояния в RGB.
func (c Color) DistanceSq(o Color) float64 {
	dr := float64(c.R - o.R)
	dg := float64(c.G - o.G)
	db := float64(c.B - o.B)
	return dr*dr + dg*dg + db*db
}

// Similar сравнивает цвета только по доминирующему каналу c.
// Проверка несимметрична: c.Similar(o) не означает o.Similar(c).
func (c Color) Similar(o Color, tolerance float32) bool {
	dominant := max(c.G, c.B, c.R)
	switch dominant {
	case c.R:
		return abs32(c.R-o.R) < tolerance
	case c.G:
		return abs32(c.G-o.G) < tolerance
	case c.B:
		return abs32(c.B-o.B) < tolerance
	}
	return false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func toByte(v float32) uint8 {
	return uint8(max(0, min(255, v*255+0.5)))
}
