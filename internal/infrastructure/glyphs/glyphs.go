package glyphs

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// DefaultSize задаёт кегль, в котором растрируются цифры; на шаблоне они
// уменьшаются до размера штампа.
const DefaultSize = 64

// GlyphSet хранит готовые текстуры цифр.
type GlyphSet struct {
	textures map[rune]*entity.PixelBuffer
}

// NewGlyphSet создаёт набор из готовых текстур.
func NewGlyphSet(textures map[rune]*entity.PixelBuffer) *GlyphSet {
	return &GlyphSet{textures: textures}
}

// Default растрирует цифры встроенным шрифтом Go Mono Bold.
func Default() (*GlyphSet, error) {
	return FromTTF(gomonobold.TTF, DefaultSize)
}

// Load растрирует цифры шрифтом из файла.
func Load(path string, size float64) (*GlyphSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return FromTTF(data, size)
}

// FromTTF растрирует цифры 0–9 один раз: чёрный цвет, покрытие глифа в альфе.
func FromTTF(ttf []byte, size float64) (*GlyphSet, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	textures := make(map[rune]*entity.PixelBuffer, 10)

	for r := '0'; r <= '9'; r++ {
		advance, ok := face.GlyphAdvance(r)
		if !ok || advance.Ceil() == 0 {
			continue
		}
		dst := image.NewAlpha(image.Rect(0, 0, advance.Ceil(), height))
		d := font.Drawer{
			Dst:  dst,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.Point26_6{Y: metrics.Ascent},
		}
		d.DrawString(string(r))
		textures[r] = coverageToBuffer(dst)
	}
	return NewGlyphSet(textures), nil
}

// DigitTexture возвращает текстуру символа.
func (g *GlyphSet) DigitTexture(r rune) (*entity.PixelBuffer, bool) {
	t, ok := g.textures[r]
	return t, ok
}

func coverageToBuffer(a *image.Alpha) *entity.PixelBuffer {
	b := a.Bounds()
	buf := entity.NewPixelBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			buf.Set(x, y, entity.Color{A: float32(a.AlphaAt(x, y).A) / 255})
		}
	}
	return buf
}

// Проверка реализации интерфейса
var _ port.GlyphSource = (*GlyphSet)(nil)
