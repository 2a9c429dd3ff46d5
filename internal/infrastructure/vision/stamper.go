package vision

import (
	"context"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

const (
	// Сколько случайных сдвигов центра пробовать, прежде чем взять центр масс.
	centerProbes = 10
	// Пиксели цифры с меньшей непрозрачностью не рисуются.
	glyphAlphaCutoff = 0.1
)

// Stamper рисует номер цвета палитры в центре каждой крупной области.
type Stamper struct {
	Glyphs          port.GlyphSource
	Size            int
	Spacing         int
	MinSizeFraction float64
	Tolerance       float32

	rng      *rand.Rand
	numerals map[int]*entity.PixelBuffer
}

// NewStamper создаёт штамп номеров с параметрами из opts.
func NewStamper(glyphs port.GlyphSource, opts entity.GenerationOptions, seed uint64) *Stamper {
	return &Stamper{
		Glyphs:          glyphs,
		Size:            opts.StampSize,
		Spacing:         opts.StampSpacing,
		MinSizeFraction: opts.StampMinSizeFraction,
		Tolerance:       opts.StampTolerance,
		rng:             rand.New(rand.NewPCG(seed, 0x7374616d70)),
		numerals:        make(map[int]*entity.PixelBuffer),
	}
}

// Stamp возвращает копию lines с номерами областей colored.
// Область, для которой не нашлось цвета палитры или цифры, пропускается.
func (s *Stamper) Stamp(ctx context.Context, colored, lines *entity.PixelBuffer, palette entity.Palette) (*entity.PixelBuffer, error) {
	if err := colored.Validate(); err != nil {
		return nil, err
	}
	out := lines.Clone()
	// Строго больше доли площади: остатки шумоподавления не подписываются.
	large, _ := DetectRegions(colored, sizeThreshold(colored, s.MinSizeFraction)+1)
	progress := entity.ProgressFrom(ctx)

	var skipped int
	var firstErr error
	for i := range large {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.stampRegion(out, &large[i], palette); err != nil {
			skipped++
			if firstErr == nil {
				firstErr = err
			}
		}
		progress.Report(fmt.Sprintf("Write numbers: %d/%d", i+1, len(large)), float64(i+1)/float64(len(large)))
	}
	if skipped > 0 {
		log.Printf("stamp: skipped %d of %d regions: %v", skipped, len(large), firstErr)
	}
	return out, nil
}

func (s *Stamper) stampRegion(dst *entity.PixelBuffer, region *entity.Region, palette entity.Palette) error {
	center, err := VisualCenter(region, s.rng)
	if err != nil {
		return err
	}
	index, err := palette.Lookup(region.Color, s.Tolerance)
	if err != nil {
		return err
	}
	numeral, err := s.numeral(index + 1)
	if err != nil {
		return err
	}

	for y := 0; y < numeral.Height; y++ {
		for x := 0; x < numeral.Width; x++ {
			px := center.X + x - s.Size/2
			py := center.Y + y - s.Size/2
			if !dst.In(px, py) {
				continue
			}
			if c := numeral.At(x, y); c.A > glyphAlphaCutoff {
				dst.Set(px, py, c)
			}
		}
	}
	return nil
}

// numeral собирает число из текстур цифр и масштабирует его до Size×Size.
func (s *Stamper) numeral(n int) (*entity.PixelBuffer, error) {
	if cached, ok := s.numerals[n]; ok {
		return cached, nil
	}
	if s.Glyphs == nil {
		return nil, fmt.Errorf("%w: no glyph source", entity.ErrGlyphMissing)
	}
	digits := strconv.Itoa(n)
	textures := make([]*entity.PixelBuffer, 0, len(digits))
	for _, r := range digits {
		t, ok := s.Glyphs.DigitTexture(r)
		if !ok || t == nil || t.Len() == 0 {
			return nil, fmt.Errorf("%w: %q", entity.ErrGlyphMissing, r)
		}
		textures = append(textures, t)
	}
	numeral := scaleBuffer(CombineHorizontally(textures, s.Spacing), s.Size, s.Size)
	s.numerals[n] = numeral
	return numeral, nil
}

// CombineHorizontally ставит текстуры в ряд с промежутком spacing (может быть отрицательным).
func CombineHorizontally(textures []*entity.PixelBuffer, spacing int) *entity.PixelBuffer {
	width := spacing * (len(textures) - 1)
	height := 0
	for _, t := range textures {
		width += t.Width
		height = max(height, t.Height)
	}
	out := entity.NewPixelBuffer(max(1, width), max(1, height))

	offset := 0
	for _, t := range textures {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				c := t.At(x, y)
				if c.A > 0 && out.In(offset+x, y) {
					out.Set(offset+x, y, c)
				}
			}
		}
		offset += t.Width + spacing
	}
	return out
}

// VisualCenter выбирает точку для номера: середину рамки, если она внутри
// области; иначе до centerProbes случайных сдвигов на ±1; иначе центр масс.
func VisualCenter(region *entity.Region, rng *rand.Rand) (image.Point, error) {
	if region.Size() == 0 {
		return image.Point{}, fmt.Errorf("visual center: %w", entity.ErrEmptyRegion)
	}
	mask := region.Mask()
	bounds := region.Bounds()
	mid := region.Center()
	if mask.Contains(mid) {
		return mid, nil
	}

	for range centerProbes {
		p := image.Pt(
			clamp(mid.X+rng.IntN(3)-1, bounds.Min.X, bounds.Max.X-1),
			clamp(mid.Y+rng.IntN(3)-1, bounds.Min.Y, bounds.Max.Y-1),
		)
		if mask.Contains(p) {
			return p, nil
		}
	}

	return centroid(region)
}

// centroid считает среднее координат с отбрасыванием дробной части.
func centroid(region *entity.Region) (image.Point, error) {
	if region.Size() == 0 {
		return image.Point{}, entity.ErrEmptyRegion
	}
	xs := make([]float64, region.Size())
	ys := make([]float64, region.Size())
	for i, p := range region.Pixels {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}
	return image.Pt(int(stat.Mean(xs, nil)), int(stat.Mean(ys, nil))), nil
}
