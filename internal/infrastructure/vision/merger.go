package vision

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"paint-bot/internal/domain/entity"
)

const (
	// Сколько случайных пикселей крупной области сравнивается с мелкой.
	distanceSamples = 20
	// Доля отсортированных кандидатов, после которой поиск прекращается.
	candidateShare = 0.1
)

// Merger перекрашивает мелкие области в цвет соседней крупной области.
type Merger struct {
	rng *rand.Rand
}

// NewMerger создаёт шумоподавитель с детерминированным генератором.
func NewMerger(seed uint64) *Merger {
	return &Merger{rng: rand.New(rand.NewPCG(seed, 0x6d6572676572))}
}

// Denoise выполняет один проход: находит области и перекрашивает мелкие.
func (m *Merger) Denoise(ctx context.Context, src *entity.PixelBuffer, pass entity.DenoisePass) (*entity.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	large, small := DetectRegions(src, sizeThreshold(src, pass.MinSizeFraction))
	return m.Reassign(ctx, src, large, small, pass.Tolerance)
}

// Reassign возвращает копию src, где каждая мелкая область получила цвет
// подходящей крупной или сохранила свой.
func (m *Merger) Reassign(ctx context.Context, src *entity.PixelBuffer, large, small []entity.Region, tolerance float32) (*entity.PixelBuffer, error) {
	out := src.Clone()
	progress := entity.ProgressFrom(ctx)
	total := len(small)

	for i := range small {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		region := &small[i]
		replacement := m.nearestLargeColor(region, large, tolerance)
		if replacement != region.Color {
			for _, p := range region.Pixels {
				out.Set(p.X, p.Y, replacement)
			}
		}
		progress.Report(fmt.Sprintf("Remove small regions: %d/%d", i+1, total), float64(i+1)/float64(total))
	}
	return out, nil
}

type candidate struct {
	region   *entity.Region
	distance float64
}

// nearestLargeColor выбирает цвет ближайшей похожей крупной области.
// Расстояние приблизительное: по случайной выборке пикселей до затравки мелкой области.
func (m *Merger) nearestLargeColor(small *entity.Region, large []entity.Region, tolerance float32) entity.Color {
	seed, err := small.Seed()
	if err != nil || len(large) == 0 {
		return small.Color
	}

	candidates := make([]candidate, len(large))
	for i := range large {
		candidates[i] = candidate{region: &large[i], distance: m.sampledDistance(&large[i], seed)}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(b.region.Size(), a.region.Size())
	})

	limit := float64(len(candidates)) * candidateShare
	for i, c := range candidates {
		if small.Color.Similar(c.region.Color, tolerance) {
			return c.region.Color
		}
		if float64(i) > limit {
			break
		}
	}
	return small.Color
}

func (m *Merger) sampledDistance(region *entity.Region, target image.Point) float64 {
	if region.Size() == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for range distanceSamples {
		p := region.Pixels[m.rng.IntN(region.Size())]
		best = min(best, math.Hypot(float64(p.X-target.X), float64(p.Y-target.Y)))
	}
	return best
}
