package vision

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"

	"paint-bot/internal/domain/entity"
)

// MaxKMeansIterations ограничивает число итераций k-средних.
const MaxKMeansIterations = 100

// Quantizer сводит цвета изображения к палитре из k цветов методом k-средних.
type Quantizer struct {
	MaxIterations int
	Workers       int
	rng           *rand.Rand
}

// NewQuantizer создаёт квантователь с детерминированным генератором.
func NewQuantizer(seed uint64, workers int) *Quantizer {
	return &Quantizer{
		MaxIterations: MaxKMeansIterations,
		Workers:       workers,
		rng:           rand.New(rand.NewPCG(seed, 0x6b6d65616e73)),
	}
}

// Quantize возвращает k центроидов. При отмене цикл прерывается между
// итерациями и возвращает последний полностью посчитанный набор вместе с ошибкой контекста.
func (q *Quantizer) Quantize(ctx context.Context, colors []entity.Color, k int) (entity.Palette, error) {
	n := len(colors)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d for %d colors", entity.ErrInvalidPaletteSize, k, n)
	}

	centroids := make(entity.Palette, k)
	for i, idx := range sampleIndices(q.rng, n, k) {
		centroids[i] = colors[idx].Opaque()
	}
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	progress := entity.ProgressFrom(ctx)
	// Итерация не прерывается посередине: отмена проверяется только между итерациями.
	work := context.WithoutCancel(ctx)

	for iteration := 0; iteration < q.MaxIterations; {
		if err := ctx.Err(); err != nil {
			return centroids, err
		}

		var changed atomic.Bool
		_ = forEachRange(work, n, q.Workers, func(lo, hi int) {
			local := false
			for i := lo; i < hi; i++ {
				nearest := nearestIndex(colors[i], centroids)
				if assignments[i] != nearest {
					assignments[i] = nearest
					local = true
				}
			}
			if local {
				changed.Store(true)
			}
		})

		next := slices.Clone(centroids)
		var mu sync.Mutex
		_ = forEachRange(work, k, q.Workers, func(lo, hi int) {
			for cluster := lo; cluster < hi; cluster++ {
				mean, ok := clusterMean(colors, assignments, cluster)
				if !ok {
					continue
				}
				mu.Lock()
				next[cluster] = mean
				mu.Unlock()
			}
		})
		centroids = next

		iteration++
		progress.Report(fmt.Sprintf("Find colors: %d/%d", iteration, q.MaxIterations), float64(iteration)/float64(q.MaxIterations))

		if !changed.Load() {
			break
		}
	}
	return centroids, nil
}

// Recolor заменяет каждый пиксель ближайшим цветом палитры.
func (q *Quantizer) Recolor(ctx context.Context, src *entity.PixelBuffer, palette entity.Palette) (*entity.PixelBuffer, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", entity.ErrInvalidPaletteSize)
	}
	out := entity.NewPixelBuffer(src.Width, src.Height)
	err := forEachRow(ctx, src.Height, q.Workers, func(y int) {
		row := y * src.Width
		for x := 0; x < src.Width; x++ {
			out.Pix[row+x] = palette[nearestIndex(src.Pix[row+x], palette)]
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// nearestIndex ищет ближайший центроид; при равенстве побеждает меньший индекс.
func nearestIndex(c entity.Color, centroids entity.Palette) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, centroid := range centroids {
		if d := c.DistanceSq(centroid); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func clusterMean(colors []entity.Color, assignments []int, cluster int) (entity.Color, bool) {
	var r, g, b float64
	count := 0
	for i, a := range assignments {
		if a != cluster {
			continue
		}
		r += float64(colors[i].R)
		g += float64(colors[i].G)
		b += float64(colors[i].B)
		count++
	}
	if count == 0 {
		return entity.Color{}, false
	}
	n := float64(count)
	return entity.Color{R: float32(r / n), G: float32(g / n), B: float32(b / n), A: 1}, true
}

// sampleIndices выбирает k различных индексов из [0, n) (алгоритм Флойда).
func sampleIndices(rng *rand.Rand, n, k int) []int {
	picked := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := rng.IntN(j + 1)
		if _, ok := picked[t]; ok {
			t = j
		}
		picked[t] = struct{}{}
		out = append(out, t)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
