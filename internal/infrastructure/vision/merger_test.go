package vision

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/internal/domain/entity"
)

func withStray(stray entity.Color) *entity.PixelBuffer {
	buf := entity.NewFilledBuffer(40, 25, entity.Color{R: 0.8, G: 0.1, B: 0.1, A: 1})
	buf.Set(20, 12, stray)
	return buf
}

func TestMerger_ReassignsSimilarStray(t *testing.T) {
	src := withStray(entity.Color{R: 0.85, G: 0.15, B: 0.1, A: 1})

	out, err := NewMerger(1).Denoise(context.Background(), src, entity.DenoisePass{MinSizeFraction: 0.01, Tolerance: 0.1})
	require.NoError(t, err)
	require.Equal(t, entity.Color{R: 0.8, G: 0.1, B: 0.1, A: 1}, out.At(20, 12))
	// Входной буфер не меняется.
	require.Equal(t, entity.Color{R: 0.85, G: 0.15, B: 0.1, A: 1}, src.At(20, 12))
}

func TestMerger_KeepsDissimilarStray(t *testing.T) {
	stray := entity.Color{R: 0.85, G: 0.15, B: 0.1, A: 1}
	src := withStray(stray)

	out, err := NewMerger(1).Denoise(context.Background(), src, entity.DenoisePass{MinSizeFraction: 0.01, Tolerance: 0.02})
	require.NoError(t, err)
	require.Equal(t, stray, out.At(20, 12))
}

func TestMerger_UniformIsUnchanged(t *testing.T) {
	src := entity.NewFilledBuffer(10, 10, red)

	out, err := NewMerger(1).Denoise(context.Background(), src, entity.DenoisePass{MinSizeFraction: 0.1, Tolerance: 0.6})
	require.NoError(t, err)
	require.Equal(t, src.Pix, out.Pix)
}

func TestMerger_NoLargeRegions(t *testing.T) {
	src := halves(4, 2, red, blue)

	out, err := NewMerger(1).Denoise(context.Background(), src, entity.DenoisePass{MinSizeFraction: 0.9, Tolerance: 1})
	require.NoError(t, err)
	require.Equal(t, src.Pix, out.Pix)
}

func TestMerger_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMerger(1).Denoise(ctx, withStray(blue), entity.DenoisePass{MinSizeFraction: 0.01, Tolerance: 0.1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMerger_InvalidSource(t *testing.T) {
	_, err := NewMerger(1).Denoise(context.Background(), nil, entity.DenoisePass{})
	require.ErrorIs(t, err, entity.ErrNoSource)
}

// pinned строит область из count пикселей в одной точке: выборочное расстояние точное.
func pinned(c entity.Color, x, count int) entity.Region {
	pixels := make([]image.Point, count)
	for i := range pixels {
		pixels[i] = image.Pt(x, 0)
	}
	return entity.Region{Color: c, Pixels: pixels}
}

// ladder строит n областей на расстояниях 1..n; похожая на красный только область match.
func ladder(n, match int) []entity.Region {
	large := make([]entity.Region, n)
	for i := range large {
		large[i] = pinned(blue, i+1, 1)
	}
	large[match] = pinned(entity.Color{R: 0.97, A: 1}, match+1, 1)
	return large
}

func TestMerger_CandidateOrder(t *testing.T) {
	near := entity.Color{R: 0.95, A: 1}
	far := entity.Color{R: 0.97, A: 1}

	tests := []struct {
		name  string
		large []entity.Region
		want  entity.Color
	}{
		{
			name:  "closer region wins over bigger one",
			large: []entity.Region{pinned(far, 5, 100), pinned(near, 2, 1)},
			want:  near,
		},
		{
			name:  "equal distance prefers bigger region",
			large: []entity.Region{pinned(near, 3, 5), pinned(far, 3, 10)},
			want:  far,
		},
		{
			name:  "dissimilar closer region is skipped",
			large: []entity.Region{pinned(blue, 1, 50), pinned(near, 2, 1)},
			want:  near,
		},
		{
			name:  "match at index 3 of 20 is accepted",
			large: ladder(20, 3),
			want:  entity.Color{R: 0.97, A: 1},
		},
		{
			name:  "match at index 4 of 20 is past the cutoff",
			large: ladder(20, 4),
			want:  red,
		},
		{
			name:  "no similar region keeps own color",
			large: []entity.Region{pinned(blue, 1, 10)},
			want:  red,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			small := entity.Region{Color: red, Pixels: []image.Point{{0, 0}}}
			got := NewMerger(1).nearestLargeColor(&small, tt.large, 0.1)
			require.Equal(t, tt.want, got)
		})
	}
}
