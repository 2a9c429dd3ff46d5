package glyphs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/internal/domain/entity"
)

func TestDefault_RendersAllDigits(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	for r := '0'; r <= '9'; r++ {
		tex, ok := set.DigitTexture(r)
		require.True(t, ok, "digit %q", r)
		require.NoError(t, tex.Validate())

		var covered int
		for _, c := range tex.Pix {
			require.Zero(t, c.R)
			require.Zero(t, c.G)
			require.Zero(t, c.B)
			if c.A > 0.5 {
				covered++
			}
		}
		require.Positive(t, covered, "digit %q is blank", r)
	}

	_, ok := set.DigitTexture('x')
	require.False(t, ok)
}

func TestFromTTF_InvalidFont(t *testing.T) {
	_, err := FromTTF([]byte("not a font"), DefaultSize)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/font.ttf", DefaultSize)
	require.Error(t, err)
}

func TestNewGlyphSet(t *testing.T) {
	tex := entity.NewFilledBuffer(1, 1, entity.Black)
	set := NewGlyphSet(map[rune]*entity.PixelBuffer{'7': tex})

	got, ok := set.DigitTexture('7')
	require.True(t, ok)
	require.Same(t, tex, got)
}
