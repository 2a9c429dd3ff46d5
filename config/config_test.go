package config

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, entity.DefaultOptions(), cfg.Options)
	require.False(t, cfg.UseOpenCV)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PBN_PALETTE_SIZE", "24")
	t.Setenv("PBN_MEDIAN_WINDOW", "3")
	t.Setenv("PBN_TARGET_RESOLUTION", "800")
	t.Setenv("PBN_DENOISE_PASSES", "0.001:0.2")
	t.Setenv("PBN_STAMP_SPACING", "-2")
	t.Setenv("PBN_STAMP_TOLERANCE", "0.1")
	t.Setenv("PBN_SEED", "42")
	t.Setenv("PBN_USE_OPENCV", "true")
	t.Setenv("PBN_GLYPH_FONT", "/fonts/digits.ttf")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24, cfg.Options.PaletteSize)
	require.Equal(t, 3, cfg.Options.MedianWindow)
	require.Equal(t, image.Pt(800, 800), cfg.Options.TargetResolution)
	require.Equal(t, []entity.DenoisePass{{MinSizeFraction: 0.001, Tolerance: 0.2}}, cfg.Options.DenoisePasses)
	require.Equal(t, -2, cfg.Options.StampSpacing)
	require.Equal(t, float32(0.1), cfg.Options.StampTolerance)
	require.Equal(t, uint64(42), cfg.Options.Seed)
	require.True(t, cfg.UseOpenCV)
	require.Equal(t, "/fonts/digits.ttf", cfg.GlyphFont)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PBN_PALETTE_SIZE", "many")
	_, err := Load()
	require.ErrorContains(t, err, "PBN_PALETTE_SIZE")

	t.Setenv("PBN_PALETTE_SIZE", "0")
	_, err = Load()
	require.ErrorIs(t, err, entity.ErrInvalidOptions)
}

func TestParseDenoisePasses(t *testing.T) {
	passes, err := ParseDenoisePasses("0.0000165:0.1, 0.00001:0.6")
	require.NoError(t, err)
	require.Equal(t, entity.DefaultOptions().DenoisePasses, passes)

	passes, err = ParseDenoisePasses("")
	require.NoError(t, err)
	require.Empty(t, passes)

	_, err = ParseDenoisePasses("0.1")
	require.ErrorIs(t, err, entity.ErrInvalidOptions)

	_, err = ParseDenoisePasses("x:0.1")
	require.Error(t, err)
}
