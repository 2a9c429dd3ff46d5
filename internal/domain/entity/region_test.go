package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegion_BoundsAndCenter(t *testing.T) {
	r := Region{Pixels: []image.Point{{10, 20}, {17, 20}, {10, 25}}}
	require.Equal(t, image.Rect(10, 20, 18, 26), r.Bounds())
	require.Equal(t, image.Pt(13, 22), r.Center())
}

func TestRegion_Mask(t *testing.T) {
	r := Region{Pixels: []image.Point{{1, 1}, {2, 2}}}
	m := r.Mask()
	require.True(t, m.Contains(image.Pt(1, 1)))
	require.True(t, m.Contains(image.Pt(2, 2)))
	require.False(t, m.Contains(image.Pt(2, 1)))
	require.False(t, m.Contains(image.Pt(5, 5)))
}

func TestRegion_EmptySeed(t *testing.T) {
	var r Region
	_, err := r.Seed()
	require.ErrorIs(t, err, ErrEmptyRegion)
}

func TestPalette_LookupAndLegend(t *testing.T) {
	p := Palette{{R: 1, A: 1}, {B: 1, A: 1}}

	idx, err := p.Lookup(Color{B: 0.98, A: 1}, 0.05)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	_, err = p.Lookup(Color{G: 1, A: 1}, 0.05)
	require.ErrorIs(t, err, ErrPaletteMiss)

	require.Equal(t, "1 — #ff0000\n2 — #0000ff\n", p.Legend())
}

func TestGenerationOptions_Validate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	o := DefaultOptions()
	o.PaletteSize = 0
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)

	o = DefaultOptions()
	o.DenoisePasses = append(o.DenoisePasses, DenoisePass{MinSizeFraction: 2})
	require.ErrorIs(t, o.Validate(), ErrInvalidOptions)
}
