package entity

import (
	"fmt"
	"image"
)

// DenoisePass задаёт один проход удаления мелких областей.
type DenoisePass struct {
	MinSizeFraction float64 // порог «мелкой» области как доля всех пикселей
	Tolerance       float32 // допуск сходства по доминирующему каналу
}

// GenerationOptions задаёт параметры одного запуска конвейера.
type GenerationOptions struct {
	PaletteSize          int
	MedianWindow         int
	GaussianWindow       int
	TargetResolution     image.Point
	OutlineThickness     int
	DenoisePasses        []DenoisePass
	StampSize            int
	StampSpacing         int
	StampMinSizeFraction float64
	StampTolerance       float32
	Seed                 uint64 // 0: случайное зерно на каждый запуск
	Workers              int    // 0: по числу CPU
}

// DefaultOptions возвращает параметры по умолчанию.
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		PaletteSize:      16,
		MedianWindow:     5,
		GaussianWindow:   3,
		TargetResolution: image.Pt(1600, 1600),
		OutlineThickness: 2,
		DenoisePasses: []DenoisePass{
			{MinSizeFraction: 0.0000165, Tolerance: 0.1},
			{MinSizeFraction: 0.00001, Tolerance: 0.6},
		},
		StampSize:            10,
		StampSpacing:         0,
		StampMinSizeFraction: 0.0000165,
		StampTolerance:       0.05,
	}
}

// Validate проверяет параметры до запуска.
func (o GenerationOptions) Validate() error {
	switch {
	case o.PaletteSize < 1:
		return fmt.Errorf("%w: palette size %d", ErrInvalidOptions, o.PaletteSize)
	case o.MedianWindow < 1:
		return fmt.Errorf("%w: median window %d", ErrInvalidOptions, o.MedianWindow)
	case o.GaussianWindow < 1:
		return fmt.Errorf("%w: gaussian window %d", ErrInvalidOptions, o.GaussianWindow)
	case o.TargetResolution.X < 1 || o.TargetResolution.Y < 1:
		return fmt.Errorf("%w: target resolution %v", ErrInvalidOptions, o.TargetResolution)
	case o.OutlineThickness < 0:
		return fmt.Errorf("%w: outline thickness %d", ErrInvalidOptions, o.OutlineThickness)
	case o.StampSize < 1:
		return fmt.Errorf("%w: stamp size %d", ErrInvalidOptions, o.StampSize)
	case o.StampMinSizeFraction < 0 || o.StampMinSizeFraction >= 1:
		return fmt.Errorf("%w: stamp min size %v", ErrInvalidOptions, o.StampMinSizeFraction)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	}
	for i, p := range o.DenoisePasses {
		if p.MinSizeFraction < 0 || p.MinSizeFraction >= 1 || p.Tolerance < 0 {
			return fmt.Errorf("%w: denoise pass %d (%v, %v)", ErrInvalidOptions, i+1, p.MinSizeFraction, p.Tolerance)
		}
	}
	return nil
}
