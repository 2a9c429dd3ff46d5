package config

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"paint-bot/internal/domain/entity"
)

type Config struct {
	TelegramToken string
	Options       entity.GenerationOptions
	UseOpenCV     bool
	GlyphFont     string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Options:       entity.DefaultOptions(),
		GlyphFont:     os.Getenv("PBN_GLYPH_FONT"),
	}

	opts := &cfg.Options
	var resolution int
	var err error
	if opts.PaletteSize, err = envInt("PBN_PALETTE_SIZE", opts.PaletteSize); err != nil {
		return nil, err
	}
	if opts.MedianWindow, err = envInt("PBN_MEDIAN_WINDOW", opts.MedianWindow); err != nil {
		return nil, err
	}
	if opts.GaussianWindow, err = envInt("PBN_GAUSSIAN_WINDOW", opts.GaussianWindow); err != nil {
		return nil, err
	}
	if resolution, err = envInt("PBN_TARGET_RESOLUTION", opts.TargetResolution.X); err != nil {
		return nil, err
	}
	opts.TargetResolution = image.Pt(resolution, resolution)
	if opts.OutlineThickness, err = envInt("PBN_OUTLINE_THICKNESS", opts.OutlineThickness); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("PBN_DENOISE_PASSES"); ok {
		if opts.DenoisePasses, err = ParseDenoisePasses(v); err != nil {
			return nil, err
		}
	}
	if opts.StampSize, err = envInt("PBN_STAMP_SIZE", opts.StampSize); err != nil {
		return nil, err
	}
	if opts.StampSpacing, err = envInt("PBN_STAMP_SPACING", opts.StampSpacing); err != nil {
		return nil, err
	}
	if opts.StampMinSizeFraction, err = envFloat("PBN_STAMP_MIN_SIZE", opts.StampMinSizeFraction); err != nil {
		return nil, err
	}
	tolerance, err := envFloat("PBN_STAMP_TOLERANCE", float64(opts.StampTolerance))
	if err != nil {
		return nil, err
	}
	opts.StampTolerance = float32(tolerance)
	seed, err := envInt("PBN_SEED", 0)
	if err != nil {
		return nil, err
	}
	opts.Seed = uint64(seed)
	if opts.Workers, err = envInt("PBN_WORKERS", opts.Workers); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("PBN_USE_OPENCV"); ok {
		if cfg.UseOpenCV, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("PBN_USE_OPENCV: %w", err)
		}
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseDenoisePasses разбирает список вида "0.0000165:0.1,0.00001:0.6".
func ParseDenoisePasses(s string) ([]entity.DenoisePass, error) {
	var passes []entity.DenoisePass
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fraction, tolerance, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("%w: denoise pass %q, want fraction:tolerance", entity.ErrInvalidOptions, item)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(fraction), 64)
		if err != nil {
			return nil, fmt.Errorf("denoise pass %q: %w", item, err)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(tolerance), 32)
		if err != nil {
			return nil, fmt.Errorf("denoise pass %q: %w", item, err)
		}
		passes = append(passes, entity.DenoisePass{MinSizeFraction: f, Tolerance: float32(t)})
	}
	return passes, nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
