// Команда render строит раскраску по локальному файлу без Telegram.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"paint-bot/config"
	"paint-bot/internal/container"
	"paint-bot/internal/domain/entity"
	"paint-bot/internal/infrastructure/codec"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	in := flag.String("in", "", "input image (jpeg, png, gif, bmp, tiff, webp)")
	out := flag.String("out", ".", "output directory")
	colors := flag.Int("colors", cfg.Options.PaletteSize, "palette size")
	filter := flag.Int("filter", cfg.Options.MedianWindow, "median filter window")
	seed := flag.Uint64("seed", cfg.Options.Seed, "random seed; equal seeds give equal output")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := cfg.Options
	opts.PaletteSize = *colors
	opts.MedianWindow = *filter
	opts.Seed = *seed

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	c := codec.New()
	src, err := c.Decode(data)
	if err != nil {
		log.Fatalf("Failed to decode input: %v", err)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	generator, err := container.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events := make(chan entity.Event, 8)
	done := make(chan error, 1)
	go func() {
		done <- generator.Generate(ctx, src, opts, events)
		close(events)
	}()

	var lastStep string
	for ev := range events {
		switch {
		case ev.Progress != nil:
			if step := stepName(ev.Progress.Label); step != lastStep {
				lastStep = step
				log.Printf("%s", ev.Progress.Label)
			}
		case ev.Output != nil:
			path := filepath.Join(*out, ev.Output.Stage.String()+".png")
			png, err := c.EncodePNG(ev.Output.Image)
			if err != nil {
				log.Fatalf("Failed to encode %s: %v", ev.Output.Stage, err)
			}
			if err := os.WriteFile(path, png, 0o644); err != nil {
				log.Fatalf("Failed to write %s: %v", path, err)
			}
			log.Printf("Wrote %s", path)
			if ev.Output.Stage == entity.StageQuantized {
				log.Printf("Palette:\n%s", ev.Output.Palette.Legend())
			}
		}
	}
	if err := <-done; err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}

// stepName отбрасывает счётчик после двоеточия: "Recolor: 3/10" и "Recolor: 4/10" один шаг.
func stepName(label string) string {
	name, _, _ := strings.Cut(label, ":")
	return name
}
