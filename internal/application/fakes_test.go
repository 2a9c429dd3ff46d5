package app

import (
	"context"
	"testing"
	"time"

	"paint-bot/internal/domain/entity"
)

// blockingGenerator отправляет прогресс и ждёт отмены.
type blockingGenerator struct {
	calls chan entity.GenerationOptions
}

func newBlockingGenerator() *blockingGenerator {
	return &blockingGenerator{calls: make(chan entity.GenerationOptions, 16)}
}

func (g *blockingGenerator) Generate(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error {
	g.calls <- opts

	select {
	case events <- entity.Event{Progress: &entity.Progress{Label: "Resize"}}:
	default:
	}
	<-ctx.Done()
	return ctx.Err()
}

// next возвращает параметры очередного вызова Generate.
func (g *blockingGenerator) next(t *testing.T) entity.GenerationOptions {
	t.Helper()
	select {
	case opts := <-g.calls:
		return opts
	case <-time.After(time.Second):
		t.Fatal("generator was not called")
	}
	return entity.GenerationOptions{}
}

// none проверяет, что Generate не вызывался.
func (g *blockingGenerator) none(t *testing.T) {
	t.Helper()
	select {
	case <-g.calls:
		t.Fatal("generator started while another run holds the pipeline")
	case <-time.After(100 * time.Millisecond):
	}
}

// stubbornGenerator не реагирует на отмену, пока не закрыт release.
type stubbornGenerator struct {
	calls   chan struct{}
	release chan struct{}
}

func newStubbornGenerator() *stubbornGenerator {
	return &stubbornGenerator{calls: make(chan struct{}, 16), release: make(chan struct{})}
}

func (g *stubbornGenerator) Generate(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error {
	g.calls <- struct{}{}
	<-g.release
	return ctx.Err()
}

// stagesGenerator сразу отдаёт все четыре этапа.
type stagesGenerator struct{}

func (stagesGenerator) Generate(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error {
	for _, stage := range []entity.Stage{entity.StageQuantized, entity.StageLineArt, entity.StageDraft, entity.StageFinal} {
		out := entity.StageOutput{Stage: stage, Image: src}
		select {
		case events <- entity.Event{Output: &out}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// fakeCodec декодирует любые непустые байты в буфер 2×2.
type fakeCodec struct{}

func (fakeCodec) Decode(data []byte) (*entity.PixelBuffer, error) {
	if len(data) == 0 {
		return nil, entity.ErrNoSource
	}
	return entity.NewFilledBuffer(2, 2, entity.White), nil
}

func (fakeCodec) EncodePNG(buf *entity.PixelBuffer) ([]byte, error) {
	return []byte("png"), nil
}

func source() *entity.PixelBuffer {
	return entity.NewFilledBuffer(2, 2, entity.White)
}
