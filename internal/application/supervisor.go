package app

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/pborman/uuid"
	"golang.org/x/sync/semaphore"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// Сколько событий может ждать получателя.
const eventBuffer = 8

// Run описывает один запуск генерации шаблона.
type Run struct {
	ID     string
	Seed   uint64
	Events <-chan entity.Event

	parent    context.Context
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}
	err       error
}

// Cancel останавливает запуск. Повторный вызов ничего не делает.
func (r *Run) Cancel() {
	r.cancelled.Store(true)
	r.cancel()
}

// Cancelled сообщает, что запуск отменён или вытеснен; его результаты надо отбросить.
func (r *Run) Cancelled() bool {
	return r.cancelled.Load() || r.parent.Err() != nil
}

// Done закрывается, когда запуск освободил свои буферы.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait ждёт завершения и возвращает ошибку генератора.
func (r *Run) Wait() error {
	<-r.done
	return r.err
}

// NewGate создаёт общий для процесса допуск к конвейеру: одновременно
// буферы держит только один запуск.
func NewGate() *semaphore.Weighted {
	return semaphore.NewWeighted(1)
}

// Supervisor держит не больше одного активного запуска.
// Супервизоры с общим gate выполняют запуски по очереди.
type Supervisor struct {
	gen  port.TemplateGenerator
	gate *semaphore.Weighted

	mu      sync.Mutex
	current *Run
}

// NewSupervisor создаёт супервизор над генератором. Если gate равен nil,
// супервизор получает собственный допуск.
func NewSupervisor(gen port.TemplateGenerator, gate *semaphore.Weighted) *Supervisor {
	if gate == nil {
		gate = NewGate()
	}
	return &Supervisor{gen: gen, gate: gate}
}

// Submit отменяет предыдущий запуск и сразу возвращает новый. Новый запуск
// начинает работу после завершения предыдущего и получения допуска.
// Если opts.Seed равен нулю, зерно выбирается случайно и сохраняется в Run.Seed.
func (s *Supervisor) Submit(ctx context.Context, src *entity.PixelBuffer, opts entity.GenerationOptions) (*Run, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current
	if prev != nil {
		prev.Cancel()
	}

	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}
	events := make(chan entity.Event, eventBuffer)
	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:     uuid.New(),
		Seed:   opts.Seed,
		Events: events,
		parent: ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.current = run

	go func() {
		defer close(run.done)
		defer close(events)
		defer cancel()

		run.err = s.execute(runCtx, run, prev, src, opts, events)
		switch {
		case run.err == nil:
			log.Printf("run %s: finished", run.ID)
		case errors.Is(run.err, context.Canceled):
			log.Printf("run %s: cancelled", run.ID)
		default:
			log.Printf("run %s: failed: %v", run.ID, run.err)
		}
	}()

	return run, nil
}

func (s *Supervisor) execute(ctx context.Context, run, prev *Run, src *entity.PixelBuffer, opts entity.GenerationOptions, events chan<- entity.Event) error {
	// Итерацию k-средних нельзя прервать, поэтому ждём здесь, а не в Submit.
	if prev != nil {
		select {
		case <-prev.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if !s.gate.TryAcquire(1) {
		select {
		case events <- entity.Event{Progress: &entity.Progress{Label: "Waiting in queue"}}:
		default:
		}
		if err := s.gate.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	defer s.gate.Release(1)

	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("run %s: started (seed %d)", run.ID, run.Seed)
	return s.gen.Generate(ctx, src, opts, events)
}

// Cancel отменяет текущий запуск и сообщает, был ли он.
func (s *Supervisor) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Cancelled() {
		return false
	}
	select {
	case <-s.current.done:
		return false
	default:
	}
	s.current.Cancel()
	return true
}

// Active возвращает текущий запуск, если он ещё идёт.
func (s *Supervisor) Active() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	select {
	case <-s.current.done:
		return nil
	default:
		return s.current
	}
}
