package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// TemplateService запускает генерацию шаблонов для пользователей.
// У каждого пользователя свой супервизор и своя последняя фотография,
// а конвейер все супервизоры занимают по очереди через общий gate.
type TemplateService struct {
	users    *UserService
	gen      port.TemplateGenerator
	codec    port.ImageCodec
	defaults entity.GenerationOptions
	gate     *semaphore.Weighted

	mu          sync.RWMutex
	originals   map[int64]*entity.PixelBuffer
	supervisors map[int64]*Supervisor
}

// NewTemplateService создаёт сервис генерации шаблонов.
func NewTemplateService(users *UserService, gen port.TemplateGenerator, codec port.ImageCodec, defaults entity.GenerationOptions) *TemplateService {
	return &TemplateService{
		users:       users,
		gen:         gen,
		codec:       codec,
		defaults:    defaults,
		gate:        NewGate(),
		originals:   make(map[int64]*entity.PixelBuffer),
		supervisors: make(map[int64]*Supervisor),
	}
}

// AcceptPhoto декодирует фото, запоминает его и запускает генерацию.
func (s *TemplateService) AcceptPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*Run, error) {
	src, err := s.codec.Decode(photo)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.originals[userID] = src
	s.mu.Unlock()

	return s.start(ctx, userID, chatID, src)
}

// Regenerate повторяет генерацию по последней фотографии с текущими настройками.
func (s *TemplateService) Regenerate(ctx context.Context, userID, chatID int64) (*Run, error) {
	s.mu.RLock()
	src, ok := s.originals[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, entity.ErrNoSource
	}
	return s.start(ctx, userID, chatID, src)
}

func (s *TemplateService) start(ctx context.Context, userID, chatID int64, src *entity.PixelBuffer) (*Run, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	run, err := s.supervisor(userID).Submit(ctx, src, user.Apply(s.defaults))
	if err != nil {
		return nil, fmt.Errorf("submit run: %w", err)
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		run.Cancel()
		return nil, err
	}
	return run, nil
}

// Cancel отменяет текущий запуск пользователя и возвращает его в главное меню.
// Второе значение сообщает, шла ли генерация.
func (s *TemplateService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, bool, error) {
	s.mu.RLock()
	sup, ok := s.supervisors[userID]
	s.mu.RUnlock()

	cancelled := ok && sup.Cancel()
	user, err := s.users.Cancel(ctx, userID, chatID)
	return user, cancelled, err
}

// Finish возвращает пользователя в главное меню после завершения run.
// Если run уже вытеснен новым запуском, состояние не меняется.
func (s *TemplateService) Finish(ctx context.Context, userID, chatID int64, run *Run) (*entity.User, error) {
	if active := s.supervisor(userID).Active(); active != nil && active != run {
		return s.users.Get(ctx, userID, chatID)
	}
	return s.users.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Encode кодирует изображение этапа в PNG.
func (s *TemplateService) Encode(buf *entity.PixelBuffer) ([]byte, error) {
	return s.codec.EncodePNG(buf)
}

func (s *TemplateService) supervisor(userID int64) *Supervisor {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.supervisors[userID]
	if !ok {
		sup = NewSupervisor(s.gen, s.gate)
		s.supervisors[userID] = sup
	}
	return sup
}
