package app

import (
	"context"
	"fmt"

	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
)

// Границы настроек, которые пользователь меняет командами.
const (
	MinPaletteSize  = 2
	MaxPaletteSize  = 64
	MaxMedianWindow = 25
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState меняет состояние внутри хранилища и возвращает свежую копию пользователя.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	// Get создаёт пользователя, если его ещё нет
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) BeginGenerate(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SetPaletteSize меняет число цветов палитры для следующих запусков.
func (s *UserService) SetPaletteSize(ctx context.Context, userID, chatID int64, size int) (*entity.User, error) {
	if size < MinPaletteSize || size > MaxPaletteSize {
		return nil, fmt.Errorf("%w: palette size must be in [%d, %d]", entity.ErrInvalidOptions, MinPaletteSize, MaxPaletteSize)
	}
	return s.updateSettings(ctx, userID, chatID, func(st *entity.UserSettings) {
		st.PaletteSize = size
	})
}

// SetMedianWindow меняет окно медианного фильтра; окно должно быть нечётным.
func (s *UserService) SetMedianWindow(ctx context.Context, userID, chatID int64, window int) (*entity.User, error) {
	if window < 1 || window > MaxMedianWindow || window%2 == 0 {
		return nil, fmt.Errorf("%w: median window must be odd and in [1, %d]", entity.ErrInvalidOptions, MaxMedianWindow)
	}
	return s.updateSettings(ctx, userID, chatID, func(st *entity.UserSettings) {
		st.MedianWindow = window
	})
}

func (s *UserService) updateSettings(ctx context.Context, userID, chatID int64, apply func(*entity.UserSettings)) (*entity.User, error) {
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSettings(ctx, userID, apply); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, chatID)
}
