package port

import (
	"context"

	"paint-bot/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей.
// Get возвращает копию; менять пользователя можно только через методы хранилища.
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)
	// UpdateState обновляет состояние пользователя
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
	// UpdateSettings меняет настройки пользователя под блокировкой хранилища
	UpdateSettings(ctx context.Context, userID int64, apply func(*entity.UserSettings)) error
}
