package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, user, again)
	require.NotSame(t, user, again)
}

func TestMemoryUserRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	user.SetState(entity.StateProcessing)
	user.Settings.PaletteSize = 8

	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, stored.State)
	require.Zero(t, stored.Settings.PaletteSize)
}

func TestMemoryUserRepository_UpdateState(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateState(ctx, 1, entity.StateProcessing))

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)

	// Неизвестный пользователь игнорируется.
	require.NoError(t, repo.UpdateState(ctx, 99, entity.StateProcessing))
}

func TestMemoryUserRepository_UpdateSettings(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateSettings(ctx, 1, func(s *entity.UserSettings) { s.MedianWindow = 7 }))

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 7, user.Settings.MedianWindow)
}

// Запускать с -race: все изменения идут под блокировкой хранилища.
func TestMemoryUserRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 500 {
				user, err := repo.Get(ctx, 1, 10)
				if err != nil {
					t.Error(err)
					return
				}
				_ = user.State
				if i%2 == 0 {
					err = repo.UpdateState(ctx, 1, entity.StateProcessing)
				} else {
					err = repo.UpdateSettings(ctx, 1, func(s *entity.UserSettings) { s.PaletteSize = j })
				}
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}
