package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"paint-bot/config"
	"paint-bot/internal/domain/entity"
	"paint-bot/internal/infrastructure/codec"
	"paint-bot/internal/infrastructure/storage"
)

func TestNewGenerator(t *testing.T) {
	cfg := &config.Config{Options: entity.DefaultOptions(), UseOpenCV: true}

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	require.NotNil(t, gen)

	cfg.GlyphFont = "/nonexistent/font.ttf"
	_, err = NewGenerator(cfg)
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	c := New(storage.NewMemoryUserRepository(), nil, codec.New(), entity.DefaultOptions())
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.TemplateService)
}
