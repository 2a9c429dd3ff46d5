package container

import (
	"log"

	"paint-bot/config"
	app "paint-bot/internal/application"
	"paint-bot/internal/domain/entity"
	"paint-bot/internal/domain/port"
	"paint-bot/internal/infrastructure/glyphs"
	"paint-bot/internal/infrastructure/vision"
)

type Container struct {
	UserService     *app.UserService
	TemplateService *app.TemplateService
}

func New(userRepo port.UserRepository, generator port.TemplateGenerator, codec port.ImageCodec, defaults entity.GenerationOptions) *Container {
	userService := app.NewUserService(userRepo)
	templateService := app.NewTemplateService(userService, generator, codec, defaults)

	return &Container{
		UserService:     userService,
		TemplateService: templateService,
	}
}

// NewGenerator собирает конвейер по конфигурации: препроцессор OpenCV,
// если он включён и доступен, и цифры из шрифта.
func NewGenerator(cfg *config.Config) (*vision.Generator, error) {
	var pre port.Preprocessor = vision.NewPreprocessor(cfg.Options.Workers)
	if cfg.UseOpenCV {
		cv, err := vision.NewGoCVPreprocessor(cfg.Options.Workers)
		if err != nil {
			log.Printf("OpenCV preprocessor unavailable, using pure Go: %v", err)
		} else {
			pre = cv
		}
	}

	digits, err := loadGlyphs(cfg.GlyphFont)
	if err != nil {
		return nil, err
	}
	return vision.NewGenerator(pre, digits), nil
}

func loadGlyphs(path string) (*glyphs.GlyphSet, error) {
	if path == "" {
		return glyphs.Default()
	}
	return glyphs.Load(path, glyphs.DefaultSize)
}
