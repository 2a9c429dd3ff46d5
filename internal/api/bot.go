package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "paint-bot/internal/application"
	"paint-bot/internal/container"
	"paint-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я превращаю фотографии в раскраски по номерам.

📸 Отправьте мне фото, и я пришлю цветную версию, контуры, черновик и готовый шаблон с номерами.

📋 Команды:
/generate — создать раскраску
/help — справка
/cancel — отменить текущую генерацию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (можно файлом, так качество лучше)
2️⃣ Бот уменьшит число цветов и разобьёт картинку на области
3️⃣ Вы получите четыре изображения и легенду палитры

💡 Рекомендации:
• Крупные объекты дают более удобные области
• Больше цветов — больше деталей и мелких областей

📋 Команды:
/generate — создать раскраску
/colors N — число цветов (от 2 до 64)
/filter N — сила сглаживания, нечётное число от 1 до 25
/again — повторить последнее фото с новыми настройками
/cancel — отменить генерацию`

	msgAwaitingPhoto   = "📸 Отправьте фото для раскраски."
	msgCancelled       = "❌ Генерация отменена. Отправьте /generate для новой раскраски."
	msgNothingToCancel = "ℹ️ Сейчас ничего не генерируется."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото для раскраски."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgDone            = "✅ Готово! Раскраска — последнее изображение."
	msgNoPhoto         = "📸 Сначала отправьте фото."
	msgBadColors       = "⚠️ Укажите число цветов от 2 до 64, например: /colors 12"
	msgBadFilter       = "⚠️ Укажите нечётное число от 1 до 25, например: /filter 5"
	msgColorsSet       = "🎨 Число цветов: %d. Отправьте фото или /again."
	msgFilterSet       = "🧹 Окно сглаживания: %d. Отправьте фото или /again."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgPaletteLegend   = "🎨 Палитра:\n"
)

// progressInterval ограничивает частоту правок сообщения о прогрессе.
const progressInterval = 2 * time.Second

var stageCaptions = map[entity.Stage]string{
	entity.StageQuantized: "🎨 Цвета",
	entity.StageLineArt:   "✏️ Контуры",
	entity.StageDraft:     "🖼 Черновик",
	entity.StageFinal:     "🔢 Раскраска",
}

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	users     *app.UserService
	templates *app.TemplateService
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		users:     c.UserService,
		templates: c.TemplateService,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if fileID, ok := imageFileID(msg); ok {
		b.handlePhoto(ctx, msg, user, fileID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, _, err := b.templates.Cancel(ctx, user.ID, chatID); err != nil {
			log.Printf("Error resetting user: %v", err)
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "generate":
		if _, err := b.users.BeginGenerate(ctx, user.ID, chatID); err != nil {
			log.Printf("Error updating user: %v", err)
		}
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		_, cancelled, err := b.templates.Cancel(ctx, user.ID, chatID)
		if err != nil {
			log.Printf("Error cancelling run: %v", err)
		}
		if cancelled {
			b.sendMessage(chatID, msgCancelled)
		} else {
			b.sendMessage(chatID, msgNothingToCancel)
		}

	case "colors":
		n, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
		if err == nil {
			_, err = b.users.SetPaletteSize(ctx, user.ID, chatID, n)
		}
		if err != nil {
			b.sendMessage(chatID, msgBadColors)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf(msgColorsSet, n))

	case "filter":
		n, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
		if err == nil {
			_, err = b.users.SetMedianWindow(ctx, user.ID, chatID, n)
		}
		if err != nil {
			b.sendMessage(chatID, msgBadFilter)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf(msgFilterSet, n))

	case "again":
		run, err := b.templates.Regenerate(ctx, user.ID, chatID)
		if errors.Is(err, entity.ErrNoSource) {
			b.sendMessage(chatID, msgNoPhoto)
			return
		}
		if err != nil {
			log.Printf("Error starting run: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.follow(ctx, user.ID, chatID, run)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto скачивает фото и запускает генерацию
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	log.Printf("Received image: %d bytes", len(imageData))

	run, err := b.templates.AcceptPhoto(ctx, user.ID, msg.Chat.ID, imageData)
	if err != nil {
		log.Printf("Error starting run: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		if _, err := b.users.Cancel(ctx, user.ID, msg.Chat.ID); err != nil {
			log.Printf("Error updating user: %v", err)
		}
		return
	}
	b.follow(ctx, user.ID, msg.Chat.ID, run)
}

// follow отправляет сообщение о прогрессе и доставляет результаты запуска в фоне
func (b *Bot) follow(ctx context.Context, userID, chatID int64, run *app.Run) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, msgProcessing))
	if err != nil {
		log.Printf("Error sending message: %v", err)
	}
	go b.deliver(ctx, userID, chatID, sent.MessageID, run)
}

// deliver читает события запуска: правит сообщение о прогрессе и отправляет
// изображения этапов. Результаты отменённого запуска отбрасываются.
func (b *Bot) deliver(ctx context.Context, userID, chatID int64, progressID int, run *app.Run) {
	var lastEdit time.Time
	for ev := range run.Events {
		if run.Cancelled() {
			continue
		}
		switch {
		case ev.Progress != nil:
			if progressID == 0 || time.Since(lastEdit) < progressInterval {
				continue
			}
			lastEdit = time.Now()
			b.editMessage(chatID, progressID, fmt.Sprintf("⏳ %s (%d%%)", ev.Progress.Label, int(ev.Progress.Fraction*100)))
		case ev.Output != nil:
			b.sendStage(chatID, ev.Output)
		}
	}

	err := run.Wait()
	switch {
	case run.Cancelled() || errors.Is(err, context.Canceled):
		// Отмена не ошибка: пользователь уже получил ответ на /cancel.
	case err != nil:
		b.sendMessage(chatID, msgProcessingError)
	case progressID != 0:
		b.editMessage(chatID, progressID, msgDone)
	}

	if _, err := b.templates.Finish(ctx, userID, chatID, run); err != nil {
		log.Printf("Error updating user: %v", err)
	}
}

// sendStage отправляет изображение этапа; итоговый шаблон уходит ещё и файлом без сжатия
func (b *Bot) sendStage(chatID int64, out *entity.StageOutput) {
	data, err := b.templates.Encode(out.Image)
	if err != nil {
		log.Printf("Error encoding %s: %v", out.Stage, err)
		return
	}
	file := tgbotapi.FileBytes{Name: out.Stage.String() + ".png", Bytes: data}

	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = stageCaptions[out.Stage]
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}

	switch out.Stage {
	case entity.StageQuantized:
		b.sendMessage(chatID, msgPaletteLegend+out.Palette.Legend())
	case entity.StageFinal:
		if _, err := b.api.Send(tgbotapi.NewDocument(chatID, file)); err != nil {
			log.Printf("Error sending document: %v", err)
		}
	}
}

// imageFileID возвращает файл самого большого размера фото или картинки, присланной файлом
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// editMessage заменяет текст ранее отправленного сообщения
func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing message: %v", err)
	}
}
