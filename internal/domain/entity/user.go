package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фотографии
	StateProcessing    UserState = "processing"     // Идёт генерация шаблона
)

// UserSettings хранит настройки генерации, которые пользователь меняет командами
type UserSettings struct {
	PaletteSize  int // Число цветов (0 — по умолчанию)
	MedianWindow int // Окно медианного фильтра (0 — по умолчанию)
}

// User представляет пользователя бота
type User struct {
	ID       int64        // Telegram User ID
	ChatID   int64        // Telegram Chat ID
	State    UserState    // Текущее состояние пользователя
	Settings UserSettings // Личные настройки генерации
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Apply накладывает личные настройки на параметры генерации
func (u *User) Apply(opts GenerationOptions) GenerationOptions {
	if u.Settings.PaletteSize > 0 {
		opts.PaletteSize = u.Settings.PaletteSize
	}
	if u.Settings.MedianWindow > 0 {
		opts.MedianWindow = u.Settings.MedianWindow
	}
	return opts
}
