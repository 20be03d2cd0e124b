package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyDownload            = "download"
	KeyPaste               = "paste"
	KeyEnterURL            = "enter_url"
	KeyVideo               = "video"
	KeyAudio               = "audio"
	KeyQuality             = "quality"
	KeySettings            = "settings"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeyHistory             = "history"
	KeyNoHistory           = "no_history"
	KeyClearHistory        = "clear_history"
	KeyConfirmClearHistory = "confirm_clear_history"
	KeySaveFile            = "save_file"
	KeyAccent              = "accent"
	KeyNotifications       = "notifications"
	KeyConnected           = "connected"
	KeyConnecting          = "connecting"
	KeyOffline             = "offline"
	KeyStatusQueued        = "status_queued"
	KeyStatusDownloading   = "status_downloading"
	KeyStatusComplete      = "status_complete"
	KeyStatusFailed        = "status_failed"
	KeyClose               = "close"
	KeyNothingToSave       = "nothing_to_save"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "VidGrab",
		KeyDownload:            "Download",
		KeyPaste:               "Paste",
		KeyEnterURL:            "Paste a video link (https://...)",
		KeyVideo:               "Video",
		KeyAudio:               "Audio",
		KeyQuality:             "Quality",
		KeySettings:            "Settings",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeyHistory:             "Recent Downloads",
		KeyNoHistory:           "No downloads yet",
		KeyClearHistory:        "Clear History",
		KeyConfirmClearHistory: "Are you sure you want to clear your download history?",
		KeySaveFile:            "Save File",
		KeyAccent:              "Theme Accent",
		KeyNotifications:       "Notifications",
		KeyConnected:           "System Operational",
		KeyConnecting:          "Connecting...",
		KeyOffline:             "Backend Offline",
		KeyStatusQueued:        "Queued...",
		KeyStatusDownloading:   "Downloading...",
		KeyStatusComplete:      "Complete",
		KeyStatusFailed:        "Failed",
		KeyClose:               "Close",
		KeyNothingToSave:       "Nothing to save yet",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "VidGrab",
		KeyDownload:            "Скачать",
		KeyPaste:               "Вставить",
		KeyEnterURL:            "Вставьте ссылку на видео (https://...)",
		KeyVideo:               "Видео",
		KeyAudio:               "Аудио",
		KeyQuality:             "Качество",
		KeySettings:            "Настройки",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeyHistory:             "Недавние загрузки",
		KeyNoHistory:           "Загрузок пока нет",
		KeyClearHistory:        "Очистить историю",
		KeyConfirmClearHistory: "Очистить историю загрузок?",
		KeySaveFile:            "Сохранить файл",
		KeyAccent:              "Цвет акцента",
		KeyNotifications:       "Уведомления",
		KeyConnected:           "Система работает",
		KeyConnecting:          "Подключение...",
		KeyOffline:             "Сервер недоступен",
		KeyStatusQueued:        "В очереди...",
		KeyStatusDownloading:   "Загрузка...",
		KeyStatusComplete:      "Готово",
		KeyStatusFailed:        "Ошибка",
		KeyClose:               "Закрыть",
		KeyNothingToSave:       "Пока нечего сохранять",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "VidGrab",
		KeyDownload:            "Baixar",
		KeyPaste:               "Colar",
		KeyEnterURL:            "Cole um link de vídeo (https://...)",
		KeyVideo:               "Vídeo",
		KeyAudio:               "Áudio",
		KeyQuality:             "Qualidade",
		KeySettings:            "Configurações",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeyHistory:             "Downloads Recentes",
		KeyNoHistory:           "Nenhum download ainda",
		KeyClearHistory:        "Limpar Histórico",
		KeyConfirmClearHistory: "Tem certeza de que deseja limpar o histórico de downloads?",
		KeySaveFile:            "Salvar Arquivo",
		KeyAccent:              "Cor de Destaque",
		KeyNotifications:       "Notificações",
		KeyConnected:           "Sistema Operacional",
		KeyConnecting:          "Conectando...",
		KeyOffline:             "Servidor Offline",
		KeyStatusQueued:        "Na fila...",
		KeyStatusDownloading:   "Baixando...",
		KeyStatusComplete:      "Concluído",
		KeyStatusFailed:        "Falhou",
		KeyClose:               "Fechar",
		KeyNothingToSave:       "Nada para salvar ainda",
	}
}
