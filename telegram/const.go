package telegram

const (
	Version = "v1.2.0"

	// DefaultSeparator splits callback data into command segments.
	DefaultSeparator = '~'
	// DefaultLocale is the localization key used when none is configured.
	DefaultLocale = "en"

	ChatPrivate    = "private"
	ChatGroup      = "group"
	ChatSuperGroup = "supergroup"
	ChatChannel    = "channel"

	LogTrace   = "trace"
	LogDebug   = "debug"
	LogInfo    = "info"
	LogWarn    = "warn"
	LogError   = "error"
	LogDisable = "disable"
)
