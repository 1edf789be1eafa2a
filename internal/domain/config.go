package domain

const (
	DefaultPushEndpoint    = "wss://push.services.mozilla.com/"
	DefaultDeadlineSeconds = 25
)

// NotifyMode selects the fallback body text: diagnostic builds show internal
// failure descriptions, production shows the generic no-new-tabs text.
type NotifyMode string

const (
	ModeProduction NotifyMode = "production"
	ModeDiagnostic NotifyMode = "diagnostic"
)

type Config struct {
	Main struct {
		TelegramToken  string `yaml:"telegram_token,omitempty"`
		TelegramChatID int64  `yaml:"telegram_chat_id,omitempty"`
		ListenPort     int    `yaml:"listen_port"`
	} `yaml:"main"`
	Push struct {
		Endpoint  string `yaml:"endpoint"`
		UAID      string `yaml:"uaid,omitempty"`
		ChannelID string `yaml:"channel_id,omitempty"`
	} `yaml:"push"`
	Notify struct {
		Mode            NotifyMode `yaml:"mode"`
		DeadlineSeconds int        `yaml:"deadline_seconds"`
	} `yaml:"notify"`
	Profile struct {
		Path string `yaml:"path"`
	} `yaml:"profile"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}
