package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/imasse-dev/browser-ios/internal/domain"
)

func InitTelegram(config *domain.Config) (*telebot.Bot, error) {
	if config.Main.TelegramToken == "" || config.Main.TelegramChatID == 0 {
		return nil, fmt.Errorf("telegram_token and telegram_chat_id must be set in config.yaml")
	}
	b, err := telebot.NewBot(telebot.Settings{
		Token:  config.Main.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Sink presents notifications as Telegram messages.
type Sink struct {
	bot    *telebot.Bot
	chatID int64
}

func NewSink(bot *telebot.Bot, chatID int64) *Sink {
	return &Sink{bot: bot, chatID: chatID}
}

func (s *Sink) Deliver(ctx context.Context, content *domain.NotificationContent) error {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 *%s*\n%s", content.Title, content.Body)
	for _, att := range content.Attachments {
		fmt.Fprintf(&b, "\n[%s](%s)", att.Title, att.URL)
		if att.DeviceName != nil {
			fmt.Fprintf(&b, "\nfrom %s", *att.DeviceName)
		}
	}
	_, err := s.bot.Send(&telebot.Chat{ID: s.chatID}, b.String(), telebot.ModeMarkdown)
	return err
}
