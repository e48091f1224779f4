package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// Notifier pushes run updates to the operator's Telegram chat. It only
// sends; the pipeline never waits on the operator.
type Notifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

func NewNotifier(token, chatIDStr string) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}

	return &Notifier{Bot: bot, ChatID: chatID}, nil
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	msgText := fmt.Sprintf("*[%s]*\n\n%s", escapeMarkdown(title), escapeMarkdown(body))
	msg := tgbotapi.NewMessage(n.ChatID, msgText)
	msg.ParseMode = "Markdown"

	_, err := n.Bot.Send(msg)
	return err
}

// escapeMarkdown keeps reply text from breaking Telegram's Markdown
// parser.
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
