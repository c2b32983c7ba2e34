package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"homestay/internal/config"
	"homestay/internal/domain"
	"homestay/internal/events"
	"homestay/internal/models"
	"homestay/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// maxPreview bounds the message body forwarded to chats.
const maxPreview = 1000

// NewBot connects to the Bot API. Returns nil without error when no token
// is configured.
func NewBot(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	if cfg.BotToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug
	return bot, nil
}

// TelegramNotifier forwards contact messages to the configured chats.
type TelegramNotifier struct {
	sender  domain.TelegramSender
	chatIDs []int64
	logger  *zerolog.Logger
}

func NewTelegramNotifier(sender domain.TelegramSender, chatIDs []int64, logger *zerolog.Logger) *TelegramNotifier {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &TelegramNotifier{sender: sender, chatIDs: chatIDs, logger: logger}
}

// Deliver is a worker.Handler for message_received jobs. Each job carries
// one chat id as its target.
func (n *TelegramNotifier) Deliver(_ context.Context, job worker.Job) error {
	if job.Kind != models.EventMessageReceived {
		return fmt.Errorf("unsupported job kind %q", job.Kind)
	}

	chatID, err := strconv.ParseInt(job.Target, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat target %q: %w", job.Target, err)
	}

	var payload events.MessagePayload
	if err := (&events.Event{Payload: job.Payload}).Decode(&payload); err != nil {
		return fmt.Errorf("decode message payload: %w", err)
	}

	if _, err := n.sender.Send(tgbotapi.NewMessage(chatID, FormatMessage(payload))); err != nil {
		n.logger.Warn().Err(err).Int64("chat_id", chatID).Int("attempt", job.Attempt+1).Msg("telegram send failed")
		return fmt.Errorf("chat %d: %w", chatID, err)
	}
	return nil
}

func FormatMessage(p events.MessagePayload) string {
	body := p.Message
	if r := []rune(body); len(r) > maxPreview {
		body = string(r[:maxPreview]) + "…"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New contact message #%d\n", p.MessageID)
	fmt.Fprintf(&b, "From: %s <%s>\n", p.Name, p.Email)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "At: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}

type enqueuer interface {
	Enqueue(ctx context.Context, kind, target string, payload []byte) error
}

// Subscribe routes message_received events into the worker queue as one
// job per configured chat.
func (n *TelegramNotifier) Subscribe(ctx context.Context, bus *events.EventBus, q enqueuer) {
	bus.Subscribe(models.EventMessageReceived, func(e *events.Event) error {
		var errs []error
		for _, chatID := range n.chatIDs {
			if err := q.Enqueue(ctx, e.Type, strconv.FormatInt(chatID, 10), e.Payload); err != nil {
				errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
			}
		}
		return errors.Join(errs...)
	})
}
