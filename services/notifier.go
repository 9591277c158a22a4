package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"streamdesk-backend/metrics"
	"streamdesk-backend/models"
)

const (
	NotificationExpiry = "expiry"
	NotificationTest   = "test"

	defaultLogCapacity = 100
)

// Sender delivers a prepared Telegram message using the given bot token.
type Sender interface {
	Send(ctx context.Context, token string, msg tgbotapi.MessageConfig) error
}

// LogSender does not contact Telegram. It logs the request that would have been made.
type LogSender struct{}

func (LogSender) Send(_ context.Context, token string, msg tgbotapi.MessageConfig) error {
	chat := msg.ChannelUsername
	if chat == "" {
		chat = strconv.FormatInt(msg.ChatID, 10)
	}
	log.Info().
		Str("url", fmt.Sprintf(tgbotapi.APIEndpoint, redactToken(token), "sendMessage")).
		Str("chat_id", chat).
		Str("parse_mode", msg.ParseMode).
		Str("text", msg.Text).
		Msg("simulated telegram request")
	return nil
}

func redactToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}

// NotificationLog keeps the most recent notification attempts, oldest first.
type NotificationLog struct {
	mu       sync.Mutex
	capacity int
	entries  []models.NotificationEntry
}

func NewNotificationLog(capacity int) *NotificationLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &NotificationLog{capacity: capacity}
}

func (l *NotificationLog) Add(e models.NotificationEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]models.NotificationEntry{}, l.entries[over:]...)
	}
}

func (l *NotificationLog) Entries() []models.NotificationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.NotificationEntry{}, l.entries...)
}

type Notifier struct {
	sender Sender
	log    *NotificationLog
	now    func() time.Time
}

func NewNotifier(sender Sender, history *NotificationLog) *Notifier {
	if sender == nil {
		sender = LogSender{}
	}
	if history == nil {
		history = NewNotificationLog(defaultLogCapacity)
	}
	return &Notifier{sender: sender, log: history, now: time.Now}
}

func (n *Notifier) Log() *NotificationLog { return n.log }

// NotifyAccount formats the expiry alert for acct and hands it to the sender. Both the
// bot token and the chat id must be set; otherwise the attempt is logged as skipped and
// ErrNotificationNotConfigured is returned.
func (n *Notifier) NotifyAccount(ctx context.Context, kind string, settings models.NotificationSettings, acct models.Account, services []models.Service) (models.NotificationEntry, error) {
	entry := models.NewNotificationEntry(acct.ID, kind, n.now().UTC())
	entry.Message = FormatExpiryAlert(acct, services)

	if !settings.Configured() {
		return n.finish(entry, models.NotificationSkipped, ErrNotificationNotConfigured)
	}
	msg, err := newAlertMessage(settings.ChatID, entry.Message)
	if err != nil {
		return n.finish(entry, models.NotificationFailed, err)
	}
	if err := n.sender.Send(ctx, settings.BotToken, msg); err != nil {
		return n.finish(entry, models.NotificationFailed, fmt.Errorf("send telegram message: %w", err))
	}
	return n.finish(entry, models.NotificationSent, nil)
}

func (n *Notifier) finish(entry models.NotificationEntry, status string, err error) (models.NotificationEntry, error) {
	entry.Status = status
	if err != nil {
		entry.ErrorMessage = err.Error()
	}
	n.log.Add(entry)
	metrics.NotificationsTotal.WithLabelValues(status).Inc()

	ev := log.Info()
	if err != nil && !errors.Is(err, ErrNotificationNotConfigured) {
		ev = log.Warn().Err(err)
	}
	ev.Str("account_id", entry.AccountID).Str("status", status).Msg("expiry notification")
	return entry, err
}

// newAlertMessage targets a numeric chat id or an @channel username.
func newAlertMessage(chatID, text string) (tgbotapi.MessageConfig, error) {
	chatID = strings.TrimSpace(chatID)
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else if strings.HasPrefix(chatID, "@") && len(chatID) > 1 {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	} else {
		return msg, &ValidationError{Invalid: []string{"chatId"}}
	}
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg, nil
}

// FormatExpiryAlert renders the Markdown alert for an account: service, email,
// expiration date and the names of its profiles.
func FormatExpiryAlert(acct models.Account, services []models.Service) string {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s) }

	name, ok := serviceNameIndex(services)[acct.ServiceID]
	if !ok {
		name = capitalize(acct.ServiceID)
	}

	var b strings.Builder
	b.WriteString("*Stream alert: account about to expire!*\n\n")
	fmt.Fprintf(&b, "*Service:* %s\n", esc(name))
	fmt.Fprintf(&b, "*Account:* `%s`\n", esc(acct.Email))
	fmt.Fprintf(&b, "*Expiration date:* %s\n\n", acct.ExpirationDate.String())
	b.WriteString("*Linked profiles:*\n")
	if len(acct.Profiles) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, p := range acct.Profiles {
		fmt.Fprintf(&b, "- %s\n", esc(p.Name))
	}
	b.WriteString("\nPlease take action to renew the account.")
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
