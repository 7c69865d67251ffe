// Package notify tells fleet admins about account changes.
package notify

import (
	"context"
	"fmt"
	"html"

	tele "gopkg.in/telebot.v3"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
)

type INotifier interface {
	DriverCreated(ctx context.Context, d *models.Driver) error
}

// sender is the part of *tele.Bot the notifier needs.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type telegramNotifier struct {
	bot     sender
	adminID int64
	log     logger.ILogger
}

// NewTelegram sends through b, usually the admin bot.
func NewTelegram(b *tele.Bot, adminID int64, log logger.ILogger) INotifier {
	return &telegramNotifier{bot: b, adminID: adminID, log: log}
}

func (n *telegramNotifier) DriverCreated(ctx context.Context, d *models.Driver) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := DriverCreatedMessage(d)
	if _, err := n.bot.Send(tele.ChatID(n.adminID), msg, tele.ModeHTML); err != nil {
		n.log.Error("failed to notify admin", logger.Error(err), logger.Int64("driver_id", d.ID))
		return err
	}
	return nil
}

// DriverCreatedMessage renders the admin message in Telegram HTML.
func DriverCreatedMessage(d *models.Driver) string {
	return fmt.Sprintf("🚖 <b>New driver</b>\n🆔 #%d\n👤 %s (%s)\n🪪 %s",
		d.ID,
		html.EscapeString(d.Account.Username),
		html.EscapeString(d.Account.FullName()),
		html.EscapeString(d.LicenseNumber),
	)
}

type nopNotifier struct{}

// NewNop is used when no admin bot is configured.
func NewNop() INotifier { return nopNotifier{} }

func (nopNotifier) DriverCreated(context.Context, *models.Driver) error { return nil }
