// Package bot runs the fleet admin Telegram bot. Only the configured admin
// chat is served.
package bot

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/service"
)

const (
	btnStats         = "📊 Statistics"
	btnDrivers       = "👥 Drivers"
	btnCars          = "🚗 Cars"
	btnManufacturers = "🏭 Manufacturers"

	// listLimit caps the rows sent per reply; the total is always shown.
	listLimit    = 20
	queryTimeout = 5 * time.Second
)

type Bot struct {
	Bot      *tele.Bot
	services service.IServiceManager
	log      logger.ILogger
}

// NewTelegram connects the long polling client. It is shared with the
// admin notifier, so it exists before the services do.
func NewTelegram(token string, log logger.ILogger) (*tele.Bot, error) {
	return tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.Error("admin bot handler failed", logger.Error(err))
		},
	})
}

func New(b *tele.Bot, adminID int64, services service.IServiceManager, log logger.ILogger) *Bot {
	bot := &Bot{
		Bot:      b,
		services: services,
		log:      log,
	}
	b.Use(middleware.Whitelist(adminID))
	bot.registerHandlers()
	return bot
}

// Start polls Telegram until Stop is called.
func (b *Bot) Start() {
	b.log.Info("🤖 admin bot started")
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle("/stats", b.handleStats)
	b.Bot.Handle(btnStats, b.handleStats)
	b.Bot.Handle("/drivers", b.handleDrivers)
	b.Bot.Handle(btnDrivers, b.handleDrivers)
	b.Bot.Handle("/cars", b.handleCars)
	b.Bot.Handle(btnCars, b.handleCars)
	b.Bot.Handle("/manufacturers", b.handleManufacturers)
	b.Bot.Handle(btnManufacturers, b.handleManufacturers)
}

func (b *Bot) handleStart(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnStats)),
		menu.Row(menu.Text(btnDrivers), menu.Text(btnCars)),
		menu.Row(menu.Text(btnManufacturers)),
	)
	return c.Send(welcomeText, menu, tele.ModeHTML)
}

func (b *Bot) handleStats(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	stats, err := b.services.Stats(ctx)
	if err != nil {
		return b.fail(c, err)
	}
	return c.Send(StatsText(stats), tele.ModeHTML)
}

// handleDrivers answers "/drivers <username part>" and the menu button.
func (b *Bot) handleDrivers(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	list, err := b.services.Driver().List(ctx, listRequest(c))
	if err != nil {
		return b.fail(c, err)
	}
	return c.Send(DriversText(list), tele.ModeHTML)
}

func (b *Bot) handleCars(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	list, err := b.services.Car().List(ctx, listRequest(c))
	if err != nil {
		return b.fail(c, err)
	}
	return c.Send(CarsText(list), tele.ModeHTML)
}

func (b *Bot) handleManufacturers(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	list, err := b.services.Manufacturer().List(ctx, listRequest(c))
	if err != nil {
		return b.fail(c, err)
	}
	return c.Send(ManufacturersText(list), tele.ModeHTML)
}

func (b *Bot) fail(c tele.Context, err error) error {
	b.log.Error("admin bot query failed", logger.Error(err), logger.String("text", c.Text()))
	return c.Send(errorText)
}

// listRequest takes the search term from the command payload. Menu buttons
// carry no payload and list everything.
func listRequest(c tele.Context) models.ListRequest {
	var q string
	if msg := c.Message(); msg != nil {
		q = msg.Payload
	}
	return models.ListRequest{Search: q, Page: 1, Limit: listLimit}
}
