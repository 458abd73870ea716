package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/admin"
	"github.com/kartabot/kartabot/internal/bot/handlers"
	"github.com/kartabot/kartabot/internal/bot/keyboard"
	"github.com/kartabot/kartabot/internal/catalog"
	errors "github.com/kartabot/kartabot/internal/errors"
	"github.com/kartabot/kartabot/internal/lead"
	"github.com/kartabot/kartabot/internal/state"
	"github.com/kartabot/kartabot/pkg/config"
)

// Bot wraps telebot.Bot with the dependencies of the ordering flow.
type Bot struct {
	telebot    *telebot.Bot
	log        *slog.Logger
	cfg        config.Config
	fsm        state.StateMachine
	catalog    *catalog.Catalog
	registry   *admin.Registry
	router     *Router
	dispatcher *Dispatcher
	keyboard   *keyboard.Builder
	notifier   *lead.Dispatcher
	errHandler *errors.Handler
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	cat *catalog.Catalog,
	fsm state.StateMachine,
	registry *admin.Registry,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: ":" + cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(log)
	dispatcher := NewDispatcher(fsm, log)
	router := NewRouter(dispatcher, log)
	errHandler := errors.NewHandler(log, cfg.Sentry.Enabled)
	notifier := lead.NewDispatcher(NewTelebotSender(tb), registry, log)

	b := &Bot{
		telebot:    tb,
		log:        log,
		cfg:        cfg,
		fsm:        fsm,
		catalog:    cat,
		registry:   registry,
		router:     router,
		dispatcher: dispatcher,
		keyboard:   kb,
		notifier:   notifier,
		errHandler: errHandler,
	}

	b.setupRouter()
	b.registerTelebotHandlers()

	if err := b.setCommands(); err != nil {
		log.Warn("failed to publish bot commands", slog.Any("error", err))
	}

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// Notifier exposes the lead dispatcher for the HTTP surface.
func (b *Bot) Notifier() lead.Notifier {
	return b.notifier
}

func (b *Bot) setupRouter() {
	webAppURL := b.cfg.WebApp.SecureURL()

	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(MetricsMiddleware())

	buyHandler := handlers.NewBuyHandler(b.fsm, b.catalog, b.keyboard, webAppURL, b.log)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(b.registry, b.keyboard, b.log))
	b.router.RegisterCommand(CommandMenu, handlers.NewMenuHandler(b.keyboard))
	b.router.RegisterCommand(CommandBuy, buyHandler)

	b.router.RegisterButton(keyboard.BtnOrderCard, buyHandler)
	b.router.RegisterButton(keyboard.BtnHideMenu, handlers.NewHideMenuHandler(b.keyboard))

	b.router.RegisterNavigation(keyboard.BtnBackToCountries, handlers.NewBackToCountriesHandler(b.fsm, b.catalog, b.keyboard, b.log))
	b.router.RegisterNavigation(keyboard.BtnBackToBanks, handlers.NewBackToBanksHandler(b.fsm, b.catalog, b.keyboard, b.log))
	b.router.RegisterNavigation(keyboard.BtnMainMenu, handlers.NewMainMenuHandler(b.fsm, b.keyboard, b.log))

	b.dispatcher.RegisterStateHandler(state.StateCountry, handlers.NewCountryHandler(b.fsm, b.catalog, b.keyboard, b.log))
	b.dispatcher.RegisterStateHandler(state.StateBank, handlers.NewBankHandler(b.fsm, b.catalog, b.keyboard, webAppURL, b.log))
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnContact, b.router.Wrap(
		handlers.NewContactHandler(b.fsm, b.notifier, b.keyboard, b.log),
	))
	b.telebot.Handle(telebot.OnWebApp, b.router.Wrap(
		handlers.NewWebAppHandler(b.notifier, b.keyboard, b.log),
	))
}

func (b *Bot) setCommands() error {
	return b.telebot.SetCommands([]telebot.Command{
		{Text: "start", Description: "Запустить бота"},
		{Text: "menu", Description: "Открыть меню"},
		{Text: "buy", Description: "Оформить карту"},
	})
}
