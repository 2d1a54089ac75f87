// Package bot wires the order conversation, the catalog and the moderation
// dispatcher onto the Telegram transport.
package bot

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/catalog"
	"github.com/Speed10x/premiumSMM/internal/config"
	"github.com/Speed10x/premiumSMM/internal/logger"
	"github.com/Speed10x/premiumSMM/internal/moderation"
	"github.com/Speed10x/premiumSMM/internal/order"
	"github.com/Speed10x/premiumSMM/internal/telegram"
	tghelpers "github.com/Speed10x/premiumSMM/internal/telegram/helpers"
	"github.com/Speed10x/premiumSMM/internal/telegram/router"
)

// App owns the bot's domain services for one run.
type App struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	engine *order.Engine

	// reviews is constructed on start, once the transport exists.
	reviews *moderation.Dispatcher
}

// New builds the application around a loaded config and catalog.
func New(cfg *config.Config, cat *catalog.Catalog) *App {
	return &App{
		cfg:    cfg,
		cat:    cat,
		engine: order.NewEngine(cat),
	}
}

// Run wires registries, middleware and routes, then serves updates until the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	reg := telegram.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.ConversationRoutes(a, reg, router.ConversationOptions{
		UnknownMedia: func(c tele.Context) error {
			return tghelpers.SendText(c, textNothingToDo)
		},
	})...)

	middlewares := telegram.DefaultMiddlewares(a.cfg, func(c tele.Context) error {
		return c.Send(textSlowDown)
	})

	return telegram.RunTelegram(ctx, telegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			surface := newReviewChannel(rt.Bot, a.cfg.Moderation.ReviewChannelID)
			notifier := newUserNotifier(rt.Bot, a.cfg.Moderation.SupportContact)
			a.reviews = moderation.NewDispatcher(surface, notifier)

			logger.Info(ctx, "service.orders", "bot.ready",
				slog.Int("entries", a.cat.Len()),
				slog.Int64("chat_id", a.cfg.Moderation.ReviewChannelID),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.Info(ctx, "service.orders", "bot.stopped",
				slog.Int("pending_reviews", a.reviews.Open()),
				slog.Int("sessions", a.engine.Store().Len()),
			)
			return nil
		},
	})
}
