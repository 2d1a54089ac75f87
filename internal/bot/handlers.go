package bot

import (
	"errors"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/moderation"
	"github.com/Speed10x/premiumSMM/internal/order"
	"github.com/Speed10x/premiumSMM/internal/telegram"
	"github.com/Speed10x/premiumSMM/internal/telegram/callbacks"
	"github.com/Speed10x/premiumSMM/internal/telegram/commands"
	tghelpers "github.com/Speed10x/premiumSMM/internal/telegram/helpers"
)

func (a *App) registerCommands(reg *telegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Show the main menu",
	})
	reg.RegisterCommand("/order", commands.Command{
		Handler:     a.handleOrder,
		Description: "Start a new order",
		Aliases:     []string{"neworder"},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Cancel the current order",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "List available commands",
	})
	reg.RegisterCommand("/support", commands.Command{
		Handler:     a.handleSupport,
		Description: "Contact support",
	})

	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, textUnknownInput)
	})
}

func (a *App) registerCallbacks(reg *telegram.Registry) {
	_ = reg.RegisterCallback(cbOrderNew, a.handleOrder)
	_ = reg.RegisterCallback(cbOrderCancel, a.handleCancel)
	_ = reg.RegisterCallback(cbMenuSupport, a.handleSupport)
	_ = reg.RegisterCallback(cbOrderPlatform, a.selectionHandler(order.EventSelectPlatform))
	_ = reg.RegisterCallback(cbOrderService, a.selectionHandler(order.EventSelectService))
	_ = reg.RegisterCallback(cbOrderBack, func(c tele.Context) error {
		return a.advance(c, order.Event{Kind: order.EventBack, UserID: c.Sender().ID})
	})

	_ = reg.RegisterCallback(cbReviewApprove, a.decisionHandler(moderation.DecisionApprove))
	_ = reg.RegisterCallback(cbReviewReject, a.decisionHandler(moderation.DecisionReject))
	_ = reg.RegisterCallback(cbReviewPending, a.decisionHandler(moderation.DecisionPending))
}

func (a *App) handleStart(c tele.Context) error {
	return tghelpers.SendMD(c, textWelcome, menuKeyboard())
}

func (a *App) handleOrder(c tele.Context) error {
	return a.advance(c, order.Event{Kind: order.EventStartOrder, UserID: c.Sender().ID})
}

func (a *App) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	if !a.engine.InProgress(userID) {
		return tghelpers.SendMD(c, textNothingToDo, menuKeyboard())
	}
	ctx := tghelpers.BuildContext(c)
	if _, err := a.engine.Apply(ctx, order.Event{Kind: order.EventCancel, UserID: userID}); err != nil {
		return err
	}
	return tghelpers.SendMD(c, textOrderCancelled, menuKeyboard())
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, textHelp)
}

func (a *App) handleSupport(c tele.Context) error {
	contact := strings.TrimSpace(a.cfg.Moderation.SupportContact)
	if contact == "" {
		return tghelpers.SendText(c, textSupportFallback)
	}
	return tghelpers.SendText(c, "Support: "+contact)
}

func (a *App) selectionHandler(kind order.EventKind) tele.HandlerFunc {
	return func(c tele.Context) error {
		return a.advance(c, order.Event{
			Kind:   kind,
			UserID: c.Sender().ID,
			Value:  callbacks.Payload(c),
		})
	}
}

// decisionHandler resolves an operator verdict from the review channel.
// Stale or duplicate buttons are reported in the channel, not to the user.
func (a *App) decisionHandler(dec moderation.Decision) tele.HandlerFunc {
	return func(c tele.Context) error {
		if admin := a.cfg.Telegram.AdminID; admin != 0 && c.Sender().ID != admin {
			return c.Respond(&tele.CallbackResponse{Text: textNotAllowed})
		}

		corrID := strings.TrimSpace(callbacks.Payload(c))
		ctx := tghelpers.BuildContext(c)
		err := a.reviews.Resolve(ctx, corrID, dec)
		if errors.Is(err, moderation.ErrUnknownCorrelation) {
			return c.Reply(textReviewUnknown)
		}
		return err
	}
}
