package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/logger"
	"github.com/Speed10x/premiumSMM/internal/order"
	tghelpers "github.com/Speed10x/premiumSMM/internal/telegram/helpers"
)

// App satisfies the conversation router: while an order flow is active,
// free text and uploads belong to the flow instead of the command table.

// InProgress reports whether the user has an active order flow.
func (a *App) InProgress(userID int64) bool {
	return a.engine.InProgress(userID)
}

// HandleText feeds a free-text message into the order flow.
func (a *App) HandleText(c tele.Context) error {
	return a.advance(c, order.Event{
		Kind:   order.EventText,
		UserID: c.Sender().ID,
		Value:  c.Text(),
	})
}

// HandleMedia feeds an uploaded photo or document into the order flow.
// Updates without an extractable file reference fall back to a text event so
// the payment step re-prompts instead of finalizing with an empty proof.
func (a *App) HandleMedia(c tele.Context) error {
	ref := proofRef(c.Message())
	if ref == "" {
		return a.advance(c, order.Event{Kind: order.EventText, UserID: c.Sender().ID})
	}
	return a.advance(c, order.Event{
		Kind:   order.EventMedia,
		UserID: c.Sender().ID,
		Value:  ref,
	})
}

func proofRef(msg *tele.Message) string {
	if msg == nil {
		return ""
	}
	switch {
	case msg.Photo != nil:
		return msg.Photo.FileID
	case msg.Document != nil:
		return msg.Document.FileID
	}
	return ""
}

// advance commits one engine transition, dispatches a finalized order for
// review, and renders the resulting prompt. Guard violations and absent
// sessions are recovered here by re-rendering; they never bubble up as
// handler failures.
func (a *App) advance(c tele.Context, ev order.Event) error {
	ctx := tghelpers.BuildContext(c)

	prompt, err := a.engine.Apply(ctx, ev)
	if err != nil && err != order.ErrSessionAbsent && err != order.ErrGuardViolation {
		return err
	}

	if prompt.Order != nil {
		if _, derr := a.reviews.Dispatch(ctx, *prompt.Order); derr != nil {
			logger.Error(ctx, "service.orders", "order.submit_failed",
				slog.Int64("user_id", ev.UserID),
				slog.String("err", derr.Error()),
			)
			return tghelpers.SendMD(c, textSubmitFailed, menuKeyboard())
		}
	}

	text, markup := renderPrompt(a.cat, prompt)
	if c.Callback() != nil {
		// Button taps rewrite the prompt message in place instead of
		// stacking a new message per step.
		return tghelpers.EditOrSendMD(c, text, markup)
	}
	return tghelpers.SendMD(c, text, markup)
}
