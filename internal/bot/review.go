package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/logger"
	"github.com/Speed10x/premiumSMM/internal/moderation"
	"github.com/Speed10x/premiumSMM/internal/order"
	"github.com/Speed10x/premiumSMM/internal/telegram/keyboard"
)

// reviewChannel renders finalized orders into the operator channel: the
// payment proof first, then a summary message carrying the decision buttons.
type reviewChannel struct {
	bot    *tele.Bot
	chatID int64
}

func newReviewChannel(bot *tele.Bot, chatID int64) *reviewChannel {
	return &reviewChannel{bot: bot, chatID: chatID}
}

func (r *reviewChannel) PostReview(ctx context.Context, rv moderation.Review) (moderation.MessageRef, error) {
	recipient := tele.ChatID(r.chatID)

	if rv.Order.ProofRef != "" {
		r.sendProof(ctx, recipient, rv.Order.ProofRef)
	}

	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: btnApprove, Unique: cbReviewApprove, Data: rv.CorrelationID},
		{Text: btnReject, Unique: cbReviewReject, Data: rv.CorrelationID},
		{Text: btnPending, Unique: cbReviewPending, Data: rv.CorrelationID},
	})
	msg, err := r.bot.Send(recipient, reviewText(rv), &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: markup,
	})
	if err != nil {
		return moderation.MessageRef{}, err
	}
	return moderation.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// sendProof posts the uploaded proof ahead of the summary. The reference may
// point at a photo or a document; a failed photo send is retried as a
// document before giving up. A missing proof render keeps the review alive,
// the ref is still quoted in the summary.
func (r *reviewChannel) sendProof(ctx context.Context, to tele.Recipient, ref string) {
	file := tele.File{FileID: ref}
	if _, err := r.bot.Send(to, &tele.Photo{File: file}); err == nil {
		return
	}
	if _, err := r.bot.Send(to, &tele.Document{File: file}); err != nil {
		logger.Warn(ctx, "service.moderation", "review.proof_send_failed",
			slog.String("proof_ref", ref),
			slog.String("err", err.Error()),
		)
	}
}

func (r *reviewChannel) AnnotateReview(ctx context.Context, rv moderation.Review, dec moderation.Decision) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(rv.Ref.MessageID),
		ChatID:    rv.Ref.ChatID,
	}
	// Editing without a markup strips the decision buttons.
	annotated := fmt.Sprintf(textReviewDecided, reviewText(rv), decisionBadge(dec))
	_, err := r.bot.Edit(stored, annotated, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	return err
}

func reviewText(rv moderation.Review) string {
	summary := submittedSummary(rv.Order) +
		fmt.Sprintf("Proof: `%s`", rv.Order.ProofRef)
	return fmt.Sprintf(textReviewHeader, rv.CorrelationID, rv.Order.UserID, summary)
}

func decisionBadge(dec moderation.Decision) string {
	switch dec {
	case moderation.DecisionApprove:
		return badgeApproved
	case moderation.DecisionReject:
		return badgeRejected
	default:
		return badgePending
	}
}

// userNotifier delivers the terminal decision message back to the customer.
type userNotifier struct {
	bot     *tele.Bot
	support string
}

func newUserNotifier(bot *tele.Bot, support string) *userNotifier {
	return &userNotifier{bot: bot, support: support}
}

func (n *userNotifier) NotifyDecision(_ context.Context, ord order.Order, dec moderation.Decision) error {
	var text string
	switch dec {
	case moderation.DecisionApprove:
		text = textDecisionApproved
	case moderation.DecisionReject:
		support := n.support
		if support == "" {
			support = textSupportFallback
		}
		text = fmt.Sprintf(textDecisionRejected, support)
	default:
		text = textDecisionPending
	}
	_, err := n.bot.Send(&tele.User{ID: ord.UserID}, text)
	return err
}
