// Package moderation hands finalized orders to a human reviewer and routes
// the decision back to the originating user. Correlation ids, not user ids,
// are the join key: by the time a decision arrives the order has already
// left the per-user session.
package moderation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/Speed10x/premiumSMM/internal/logger"
	"github.com/Speed10x/premiumSMM/internal/order"
)

// Decision is an operator verdict on a dispatched order.
type Decision string

const (
	// DecisionApprove confirms the order; the user gets a completion message.
	DecisionApprove Decision = "approve"
	// DecisionReject declines the order; the user is pointed at support.
	DecisionReject Decision = "reject"
	// DecisionPending defers the order; the user is told to wait.
	DecisionPending Decision = "pending"
)

// ParseDecision maps a raw decision token to a Decision.
func ParseDecision(raw string) (Decision, bool) {
	switch Decision(raw) {
	case DecisionApprove, DecisionReject, DecisionPending:
		return Decision(raw), true
	}
	return "", false
}

// Error is a moderation error with a stable code for logs and operator
// feedback.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable machine-readable code of the error.
func (e *Error) Code() string { return e.code }

// ErrUnknownCorrelation signals a decision whose correlation id matches no
// open review: either it never existed or it was already resolved.
var ErrUnknownCorrelation = &Error{
	code: "UNKNOWN_CORRELATION",
	msg:  "no open review for correlation id",
}

// MessageRef locates a rendered review message so it can be annotated later.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Review pairs a finalized order with its correlation id and render handle.
type Review struct {
	CorrelationID string
	Order         order.Order
	Ref           MessageRef
}

// Surface renders reviews to operators. Implementations live at the
// transport layer.
type Surface interface {
	// PostReview renders the order with its decision affordances and
	// returns a handle to the rendered message.
	PostReview(ctx context.Context, rv Review) (MessageRef, error)
	// AnnotateReview rewrites the rendered message with the chosen
	// decision and strips the affordances.
	AnnotateReview(ctx context.Context, rv Review, dec Decision) error
}

// Notifier delivers the terminal decision message to the originating user.
type Notifier interface {
	NotifyDecision(ctx context.Context, ord order.Order, dec Decision) error
}

// Dispatcher owns the set of open reviews. A review is open from Dispatch
// until the first Resolve; later decisions on the same id are rejected.
type Dispatcher struct {
	surface  Surface
	notifier Notifier

	mu   sync.Mutex
	open map[string]Review
}

// NewDispatcher constructs a dispatcher with no open reviews.
func NewDispatcher(surface Surface, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		surface:  surface,
		notifier: notifier,
		open:     make(map[string]Review),
	}
}

// Dispatch renders the order to the review surface under a fresh
// correlation id and registers it as open. Each order is rendered exactly
// once; a failed render is not registered and the error is returned to the
// caller.
func (d *Dispatcher) Dispatch(ctx context.Context, ord order.Order) (string, error) {
	rv := Review{
		CorrelationID: uuid.NewString(),
		Order:         ord,
	}

	ref, err := d.surface.PostReview(ctx, rv)
	if err != nil {
		logger.Error(ctx, "service.moderation", "review.dispatch_failed",
			slog.Int64("user_id", ord.UserID),
			slog.String("err", err.Error()),
		)
		return "", err
	}
	rv.Ref = ref

	d.mu.Lock()
	d.open[rv.CorrelationID] = rv
	pending := len(d.open)
	d.mu.Unlock()

	logger.Info(ctx, "service.moderation", "review.dispatched",
		slog.String("correlation_id", rv.CorrelationID),
		slog.Int64("user_id", ord.UserID),
		slog.String("platform", ord.Platform),
		slog.String("service", ord.Service),
		slog.Int("quantity", ord.Quantity),
		slog.String("price", ord.Price.StringFixed(2)),
		slog.Int("pending_reviews", pending),
	)
	return rv.CorrelationID, nil
}

// Resolve applies the first decision for the correlation id: the review is
// closed under the lock before any message is sent, so a racing duplicate
// observes ErrUnknownCorrelation and triggers no second notification.
// Delivery failures do not reopen the review; they are aggregated and
// reported to the operator.
func (d *Dispatcher) Resolve(ctx context.Context, correlationID string, dec Decision) error {
	d.mu.Lock()
	rv, ok := d.open[correlationID]
	if ok {
		delete(d.open, correlationID)
	}
	d.mu.Unlock()

	if !ok {
		logger.Warn(ctx, "service.moderation", "review.decision_duplicate",
			slog.String("correlation_id", correlationID),
			slog.String("decision", string(dec)),
		)
		return ErrUnknownCorrelation
	}

	var errs *multierror.Error
	if err := d.notifier.NotifyDecision(ctx, rv.Order, dec); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := d.surface.AnnotateReview(ctx, rv, dec); err != nil {
		errs = multierror.Append(errs, err)
	}

	attrs := []slog.Attr{
		slog.String("correlation_id", correlationID),
		slog.String("decision", string(dec)),
		slog.Int64("user_id", rv.Order.UserID),
	}
	if err := errs.ErrorOrNil(); err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
		logger.Error(ctx, "service.moderation", "review.resolve_degraded", attrs...)
		return err
	}
	logger.Info(ctx, "service.moderation", "review.resolved", attrs...)
	return nil
}

// Open returns the number of reviews awaiting a decision.
func (d *Dispatcher) Open() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}
