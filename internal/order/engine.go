// Package order implements the order conversation: a per-user finite state
// machine that walks platform -> service -> quantity -> account -> payment
// with back navigation, and produces an immutable Order on completion.
package order

import (
	"context"
	"strconv"
	"strings"

	"github.com/Speed10x/premiumSMM/internal/catalog"
	"github.com/Speed10x/premiumSMM/internal/logger"
	"log/slog"
)

// Engine drives order conversations against the catalog. Transitions commit
// to the session store before any message is sent, so a failed send can
// never leave a draft inconsistent.
type Engine struct {
	cat   *catalog.Catalog
	store *Store
}

// NewEngine constructs an engine with an empty session store.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat, store: NewStore()}
}

// Store exposes the session store for read-only inspection.
func (e *Engine) Store() *Store {
	return e.store
}

// InProgress reports whether the user currently has an active order flow.
func (e *Engine) InProgress(userID int64) bool {
	return e.store.Active(userID)
}

// transitionFunc applies one table entry. It may mutate the state and draft,
// and reports whether the session must be destroyed after commit.
type transitionFunc func(e *Engine, st *State, d *Draft, ev Event) (Prompt, bool, error)

// transitions is the (state, event) lookup. Adding a state or an event is a
// table edit; events missing from a state's row are guard violations.
var transitions = map[State]map[EventKind]transitionFunc{
	StatePlatform: {
		EventSelectPlatform: (*Engine).selectPlatform,
		EventBack:           (*Engine).backToMenu,
	},
	StateService: {
		EventSelectService: (*Engine).selectService,
		EventBack:          (*Engine).backToPlatform,
	},
	StateQuantity: {
		EventText: (*Engine).enterQuantity,
		EventBack: (*Engine).backToService,
	},
	StateAccount: {
		EventText: (*Engine).enterTarget,
		EventBack: (*Engine).backToQuantity,
	},
	StatePayment: {
		EventMedia: (*Engine).uploadProof,
		EventText:  (*Engine).proofReprompt,
		EventBack:  (*Engine).backToAccount,
	},
}

// Apply advances the user's conversation by one event and returns the prompt
// to render. ErrSessionAbsent and ErrGuardViolation accompany a prompt for
// the state the user is actually in, so callers can re-render instead of
// crashing on stale or out-of-order events.
func (e *Engine) Apply(ctx context.Context, ev Event) (Prompt, error) {
	switch ev.Kind {
	case EventStartOrder:
		draft := e.store.Begin(ev.UserID)
		e.logTransition(ctx, ev, StatePlatform, nil)
		return Prompt{State: StatePlatform, Draft: draft}, nil
	case EventCancel:
		e.store.Destroy(ev.UserID)
		e.logTransition(ctx, ev, StateMainMenu, nil)
		return Prompt{State: StateMainMenu, Draft: Draft{UserID: ev.UserID}}, nil
	}

	var prompt Prompt
	err := e.store.Update(ev.UserID, func(st *State, d *Draft) (bool, error) {
		fn, ok := transitions[*st][ev.Kind]
		if !ok {
			prompt = Prompt{State: *st, Draft: *d}
			return false, ErrGuardViolation
		}
		var destroy bool
		var err error
		prompt, destroy, err = fn(e, st, d, ev)
		return destroy, err
	})
	if err == ErrSessionAbsent {
		// Replay after cancel/completion: treat as an implicit restart offer.
		prompt = Prompt{State: StateMainMenu, Draft: Draft{UserID: ev.UserID}}
	}
	e.logTransition(ctx, ev, prompt.State, err)
	return prompt, err
}

func (e *Engine) selectPlatform(st *State, d *Draft, ev Event) (Prompt, bool, error) {
	if !e.cat.HasPlatform(ev.Value) {
		return Prompt{State: *st, Draft: *d}, false, ErrGuardViolation
	}
	d.Platform = ev.Value
	*st = StateService
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) backToMenu(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	return Prompt{State: StateMainMenu, Draft: Draft{UserID: d.UserID}}, true, nil
}

func (e *Engine) selectService(st *State, d *Draft, ev Event) (Prompt, bool, error) {
	if _, ok := e.cat.Lookup(d.Platform, ev.Value); !ok {
		return Prompt{State: *st, Draft: *d}, false, ErrGuardViolation
	}
	d.Service = ev.Value
	*st = StateQuantity
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) backToPlatform(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	d.Service = ""
	*st = StatePlatform
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) enterQuantity(st *State, d *Draft, ev Event) (Prompt, bool, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(ev.Value))
	if err != nil {
		return Prompt{State: *st, Draft: *d, Notice: NoticeQuantityNotNumber}, false, nil
	}
	if qty < MinQuantity || qty > MaxQuantity {
		return Prompt{State: *st, Draft: *d, Notice: NoticeQuantityOutOfRange}, false, nil
	}
	d.Quantity = qty
	*st = StateAccount
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) backToService(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	d.Quantity = 0
	*st = StateService
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) enterTarget(st *State, d *Draft, ev Event) (Prompt, bool, error) {
	target := strings.TrimSpace(ev.Value)
	if target == "" {
		return Prompt{State: *st, Draft: *d, Notice: NoticeTargetEmpty}, false, nil
	}
	entry, ok := e.cat.Lookup(d.Platform, d.Service)
	if !ok {
		// Earlier guards make this unreachable; refuse rather than crash.
		return Prompt{State: *st, Draft: *d}, false, ErrGuardViolation
	}
	d.Target = target
	d.Price = ComputePrice(entry, d.Quantity)
	*st = StatePayment
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) backToQuantity(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	d.Target = ""
	*st = StateQuantity
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) uploadProof(st *State, d *Draft, ev Event) (Prompt, bool, error) {
	d.ProofRef = ev.Value
	ord := finalize(*d)
	return Prompt{State: StateMainMenu, Draft: *d, Order: &ord}, true, nil
}

func (e *Engine) proofReprompt(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	return Prompt{State: *st, Draft: *d, Notice: NoticeProofRequired}, false, nil
}

func (e *Engine) backToAccount(st *State, d *Draft, _ Event) (Prompt, bool, error) {
	d.ProofRef = ""
	*st = StateAccount
	return Prompt{State: *st, Draft: *d}, false, nil
}

func (e *Engine) logTransition(ctx context.Context, ev Event, next State, err error) {
	attrs := []slog.Attr{
		slog.String("operation", string(ev.Kind)),
		slog.Int64("user_id", ev.UserID),
		slog.String("state", string(next)),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("status", "skip"),
			slog.String("err", err.Error()),
		)
		logger.Debug(ctx, "service.orders", "flow.rejected", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "ok"))
	logger.Debug(ctx, "service.orders", "flow.advanced", attrs...)
}
