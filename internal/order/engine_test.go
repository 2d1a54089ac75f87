package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Speed10x/premiumSMM/internal/catalog"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(catalog.Default())
}

func apply(t *testing.T, e *Engine, ev Event) Prompt {
	t.Helper()
	p, err := e.Apply(context.Background(), ev)
	require.NoError(t, err)
	return p
}

func TestFullFlowTwitterLikes(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(7)

	p := apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	require.Equal(t, StatePlatform, p.State)

	p = apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Twitter"})
	require.Equal(t, StateService, p.State)
	require.Equal(t, "Twitter", p.Draft.Platform)

	p = apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Likes"})
	require.Equal(t, StateQuantity, p.State)

	p = apply(t, e, Event{Kind: EventText, UserID: user, Value: "500"})
	require.Equal(t, StateAccount, p.State)
	require.Equal(t, 500, p.Draft.Quantity)

	p = apply(t, e, Event{Kind: EventText, UserID: user, Value: "user123"})
	require.Equal(t, StatePayment, p.State)
	require.Equal(t, "user123", p.Draft.Target)
	require.Equal(t, "150.00", p.Draft.Price.StringFixed(2))

	p = apply(t, e, Event{Kind: EventMedia, UserID: user, Value: "file-abc"})
	require.Equal(t, StateMainMenu, p.State)
	require.NotNil(t, p.Order)

	ord := *p.Order
	require.Equal(t, user, ord.UserID)
	require.Equal(t, "Twitter", ord.Platform)
	require.Equal(t, "Likes", ord.Service)
	require.Equal(t, 500, ord.Quantity)
	require.Equal(t, "user123", ord.Target)
	require.Equal(t, "150.00", ord.Price.StringFixed(2))
	require.Equal(t, "file-abc", ord.ProofRef)
	require.False(t, ord.CreatedAt.IsZero())

	// Completion destroys the session; a follow-up event lands in the menu.
	require.False(t, e.InProgress(user))
	p, err := e.Apply(context.Background(), Event{Kind: EventText, UserID: user, Value: "hello"})
	require.ErrorIs(t, err, ErrSessionAbsent)
	require.Equal(t, StateMainMenu, p.State)
}

func TestQuantityBounds(t *testing.T) {
	cases := []struct {
		input    string
		accepted bool
		notice   Notice
	}{
		{"50", true, NoticeNone},
		{"20000", true, NoticeNone},
		{"49", false, NoticeQuantityOutOfRange},
		{"20001", false, NoticeQuantityOutOfRange},
		{"0", false, NoticeQuantityOutOfRange},
		{"-500", false, NoticeQuantityOutOfRange},
		{"many", false, NoticeQuantityNotNumber},
		{"12.5", false, NoticeQuantityNotNumber},
		{"", false, NoticeQuantityNotNumber},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("input=%q", tc.input), func(t *testing.T) {
			e := newTestEngine(t)
			const user = int64(11)
			apply(t, e, Event{Kind: EventStartOrder, UserID: user})
			apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})
			apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Views"})

			p := apply(t, e, Event{Kind: EventText, UserID: user, Value: tc.input})
			if tc.accepted {
				require.Equal(t, StateAccount, p.State)
				require.Equal(t, NoticeNone, p.Notice)
				return
			}
			require.Equal(t, StateQuantity, p.State)
			require.Equal(t, tc.notice, p.Notice)
			require.Zero(t, p.Draft.Quantity, "rejected input must not touch the draft")
		})
	}
}

func TestBackNavigationPreservesEarlierFields(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(21)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Comments"})

	// Step back to service: the service clears, the platform survives.
	p := apply(t, e, Event{Kind: EventBack, UserID: user})
	require.Equal(t, StateService, p.State)
	require.Equal(t, "Instagram", p.Draft.Platform)
	require.Empty(t, p.Draft.Service)

	// Re-selecting continues the flow as if the detour never happened.
	p = apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Comments"})
	require.Equal(t, StateQuantity, p.State)
	require.Equal(t, "Comments", p.Draft.Service)
}

func TestBackFromPaymentKeepsPrice(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(22)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Twitter"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Likes"})
	apply(t, e, Event{Kind: EventText, UserID: user, Value: "500"})
	apply(t, e, Event{Kind: EventText, UserID: user, Value: "user123"})

	p := apply(t, e, Event{Kind: EventBack, UserID: user})
	require.Equal(t, StateAccount, p.State)
	require.Equal(t, 500, p.Draft.Quantity)
	require.Empty(t, p.Draft.ProofRef)

	// Entering a new target recomputes the price from the same entry.
	p = apply(t, e, Event{Kind: EventText, UserID: user, Value: "other_user"})
	require.Equal(t, StatePayment, p.State)
	require.Equal(t, "other_user", p.Draft.Target)
	require.Equal(t, "150.00", p.Draft.Price.StringFixed(2))
}

func TestBackFromPlatformAbandonsFlow(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(23)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	p := apply(t, e, Event{Kind: EventBack, UserID: user})
	require.Equal(t, StateMainMenu, p.State)
	require.False(t, e.InProgress(user))
}

func TestCancelYieldsFreshDraft(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(31)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Twitter"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Likes"})

	p := apply(t, e, Event{Kind: EventCancel, UserID: user})
	require.Equal(t, StateMainMenu, p.State)
	require.False(t, e.InProgress(user))

	// Restarting begins from scratch; nothing leaks from the aborted draft.
	p = apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	require.Equal(t, StatePlatform, p.State)
	require.Empty(t, p.Draft.Platform)
	require.Empty(t, p.Draft.Service)
}

func TestRestartReplacesActiveDraft(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(32)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})

	p := apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	require.Equal(t, StatePlatform, p.State)
	require.Empty(t, p.Draft.Platform)
}

func TestOutOfOrderEvents(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(41)

	// A service tap without any session is not a crash, just a menu prompt.
	p, err := e.Apply(context.Background(), Event{Kind: EventSelectService, UserID: user, Value: "Likes"})
	require.ErrorIs(t, err, ErrSessionAbsent)
	require.Equal(t, StateMainMenu, p.State)

	// A stale platform tap while already waiting for a quantity re-renders
	// the current step and leaves the draft alone.
	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Views"})

	p, err = e.Apply(context.Background(), Event{Kind: EventSelectPlatform, UserID: user, Value: "Twitter"})
	require.ErrorIs(t, err, ErrGuardViolation)
	require.Equal(t, StateQuantity, p.State)
	require.Equal(t, "Instagram", p.Draft.Platform)
}

func TestUnknownSelectionRejected(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(42)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})

	p, err := e.Apply(context.Background(), Event{Kind: EventSelectPlatform, UserID: user, Value: "MySpace"})
	require.ErrorIs(t, err, ErrGuardViolation)
	require.Equal(t, StatePlatform, p.State)

	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})
	p, err = e.Apply(context.Background(), Event{Kind: EventSelectService, UserID: user, Value: "Retweets"})
	require.ErrorIs(t, err, ErrGuardViolation)
	require.Equal(t, StateService, p.State)
}

func TestTextOnPaymentReprompts(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(43)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Twitter"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Likes"})
	apply(t, e, Event{Kind: EventText, UserID: user, Value: "500"})
	apply(t, e, Event{Kind: EventText, UserID: user, Value: "user123"})

	p := apply(t, e, Event{Kind: EventText, UserID: user, Value: "i paid, trust me"})
	require.Equal(t, StatePayment, p.State)
	require.Equal(t, NoticeProofRequired, p.Notice)
	require.True(t, e.InProgress(user))
}

func TestEmptyTargetRejected(t *testing.T) {
	e := newTestEngine(t)
	const user = int64(44)

	apply(t, e, Event{Kind: EventStartOrder, UserID: user})
	apply(t, e, Event{Kind: EventSelectPlatform, UserID: user, Value: "Instagram"})
	apply(t, e, Event{Kind: EventSelectService, UserID: user, Value: "Views"})
	apply(t, e, Event{Kind: EventText, UserID: user, Value: "2000"})

	p := apply(t, e, Event{Kind: EventText, UserID: user, Value: "   "})
	require.Equal(t, StateAccount, p.State)
	require.Equal(t, NoticeTargetEmpty, p.Notice)
	require.Empty(t, p.Draft.Target)
}

func TestPriceDeterminism(t *testing.T) {
	cat := catalog.Default()

	views, ok := cat.Lookup("Instagram", "Views")
	require.True(t, ok)
	require.Equal(t, "10.00", ComputePrice(views, 2000).StringFixed(2))

	comments, ok := cat.Lookup("Instagram", "Comments")
	require.True(t, ok)
	require.Equal(t, "500.00", ComputePrice(comments, 50).StringFixed(2))

	likes, ok := cat.Lookup("Twitter", "Likes")
	require.True(t, ok)
	require.Equal(t, "150.00", ComputePrice(likes, 500).StringFixed(2))

	// Fractional per-thousand results round half-up to two places.
	require.Equal(t, "0.38", ComputePrice(views, 75).StringFixed(2))
}
