package moderation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Speed10x/premiumSMM/internal/order"
)

type fakeSurface struct {
	mu        sync.Mutex
	posts     []Review
	annotates []Decision
	postErr   error
}

func (f *fakeSurface) PostReview(_ context.Context, rv Review) (MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return MessageRef{}, f.postErr
	}
	f.posts = append(f.posts, rv)
	return MessageRef{ChatID: -100, MessageID: len(f.posts)}, nil
}

func (f *fakeSurface) AnnotateReview(_ context.Context, rv Review, dec Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.annotates = append(f.annotates, dec)
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	decisions []Decision
	users     []int64
	err       error
}

func (f *fakeNotifier) NotifyDecision(_ context.Context, ord order.Order, dec Decision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions = append(f.decisions, dec)
	f.users = append(f.users, ord.UserID)
	return f.err
}

func testOrder(userID int64) order.Order {
	return order.Order{
		UserID:   userID,
		Platform: "Twitter",
		Service:  "Likes",
		Quantity: 500,
		Target:   "user123",
		Price:    decimal.RequireFromString("150.00"),
		ProofRef: "proof1",
	}
}

func TestDispatchAndResolve(t *testing.T) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{}
	d := NewDispatcher(surface, notifier)
	ctx := context.Background()

	corrID, err := d.Dispatch(ctx, testOrder(7))
	require.NoError(t, err)
	require.NotEmpty(t, corrID)
	require.Len(t, surface.posts, 1)
	require.Equal(t, corrID, surface.posts[0].CorrelationID)
	require.Equal(t, 1, d.Open())

	require.NoError(t, d.Resolve(ctx, corrID, DecisionApprove))
	require.Equal(t, []Decision{DecisionApprove}, notifier.decisions)
	require.Equal(t, []int64{7}, notifier.users)
	require.Equal(t, []Decision{DecisionApprove}, surface.annotates)
	require.Zero(t, d.Open())
}

func TestResolveFirstDecisionWins(t *testing.T) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{}
	d := NewDispatcher(surface, notifier)
	ctx := context.Background()

	corrID, err := d.Dispatch(ctx, testOrder(8))
	require.NoError(t, err)

	require.NoError(t, d.Resolve(ctx, corrID, DecisionReject))
	err = d.Resolve(ctx, corrID, DecisionApprove)
	require.ErrorIs(t, err, ErrUnknownCorrelation)

	// The losing decision must not reach the user or the surface.
	require.Equal(t, []Decision{DecisionReject}, notifier.decisions)
	require.Equal(t, []Decision{DecisionReject}, surface.annotates)
}

func TestResolveUnknownCorrelation(t *testing.T) {
	d := NewDispatcher(&fakeSurface{}, &fakeNotifier{})

	err := d.Resolve(context.Background(), "no-such-id", DecisionPending)
	require.ErrorIs(t, err, ErrUnknownCorrelation)
	require.Equal(t, "UNKNOWN_CORRELATION", ErrUnknownCorrelation.Code())
}

func TestDispatchSurfaceFailureNotRegistered(t *testing.T) {
	surface := &fakeSurface{postErr: errors.New("channel unavailable")}
	d := NewDispatcher(surface, &fakeNotifier{})

	_, err := d.Dispatch(context.Background(), testOrder(9))
	require.Error(t, err)
	require.Zero(t, d.Open())
}

func TestResolveDeliveryFailureStillCloses(t *testing.T) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{err: errors.New("blocked by user")}
	d := NewDispatcher(surface, notifier)
	ctx := context.Background()

	corrID, err := d.Dispatch(ctx, testOrder(10))
	require.NoError(t, err)

	err = d.Resolve(ctx, corrID, DecisionApprove)
	require.Error(t, err)

	// The review stays closed even though delivery failed; the surface was
	// still annotated and a retry is a duplicate.
	require.Equal(t, []Decision{DecisionApprove}, surface.annotates)
	require.ErrorIs(t, d.Resolve(ctx, corrID, DecisionApprove), ErrUnknownCorrelation)
}

func TestConcurrentResolveSendsOneNotification(t *testing.T) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{}
	d := NewDispatcher(surface, notifier)
	ctx := context.Background()

	corrID, err := d.Dispatch(ctx, testOrder(11))
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	wg.Add(racers)
	wins := make(chan Decision, racers)
	for i := 0; i < racers; i++ {
		dec := DecisionApprove
		if i%2 == 1 {
			dec = DecisionReject
		}
		go func(dec Decision) {
			defer wg.Done()
			if err := d.Resolve(ctx, corrID, dec); err == nil {
				wins <- dec
			}
		}(dec)
	}
	wg.Wait()
	close(wins)

	var winners []Decision
	for dec := range wins {
		winners = append(winners, dec)
	}
	require.Len(t, winners, 1)
	require.Equal(t, winners, notifier.decisions)
	require.Equal(t, winners, surface.annotates)
}

func TestParseDecision(t *testing.T) {
	for _, raw := range []string{"approve", "reject", "pending"} {
		dec, ok := ParseDecision(raw)
		require.True(t, ok)
		require.Equal(t, Decision(raw), dec)
	}
	_, ok := ParseDecision("ban")
	require.False(t, ok)
	_, ok = ParseDecision("Approve")
	require.False(t, ok)
}
