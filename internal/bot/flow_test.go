package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/Speed10x/premiumSMM/internal/catalog"
	"github.com/Speed10x/premiumSMM/internal/order"
)

// promptRecorder captures whether a prompt was delivered as a fresh message
// or as an in-place edit of the tapped one.
type promptRecorder struct {
	tele.Context
	cb     *tele.Callback
	store  map[string]any
	sent   []string
	edited []string
}

func newPromptRecorder(cb *tele.Callback) *promptRecorder {
	return &promptRecorder{cb: cb, store: make(map[string]any)}
}

func (p *promptRecorder) Update() tele.Update      { return tele.Update{ID: 1} }
func (p *promptRecorder) Sender() *tele.User       { return &tele.User{ID: 7} }
func (p *promptRecorder) Chat() *tele.Chat         { return &tele.Chat{ID: 7} }
func (p *promptRecorder) Callback() *tele.Callback { return p.cb }
func (p *promptRecorder) Get(key string) any       { return p.store[key] }
func (p *promptRecorder) Set(key string, v any)    { p.store[key] = v }

func (p *promptRecorder) Send(what interface{}, _ ...interface{}) error {
	p.sent = append(p.sent, fmt.Sprint(what))
	return nil
}

func (p *promptRecorder) EditOrSend(what interface{}, _ ...interface{}) error {
	p.edited = append(p.edited, fmt.Sprint(what))
	return nil
}

func newFlowApp() *App {
	cat := catalog.Default()
	return &App{cat: cat, engine: order.NewEngine(cat)}
}

func TestAdvanceEditsPromptOnCallback(t *testing.T) {
	a := newFlowApp()
	c := newPromptRecorder(&tele.Callback{ID: "cb1"})

	require.NoError(t, a.advance(c, order.Event{Kind: order.EventStartOrder, UserID: 7}))

	require.Len(t, c.edited, 1, "button taps must rewrite the prompt in place")
	require.Empty(t, c.sent)
	require.Contains(t, c.edited[0], "Choose a platform")
}

func TestAdvanceSendsPromptOnMessage(t *testing.T) {
	a := newFlowApp()
	c := newPromptRecorder(nil)

	require.NoError(t, a.advance(c, order.Event{Kind: order.EventStartOrder, UserID: 7}))

	require.Len(t, c.sent, 1, "typed input gets a fresh prompt message")
	require.Empty(t, c.edited)
	require.Contains(t, c.sent[0], "Choose a platform")
}
