package router

import (
	"testing"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/Speed10x/premiumSMM/internal/telegram"
	"github.com/Speed10x/premiumSMM/internal/telegram/commands"
)

// scriptedConversation records which side of the routing fork fired.
type scriptedConversation struct {
	active     bool
	textCalls  int
	mediaCalls int
}

func (s *scriptedConversation) InProgress(int64) bool          { return s.active }
func (s *scriptedConversation) HandleText(tele.Context) error  { s.textCalls++; return nil }
func (s *scriptedConversation) HandleMedia(tele.Context) error { s.mediaCalls++; return nil }

// stubContext carries just enough of tele.Context for routing; anything
// outside the routed paths panics via the embedded nil interface.
type stubContext struct {
	tele.Context
	update tele.Update
	store  map[string]any
}

func newTextContext(updateID int, text string) *stubContext {
	return &stubContext{
		update: tele.Update{
			ID: updateID,
			Message: &tele.Message{
				Text:   text,
				Sender: &tele.User{ID: 42},
				Chat:   &tele.Chat{ID: 42, Type: tele.ChatPrivate},
			},
		},
		store: make(map[string]any),
	}
}

func newPhotoContext(updateID int) *stubContext {
	c := newTextContext(updateID, "")
	c.update.Message.Photo = &tele.Photo{File: tele.File{FileID: "photo1"}}
	return c
}

func (s *stubContext) Update() tele.Update       { return s.update }
func (s *stubContext) Message() *tele.Message    { return s.update.Message }
func (s *stubContext) Sender() *tele.User        { return s.update.Message.Sender }
func (s *stubContext) Chat() *tele.Chat          { return s.update.Message.Chat }
func (s *stubContext) Text() string              { return s.update.Message.Text }
func (s *stubContext) Callback() *tele.Callback  { return nil }
func (s *stubContext) Get(key string) any        { return s.store[key] }
func (s *stubContext) Set(key string, value any) { s.store[key] = value }

type wiring struct {
	conv      *scriptedConversation
	cmdCalls  int
	fbCalls   int
	unknownMD int
	routes    map[string]tele.HandlerFunc
}

func newWiring(active bool) *wiring {
	w := &wiring{conv: &scriptedConversation{active: active}}

	reg := tg.NewRegistry()
	reg.RegisterCommand("/ping", commands.Command{
		Handler:     func(tele.Context) error { w.cmdCalls++; return nil },
		Description: "ping",
	})
	reg.SetTextFallback(func(tele.Context) error { w.fbCalls++; return nil })

	w.routes = make(map[string]tele.HandlerFunc)
	for _, r := range ConversationRoutes(w.conv, reg, ConversationOptions{
		UnknownMedia: func(tele.Context) error { w.unknownMD++; return nil },
	}) {
		w.routes[r.Endpoint.(string)] = r.Handler
	}
	return w
}

func TestTextGoesToConversationWhileInFlow(t *testing.T) {
	w := newWiring(true)

	require.NoError(t, w.routes[tele.OnText](newTextContext(9001, "/ping")))

	require.Equal(t, 1, w.conv.textCalls, "in-flow text belongs to the conversation")
	require.Zero(t, w.cmdCalls, "command table must not be consulted mid-flow")
	require.Zero(t, w.fbCalls, "text fallback must not be consulted mid-flow")
}

func TestTextFallsThroughToCommandsWhenIdle(t *testing.T) {
	w := newWiring(false)

	require.NoError(t, w.routes[tele.OnText](newTextContext(9002, "/ping")))

	require.Zero(t, w.conv.textCalls)
	require.Equal(t, 1, w.cmdCalls)
	require.Zero(t, w.fbCalls)
}

func TestUnmatchedTextHitsFallbackWhenIdle(t *testing.T) {
	w := newWiring(false)

	require.NoError(t, w.routes[tele.OnText](newTextContext(9003, "what now")))

	require.Zero(t, w.conv.textCalls)
	require.Zero(t, w.cmdCalls)
	require.Equal(t, 1, w.fbCalls)
}

func TestMediaGoesToConversationWhileInFlow(t *testing.T) {
	w := newWiring(true)

	require.NoError(t, w.routes[tele.OnPhoto](newPhotoContext(9004)))

	require.Equal(t, 1, w.conv.mediaCalls)
	require.Zero(t, w.unknownMD)
}

func TestMediaHitsUnknownHandlerWhenIdle(t *testing.T) {
	w := newWiring(false)

	require.NoError(t, w.routes[tele.OnDocument](newPhotoContext(9005)))

	require.Zero(t, w.conv.mediaCalls)
	require.Equal(t, 1, w.unknownMD)
}
