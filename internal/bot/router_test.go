package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/handlers"
	"github.com/kartabot/kartabot/internal/state"
	"github.com/kartabot/kartabot/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMachine() state.StateMachine {
	return state.NewStateMachine(state.NewMemoryStorage(), testLogger(), nil)
}

func markingHandler(marks *[]string, name string) handlers.Handler {
	return func(telebot.Context) error {
		*marks = append(*marks, name)
		return nil
	}
}

func TestRouter_CommandsTakePriority(t *testing.T) {
	fsm := testMachine()
	require.NoError(t, fsm.SetState(context.Background(), 1, state.StateCountry))

	var marks []string
	dispatcher := NewDispatcher(fsm, testLogger())
	dispatcher.RegisterStateHandler(state.StateCountry, markingHandler(&marks, "state"))

	router := NewRouter(dispatcher, testLogger())
	router.RegisterCommand("/buy", markingHandler(&marks, "command"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "/buy")))
	assert.Equal(t, []string{"command"}, marks)
}

func TestRouter_CommandWithMentionSuffix(t *testing.T) {
	var marks []string
	router := NewRouter(NewDispatcher(testMachine(), testLogger()), testLogger())
	router.RegisterCommand("/buy", markingHandler(&marks, "command"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "/buy@kartabot")))
	assert.Equal(t, []string{"command"}, marks)
}

func TestRouter_ButtonsMatchWithoutSession(t *testing.T) {
	var marks []string
	router := NewRouter(NewDispatcher(testMachine(), testLogger()), testLogger())
	router.RegisterButton("Оформить карту", markingHandler(&marks, "button"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "Оформить карту")))
	assert.Equal(t, []string{"button"}, marks)
}

func TestRouter_NavigationRequiresSession(t *testing.T) {
	fsm := testMachine()

	var marks []string
	dispatcher := NewDispatcher(fsm, testLogger())
	router := NewRouter(dispatcher, testLogger())
	router.RegisterNavigation("В главное меню", markingHandler(&marks, "nav"))
	router.SetDefault(markingHandler(&marks, "default"))

	// No session: the navigation keyword is plain text and falls to default.
	require.NoError(t, router.Route(testutil.NewFakeContext(1, "В главное меню")))
	assert.Equal(t, []string{"default"}, marks)

	// With a session the same text routes to navigation.
	marks = nil
	require.NoError(t, fsm.SetState(context.Background(), 1, state.StateCountry))
	require.NoError(t, router.Route(testutil.NewFakeContext(1, "В главное меню")))
	assert.Equal(t, []string{"nav"}, marks)
}

func TestRouter_NavigationShadowsStateHandler(t *testing.T) {
	fsm := testMachine()
	require.NoError(t, fsm.SetState(context.Background(), 1, state.StateCountry))

	var marks []string
	dispatcher := NewDispatcher(fsm, testLogger())
	dispatcher.RegisterStateHandler(state.StateCountry, markingHandler(&marks, "state"))

	router := NewRouter(dispatcher, testLogger())
	router.RegisterNavigation("Назад к странам", markingHandler(&marks, "nav"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "Назад к странам")))
	assert.Equal(t, []string{"nav"}, marks)
}

func TestRouter_StateDispatch(t *testing.T) {
	fsm := testMachine()
	require.NoError(t, fsm.SetState(context.Background(), 1, state.StateCountry))

	var marks []string
	dispatcher := NewDispatcher(fsm, testLogger())
	dispatcher.RegisterStateHandler(state.StateCountry, markingHandler(&marks, "state"))

	router := NewRouter(dispatcher, testLogger())
	router.SetDefault(markingHandler(&marks, "default"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "Армения")))
	assert.Equal(t, []string{"state"}, marks)
}

func TestRouter_DefaultWhenNothingMatches(t *testing.T) {
	var marks []string
	router := NewRouter(NewDispatcher(testMachine(), testLogger()), testLogger())
	router.SetDefault(markingHandler(&marks, "default"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "случайный текст")))
	assert.Equal(t, []string{"default"}, marks)
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var marks []string
	router := NewRouter(nil, testLogger())

	mw := func(name string) handlers.Middleware {
		return func(next handlers.Handler) handlers.Handler {
			return func(c telebot.Context) error {
				marks = append(marks, name)
				return next(c)
			}
		}
	}

	router.Use(mw("first"))
	router.Use(mw("second"))
	router.RegisterCommand("/start", markingHandler(&marks, "handler"))

	require.NoError(t, router.Route(testutil.NewFakeContext(1, "/start")))
	assert.Equal(t, []string{"first", "second", "handler"}, marks)
}
