package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/kartabot/kartabot/internal/bot/handlers"
	"github.com/kartabot/kartabot/internal/state"
)

// Router dispatches commands, menu buttons, navigation, and state-aware
// updates. Matching runs in a fixed priority order: commands first, then
// exact menu buttons, then navigation keywords (only while an ordering
// session exists), then the state dispatcher, then the default handler.
// Navigation labels therefore shadow same-named catalog entries.
type Router struct {
	mu             sync.RWMutex
	commands       map[string]handlers.Handler
	buttons        map[string]handlers.Handler
	navigation     map[string]handlers.Handler
	dispatcher     *Dispatcher
	defaultHandler handlers.Handler
	middlewares    []handlers.Middleware
	log            *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(dispatcher *Dispatcher, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:    make(map[string]handlers.Handler),
		buttons:     make(map[string]handlers.Handler),
		navigation:  make(map[string]handlers.Handler),
		dispatcher:  dispatcher,
		middlewares: make([]handlers.Middleware, 0),
		log:         log,
	}
}

// RegisterCommand registers a handler for a bot command.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = h
}

// RegisterButton registers a handler for an exact menu button label. Buttons
// match in every state, session or not.
func (r *Router) RegisterButton(label string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons[label] = h
}

// RegisterNavigation registers a handler for a navigation keyword. Navigation
// matches only while the user has an ordering session.
func (r *Router) RegisterNavigation(label string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigation[label] = h
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// SetDefault sets the fallback handler for unmatched updates.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultHandler = h
}

// Route directs the incoming text update to the appropriate handler.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	text := strings.TrimSpace(c.Text())

	if strings.HasPrefix(text, "/") {
		if handler := r.lookup(r.commands, commandName(text)); handler != nil {
			return r.executeHandler(handler, c)
		}
	}

	if handler := r.lookup(r.buttons, text); handler != nil {
		return r.executeHandler(handler, c)
	}

	if handler := r.lookup(r.navigation, text); handler != nil && r.hasSession(c) {
		return r.executeHandler(handler, c)
	}

	if r.dispatcher != nil {
		handled := r.stateHandlerExists(c)
		if err := r.dispatcher.Dispatch(c); err != nil {
			return err
		}
		if handled {
			return nil
		}
	}

	if handler := r.getDefaultHandler(); handler != nil {
		return r.executeHandler(handler, c)
	}

	return nil
}

// Wrap applies the middleware chain to a standalone handler, used for update
// kinds that bypass text routing such as contacts and web app data.
func (r *Router) Wrap(h handlers.Handler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return r.executeHandler(h, c)
	}
}

// commandName strips the bot mention suffix, "/buy@kartabot" routes as "/buy".
func commandName(text string) string {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

func (r *Router) hasSession(c telebot.Context) bool {
	if r.dispatcher == nil || c.Sender() == nil {
		return false
	}

	_, err := r.dispatcher.fsm.GetState(context.Background(), c.Sender().ID)
	return err == nil
}

func (r *Router) stateHandlerExists(c telebot.Context) bool {
	if r.dispatcher == nil || c.Sender() == nil {
		return false
	}

	currentState, err := r.dispatcher.currentState(c)
	if err != nil && !errors.Is(err, state.ErrStateNotFound) {
		return false
	}

	return r.dispatcher.getHandler(currentState) != nil
}

func (r *Router) executeHandler(h handlers.Handler, c telebot.Context) error {
	wrapped := r.applyMiddlewares(h)
	if wrapped == nil {
		return nil
	}
	return wrapped(c)
}

func (r *Router) lookup(registry map[string]handlers.Handler, key string) handlers.Handler {
	r.mu.RLock()
	handler := registry[key]
	r.mu.RUnlock()
	return handler
}

func (r *Router) getDefaultHandler() handlers.Handler {
	r.mu.RLock()
	handler := r.defaultHandler
	r.mu.RUnlock()
	return handler
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
