package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userLockKeyPattern = "user:lock:%d"
	lockTTL            = 5 * time.Second
)

var (
	// ErrInvalidTransition indicates that a requested flow transition is not allowed.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrStateNotFound indicates that a user session does not exist.
	ErrStateNotFound = errors.New("user session not found")
	// ErrStateLocked indicates that a concurrent operation already holds the lock.
	ErrStateLocked = errors.New("session is locked, try again later")
)

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe transitions.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}

// StateMachine describes the operations supported by the flow controller.
type StateMachine interface {
	// GetState returns the user's session or ErrStateNotFound.
	GetState(ctx context.Context, userID int64) (*Session, error)
	// SetState overwrites the session with a fresh one in the given state,
	// bypassing transition validation. Starting /buy anew always restarts
	// the flow this way.
	SetState(ctx context.Context, userID int64, state State) error
	// TransitionTo validates and performs a transition, applying update to
	// the session (if non-nil) before saving.
	TransitionTo(ctx context.Context, userID int64, newState State, update func(*Session)) error
	// ClearState deletes the session.
	ClearState(ctx context.Context, userID int64) error
	// GetAllStates returns every stored session.
	GetAllStates(ctx context.Context) ([]*Session, error)
}

// machine is a concrete StateMachine backed by Storage. Transitions for one
// user are mutually exclusive: a Redis SetNX lock when Redis is configured,
// a per-user in-process mutex otherwise.
type machine struct {
	storage     Storage
	log         *slog.Logger
	redisClient *redis.Client
	localLocks  sync.Map // userID -> *sync.Mutex
}

// NewStateMachine creates a flow controller using the provided storage
// backend. redisClient is optional; without it locking stays in-process.
func NewStateMachine(storage Storage, log *slog.Logger, redisClient *redis.Client) StateMachine {
	if log == nil {
		log = slog.Default()
	}

	return &machine{
		storage:     storage,
		log:         log,
		redisClient: redisClient,
	}
}

// GetState proxies to the underlying storage implementation.
func (m *machine) GetState(ctx context.Context, userID int64) (*Session, error) {
	return m.storage.GetState(ctx, userID)
}

// GetAllStates returns every stored session.
func (m *machine) GetAllStates(ctx context.Context) ([]*Session, error) {
	return m.storage.GetAllStates(ctx)
}

// SetState replaces the user's session wholesale with a fresh record.
func (m *machine) SetState(ctx context.Context, userID int64, state State) error {
	unlock, err := m.lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	return m.storage.SetState(ctx, userID, &Session{
		UserID:       userID,
		CurrentState: state,
	})
}

// TransitionTo changes the state if the transition is allowed, guarded by the
// per-user lock.
func (m *machine) TransitionTo(ctx context.Context, userID int64, newState State, update func(*Session)) error {
	unlock, err := m.lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	current := StateIdle
	session := &Session{UserID: userID}

	stored, err := m.storage.GetState(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			return err
		}
	} else if stored != nil {
		current = stored.CurrentState
		session = stored
	}

	if !IsTransitionAllowed(current, newState) {
		m.log.Warn("invalid state transition", "user_id", userID, "from", current, "to", newState)
		return ErrInvalidTransition
	}

	session.CurrentState = newState
	if update != nil {
		update(session)
	}

	transitionRecorder(string(current), string(newState))

	return m.storage.SetState(ctx, userID, session)
}

// ClearState removes the stored session while holding the lock.
func (m *machine) ClearState(ctx context.Context, userID int64) error {
	unlock, err := m.lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	return m.storage.ClearState(ctx, userID)
}

func (m *machine) lock(ctx context.Context, userID int64) (func(), error) {
	if m.redisClient == nil {
		muAny, _ := m.localLocks.LoadOrStore(userID, &sync.Mutex{})
		mu := muAny.(*sync.Mutex)
		mu.Lock()
		return mu.Unlock, nil
	}

	key := fmt.Sprintf(userLockKeyPattern, userID)
	acquired, err := m.redisClient.SetNX(ctx, key, 1, lockTTL).Result()
	if err != nil {
		m.log.Error("failed to acquire user session lock", "user_id", userID, "error", err)
		return nil, err
	}

	if !acquired {
		m.log.Warn("user session lock already held", "user_id", userID)
		return nil, ErrStateLocked
	}

	return func() {
		if err := m.redisClient.Del(ctx, key).Err(); err != nil {
			m.log.Error("failed to release user session lock", "user_id", userID, "error", err)
		}
	}, nil
}
