package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStorage_SetAndGet(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	session := &Session{UserID: 1, CurrentState: StateCountry}
	assert.NoError(t, storage.SetState(ctx, session.UserID, session))

	result, err := storage.GetState(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, StateCountry, result.CurrentState)

	// Mutating the returned copy must not leak into storage.
	result.Country = "Армения"

	again, err := storage.GetState(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, again.Country)
}

func TestMemoryStorage_GetNotFound(t *testing.T) {
	storage := NewMemoryStorage()

	session, err := storage.GetState(context.Background(), 42)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestMemoryStorage_ClearAbsentIsNoError(t *testing.T) {
	storage := NewMemoryStorage()

	assert.NoError(t, storage.ClearState(context.Background(), 42))
}

func TestMemoryStorage_GetAllStates(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	assert.NoError(t, storage.SetState(ctx, 1, &Session{UserID: 1, CurrentState: StateCountry}))
	assert.NoError(t, storage.SetState(ctx, 2, &Session{UserID: 2, CurrentState: StateBank}))

	all, err := storage.GetAllStates(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
