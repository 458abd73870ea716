package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisStorage_SetAndGet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	storage := NewRedisStorage(client, testLogger())

	ctx := context.Background()
	session := &Session{
		UserID:       123,
		CurrentState: StateBank,
		Country:      "Казахстан",
	}

	err := storage.SetState(ctx, session.UserID, session)
	assert.NoError(t, err)

	result, err := storage.GetState(ctx, session.UserID)
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, session.UserID, result.UserID)
		assert.Equal(t, session.CurrentState, result.CurrentState)
		assert.Equal(t, session.Country, result.Country)
		assert.False(t, result.UpdatedAt.IsZero())
	}
}

func TestRedisStorage_GetNotFound(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	storage := NewRedisStorage(client, testLogger())

	session, err := storage.GetState(context.Background(), 999)
	assert.Nil(t, session)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStorage_ClearState(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	storage := NewRedisStorage(client, testLogger())

	ctx := context.Background()
	session := &Session{
		UserID:       456,
		CurrentState: StateDetails,
		Country:      "Грузия",
		Bank:         "TBC",
	}

	err := storage.SetState(ctx, session.UserID, session)
	assert.NoError(t, err)

	err = storage.ClearState(ctx, session.UserID)
	assert.NoError(t, err)

	result, err := storage.GetState(ctx, session.UserID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStorage_GetAllStates(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	t.Cleanup(cleanup)

	storage := NewRedisStorage(client, testLogger())
	ctx := context.Background()

	sessions := []*Session{
		{UserID: 1, CurrentState: StateCountry},
		{UserID: 2, CurrentState: StateBank, Country: "Армения"},
		{UserID: 3, CurrentState: StateDetails, Country: "Грузия", Bank: "TBC"},
	}
	for _, s := range sessions {
		assert.NoError(t, storage.SetState(ctx, s.UserID, s))
	}

	all, err := storage.GetAllStates(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, len(sessions))

	byID := make(map[int64]*Session, len(all))
	for _, s := range all {
		byID[s.UserID] = s
	}
	assert.Equal(t, StateBank, byID[2].CurrentState)
	assert.Equal(t, "Армения", byID[2].Country)
}
