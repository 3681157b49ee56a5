// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package list_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/progress/list"
)

// # Test Doubles

// fakeStore is an in-memory Store that enforces the unique (user, work)
// constraint the same way the Postgres index does.
type fakeStore struct {
	entries map[string]*list.Entry // keyed by userID + "/" + workID
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*list.Entry)}
}

func key(userID, workID string) string { return userID + "/" + workID }

func (store *fakeStore) Create(_ context.Context, entry *list.Entry) error {
	if _, ok := store.entries[key(entry.UserID, entry.WorkID)]; ok {
		return apperr.Conflict("Work is already on the reading list")
	}
	copied := *entry
	store.entries[key(entry.UserID, entry.WorkID)] = &copied
	return nil
}

func (store *fakeStore) FindByUserAndWork(_ context.Context, userID, workID string) (*list.Entry, error) {
	if entry, ok := store.entries[key(userID, workID)]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Reading list entry")
}

func (store *fakeStore) UpdateStatus(_ context.Context, entry *list.Entry) error {
	stored, ok := store.entries[key(entry.UserID, entry.WorkID)]
	if !ok {
		return apperr.NotFound("Reading list entry")
	}
	stored.Status = entry.Status
	stored.CompletedAt = entry.CompletedAt
	stored.UpdatedAt = entry.UpdatedAt
	return nil
}

func (store *fakeStore) ListByUser(_ context.Context, userID string) ([]list.Entry, error) {
	result := make([]list.Entry, 0)
	for _, entry := range store.entries {
		if entry.UserID == userID {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func newTestService() (*list.Service, *fakeStore) {
	store := newFakeStore()
	return list.NewService(store, slog.Default()), store
}

// # Entry Creation

/*
TestService_Create verifies that a new entry starts in the "reading" status
with the start timestamp set.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.Create(context.Background(), "user-1", "solo-leveling")

	require.NoError(t, err)
	assert.Equal(t, list.StatusReading, entry.Status)
	assert.False(t, entry.StartedAt.IsZero())
	assert.Nil(t, entry.CompletedAt)
}

/*
TestService_Create_Duplicate verifies that adding a listed work again is a
Conflict and does not disturb the original entry.
*/
func TestService_Create_Duplicate(t *testing.T) {
	service, store := newTestService()

	first, err := service.Create(context.Background(), "user-1", "solo-leveling")
	require.NoError(t, err)

	// 1. Second add is rejected with a Conflict
	second, err := service.Create(context.Background(), "user-1", "solo-leveling")
	assert.Nil(t, second)
	assert.True(t, apperr.IsConflict(err))

	// 2. The original entry keeps its identity and start time
	stored := store.entries["user-1/solo-leveling"]
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.StartedAt, stored.StartedAt)

	// 3. The same work on another user's list is unaffected
	_, err = service.Create(context.Background(), "user-2", "solo-leveling")
	assert.NoError(t, err)
}

// # Status Transitions

/*
TestService_Transition_Lifecycle walks an entry through the completion
lifecycle and verifies the completion timestamp follows along.
*/
func TestService_Transition_Lifecycle(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), "user-1", "tower-of-god")
	require.NoError(t, err)

	// 1. Reading -> Completed stamps the completion time
	entry, err := service.Transition(context.Background(), "user-1", "tower-of-god", list.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, list.StatusCompleted, entry.Status)
	require.NotNil(t, entry.CompletedAt)
	assert.WithinDuration(t, time.Now(), *entry.CompletedAt, time.Minute)

	// 2. Completed -> OnHold clears the completion time
	entry, err = service.Transition(context.Background(), "user-1", "tower-of-god", list.StatusOnHold)
	require.NoError(t, err)
	assert.Equal(t, list.StatusOnHold, entry.Status)
	assert.Nil(t, entry.CompletedAt)
}

/*
TestService_Transition_SameStatus verifies that a transition to the current
status is a no-op.
*/
func TestService_Transition_SameStatus(t *testing.T) {
	service, store := newTestService()

	_, err := service.Create(context.Background(), "user-1", "omniscient-reader")
	require.NoError(t, err)

	completed, err := service.Transition(context.Background(), "user-1", "omniscient-reader", list.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	firstCompletion := *completed.CompletedAt

	// Completing an already-completed work must not move the timestamp
	again, err := service.Transition(context.Background(), "user-1", "omniscient-reader", list.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, firstCompletion, *again.CompletedAt)

	stored := store.entries["user-1/omniscient-reader"]
	require.NotNil(t, stored)
	assert.Equal(t, firstCompletion, *stored.CompletedAt)
}

/*
TestService_Transition_NotListed verifies that transitioning a work that is
not on the list reports NotFound.
*/
func TestService_Transition_NotListed(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.Transition(context.Background(), "user-1", "unknown-work", list.StatusDropped)

	assert.Nil(t, entry)
	assert.True(t, apperr.IsNotFound(err))
}

// # Status Validation

/*
TestStatus_Valid verifies which statuses may be persisted on an entry.
*/
func TestStatus_Valid(t *testing.T) {
	assert.True(t, list.StatusReading.Valid())
	assert.True(t, list.StatusCompleted.Valid())
	assert.True(t, list.StatusOnHold.Valid())
	assert.True(t, list.StatusDropped.Valid())

	// not_started is virtual and can never be stored
	assert.False(t, list.StatusNotStarted.Valid())
	assert.False(t, list.Status("finished").Valid())
}
