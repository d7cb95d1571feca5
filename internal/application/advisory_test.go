package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prcelebration/internal/application"
)

func TestTokenAdvisory_RaisesOnce(t *testing.T) {
	ctx := context.Background()
	store := newMockFlagStore()
	advisory := application.NewTokenAdvisory(store)

	assert.True(t, advisory.Raise(ctx))
	assert.False(t, advisory.Raise(ctx))
	assert.False(t, advisory.Raise(ctx))

	assert.True(t, store.flags["token_advisory_shown"])
	assert.Equal(t, 1, store.sets)
}

func TestTokenAdvisory_HonorsPersistedFlag(t *testing.T) {
	store := newMockFlagStore()
	store.flags["token_advisory_shown"] = true

	advisory := application.NewTokenAdvisory(store)
	assert.False(t, advisory.Raise(context.Background()))
}

func TestTokenAdvisory_ResetAllowsNextRaise(t *testing.T) {
	ctx := context.Background()
	store := newMockFlagStore()
	advisory := application.NewTokenAdvisory(store)

	require.True(t, advisory.Raise(ctx))
	require.NoError(t, advisory.Reset(ctx))
	assert.False(t, store.flags["token_advisory_shown"])

	assert.True(t, advisory.Raise(ctx))
}

func TestTokenAdvisory_StoreFailureStillRaisesOnce(t *testing.T) {
	ctx := context.Background()
	store := newMockFlagStore()
	store.getErr = errors.New("disk gone")
	advisory := application.NewTokenAdvisory(store)

	assert.True(t, advisory.Raise(ctx))
	assert.False(t, advisory.Raise(ctx))
}

func TestTokenAdvisory_InMemoryOnly(t *testing.T) {
	ctx := context.Background()
	advisory := application.NewTokenAdvisory(nil)

	assert.True(t, advisory.Raise(ctx))
	assert.False(t, advisory.Raise(ctx))
	require.NoError(t, advisory.Reset(ctx))
	assert.True(t, advisory.Raise(ctx))
}
