package application_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prcelebration/internal/application"
)

func TestGitHubClientProvider_GetReturnsInitialClient(t *testing.T) {
	client := &mockNotificationClient{}
	provider := application.NewGitHubClientProvider(client)

	got := provider.Get()
	assert.Same(t, client, got)
}

func TestGitHubClientProvider_ReplaceSwapsClient(t *testing.T) {
	original := &mockNotificationClient{}
	replacement := &mockNotificationClient{}

	provider := application.NewGitHubClientProvider(original)
	assert.Same(t, original, provider.Get())

	provider.Replace(replacement)
	assert.Same(t, replacement, provider.Get())
}

func TestGitHubClientProvider_HasClientReturnsFalseForNil(t *testing.T) {
	provider := application.NewGitHubClientProvider(nil)

	require.False(t, provider.HasClient())

	client := &mockNotificationClient{}
	provider.Replace(client)

	require.True(t, provider.HasClient())
}

func TestGitHubClientProvider_ConcurrentGetReplaceSafety(t *testing.T) {
	client1 := &mockNotificationClient{}
	client2 := &mockNotificationClient{}
	provider := application.NewGitHubClientProvider(client1)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines * 2)

	// Half the goroutines read, half write.
	for range goroutines {
		go func() {
			defer wg.Done()
			got := provider.Get()
			// Should be either client1 or client2, never nil.
			assert.NotNil(t, got)
		}()
		go func() {
			defer wg.Done()
			provider.Replace(client2)
		}()
	}

	wg.Wait()

	// After all goroutines finish, client should be client2.
	assert.Same(t, client2, provider.Get())
}

func TestGitHubClientProvider_ReplaceWithNilDisablesChecks(t *testing.T) {
	provider := application.NewGitHubClientProvider(&mockNotificationClient{})

	provider.Replace(nil)

	assert.False(t, provider.HasClient())
	assert.Nil(t, provider.Get())
}
