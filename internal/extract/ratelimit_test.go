package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterDrainsBucket(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.Close()

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rl.wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
