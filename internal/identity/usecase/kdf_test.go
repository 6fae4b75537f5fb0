package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_KDFSlotsBounded(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.uc.kdf.TryAcquire(defaultMaxConcurrentKDF))
	defer f.uc.kdf.Release(defaultMaxConcurrentKDF)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.hashPassword(ctx, "password1")
	assert.ErrorIs(t, err, context.Canceled)

	ok, err := f.uc.verifyPassword(ctx, dummyCredential, "password1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}
