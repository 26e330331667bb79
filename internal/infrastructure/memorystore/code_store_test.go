package memorystore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

func TestCodeStore_EvictsAfterRetention(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewCodeStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, entity.VerificationRecord{Phone: "0501234567", Code: "4821", ExpiresAt: now.Add(5 * time.Minute)}, 10*time.Minute))

	now = now.Add(9 * time.Minute)
	got, err := store.Get(ctx, "0501234567")
	require.NoError(t, err)
	require.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = store.Get(ctx, "0501234567")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCodeStore_ConcurrentDeleteHasOneWinner(t *testing.T) {
	store := NewCodeStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, entity.VerificationRecord{Phone: "0501234567", Code: "4821"}, time.Minute))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := store.Delete(ctx, "0501234567", "4821")
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestCodeStore_DeleteRequiresMatchingCode(t *testing.T) {
	store := NewCodeStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, entity.VerificationRecord{Phone: "0501234567", Code: "2222"}, time.Minute))

	ok, err := store.Delete(ctx, "0501234567", "1111")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Get(ctx, "0501234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2222", got.Code)

	ok, err = store.Delete(ctx, "0501234567", "2222")
	require.NoError(t, err)
	assert.True(t, ok)
}
