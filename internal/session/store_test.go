// internal/session/store_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minus-backend/internal/common/logger"
	"minus-backend/internal/questionnaire"
)

func createTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, "minus:session:", time.Hour, logger.NewTestLogger(t))
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := createTestStore(t)
	ctx := context.Background()

	answers := questionnaire.AnswerSet{
		"name":   "Asha",
		"phone":  "9876543210",
		"income": "1,50,000",
	}

	store.Save(ctx, "9876543210", answers)
	require.True(t, mr.Exists("minus:session:9876543210"))

	loaded, ok := store.Load(ctx, "9876543210")
	require.True(t, ok)
	assert.Equal(t, answers, loaded)

	store.Clear(ctx, "9876543210")
	assert.False(t, mr.Exists("minus:session:9876543210"))

	_, ok = store.Load(ctx, "9876543210")
	assert.False(t, ok)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := createTestStore(t)
	ctx := context.Background()

	store.Save(ctx, "draft", questionnaire.AnswerSet{"name": "Asha"})

	mr.FastForward(2 * time.Hour)
	_, ok := store.Load(ctx, "draft")
	assert.False(t, ok)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := createTestStore(t)

	loaded, ok := store.Load(context.Background(), "never-saved")
	assert.False(t, ok)
	assert.Nil(t, loaded)
}

func TestRedisStoreFailuresDoNotPropagate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "minus:session:", time.Hour, logger.NewNoOpLogger())
	ctx := context.Background()

	mock.ExpectSet("minus:session:draft", []byte(`{"name":"Asha"}`), time.Hour).
		SetErr(assert.AnError)
	store.Save(ctx, "draft", questionnaire.AnswerSet{"name": "Asha"})

	mock.ExpectGet("minus:session:draft").SetErr(assert.AnError)
	_, ok := store.Load(ctx, "draft")
	assert.False(t, ok)

	mock.ExpectDel("minus:session:draft").SetErr(assert.AnError)
	store.Clear(ctx, "draft")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopStore(t *testing.T) {
	store := NoopStore{}
	ctx := context.Background()

	store.Save(ctx, "k", questionnaire.AnswerSet{"name": "x"})
	_, ok := store.Load(ctx, "k")
	assert.False(t, ok)
	store.Clear(ctx, "k")
}
