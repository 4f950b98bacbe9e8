// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"minus-backend/internal/common/logger"
	"minus-backend/internal/common/metrics"
	"minus-backend/internal/questionnaire"
)

// Store caches in-progress answer sets so an interrupted run can resume.
// Every operation is best-effort: failures are logged and counted, never
// propagated, because losing a cached draft must not block a submission.
type Store interface {
	Save(ctx context.Context, key string, answers questionnaire.AnswerSet)
	Load(ctx context.Context, key string) (questionnaire.AnswerSet, bool)
	Clear(ctx context.Context, key string)
}

// RedisStore keeps drafts in Redis under a shared prefix with a TTL.
type RedisStore struct {
	client    redis.Cmdable
	keyPrefix string
	ttl       time.Duration
	log       logger.Logger
}

func NewRedisStore(client redis.Cmdable, keyPrefix string, ttl time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		log:       log,
	}
}

func (s *RedisStore) Save(ctx context.Context, key string, answers questionnaire.AnswerSet) {
	data, err := json.Marshal(answers)
	if err != nil {
		s.fail("save", key, err)
		return
	}

	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		s.fail("save", key, err)
		return
	}
	metrics.SessionOps.WithLabelValues("save", "ok").Inc()
}

func (s *RedisStore) Load(ctx context.Context, key string) (questionnaire.AnswerSet, bool) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.fail("load", key, err)
		}
		return nil, false
	}

	var answers questionnaire.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		s.fail("load", key, err)
		return nil, false
	}

	metrics.SessionOps.WithLabelValues("load", "ok").Inc()
	return answers, true
}

func (s *RedisStore) Clear(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		s.fail("clear", key, err)
		return
	}
	metrics.SessionOps.WithLabelValues("clear", "ok").Inc()
}

func (s *RedisStore) fail(op, key string, err error) {
	metrics.SessionOps.WithLabelValues(op, "error").Inc()
	s.log.WithError(err).Warn("session store operation failed", map[string]interface{}{
		"op":  op,
		"key": key,
	})
}

// NoopStore satisfies Store when no cache is configured.
type NoopStore struct{}

func (NoopStore) Save(context.Context, string, questionnaire.AnswerSet) {}

func (NoopStore) Load(context.Context, string) (questionnaire.AnswerSet, bool) {
	return nil, false
}

func (NoopStore) Clear(context.Context, string) {}
