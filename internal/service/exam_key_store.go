package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ExamKey is the transient answer-key snapshot issued at exam start. It is
// the only scoring source at submission so the client is never trusted with
// correctness data. Answers maps question id to the correct choice id; 0
// means the question had no correct choice when the version was authored and
// can never be answered correctly.
type ExamKey struct {
	ProblemSetID uint          `json:"problemSetId"`
	VersionID    uint          `json:"versionId"`
	Answers      map[uint]uint `json:"answers"`
	IssuedAt     time.Time     `json:"issuedAt"`
}

// ExamKeyStore holds at most one in-flight exam key per principal.
// Put overwrites: last Start wins for concurrent tabs sharing a session.
type ExamKeyStore interface {
	Put(ctx context.Context, userID uint, key *ExamKey) error
	Get(ctx context.Context, userID uint) (*ExamKey, error)
	Delete(ctx context.Context, userID uint) error
}

type RedisExamKeyStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisExamKeyStore(client *redis.Client, ttl time.Duration) *RedisExamKeyStore {
	return &RedisExamKeyStore{Client: client, TTL: ttl}
}

func examKeyName(userID uint) string {
	return fmt.Sprintf("exam:key:%d", userID)
}

func (s *RedisExamKeyStore) Put(ctx context.Context, userID uint, key *ExamKey) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, examKeyName(userID), data, s.TTL).Err()
}

func (s *RedisExamKeyStore) Get(ctx context.Context, userID uint) (*ExamKey, error) {
	val, err := s.Client.Get(ctx, examKeyName(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var key ExamKey
	if err := json.Unmarshal([]byte(val), &key); err != nil {
		return nil, err
	}
	return &key, nil
}

func (s *RedisExamKeyStore) Delete(ctx context.Context, userID uint) error {
	return s.Client.Del(ctx, examKeyName(userID)).Err()
}

// MemoryExamKeyStore backs tests and single-node deployments without Redis.
type MemoryExamKeyStore struct {
	mu   sync.Mutex
	keys map[uint]*ExamKey
}

func NewMemoryExamKeyStore() *MemoryExamKeyStore {
	return &MemoryExamKeyStore{keys: make(map[uint]*ExamKey)}
}

func (s *MemoryExamKeyStore) Put(_ context.Context, userID uint, key *ExamKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[userID] = key
	return nil
}

func (s *MemoryExamKeyStore) Get(_ context.Context, userID uint) (*ExamKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[userID], nil
}

func (s *MemoryExamKeyStore) Delete(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, userID)
	return nil
}
