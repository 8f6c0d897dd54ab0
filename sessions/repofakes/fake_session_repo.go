package fakesessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-postlogin-service/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory sessions.Repo for tests. Error fields,
// when set, are returned by the corresponding method to simulate store
// failures. Stored records round-trip through the wire form so tests
// exercise the same serialization path as the Redis implementation.
type FakeSessionRepo struct {
	records map[string][]byte
	ttls    map[string]time.Duration
	lock    sync.RWMutex

	PutErr  error
	GetErr  error
	PingErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		records: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (sr *FakeSessionRepo) Put(_ context.Context, record *sessions.SessionData, ttl time.Duration) error {
	if sr.PutErr != nil {
		return sr.PutErr
	}

	value, err := record.Marshal()
	if err != nil {
		return err
	}

	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.records[sessions.Key(record.ChatUsername)] = value
	sr.ttls[sessions.Key(record.ChatUsername)] = ttl
	return nil
}

func (sr *FakeSessionRepo) Get(_ context.Context, chatUsername string) (*sessions.SessionData, error) {
	if sr.GetErr != nil {
		return nil, sr.GetErr
	}

	sr.lock.RLock()
	defer sr.lock.RUnlock()

	value, ok := sr.records[sessions.Key(chatUsername)]
	if !ok {
		return nil, sessions.ErrNotFound
	}

	record, err := sessions.Unmarshal(value)
	if err != nil {
		return nil, sessions.ErrCorruptRecord
	}
	return record, nil
}

func (sr *FakeSessionRepo) Ping(_ context.Context) error {
	return sr.PingErr
}

// SeedRaw stores an arbitrary value under a key, bypassing serialization.
// Used to test corrupt-record handling.
func (sr *FakeSessionRepo) SeedRaw(key string, value []byte) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.records[key] = value
}

// TTLOf reports the TTL recorded by the last Put for a chat username.
func (sr *FakeSessionRepo) TTLOf(chatUsername string) time.Duration {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	return sr.ttls[sessions.Key(chatUsername)]
}
