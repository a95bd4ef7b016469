package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/audit-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/audit-mgmt-api/pkg/errors"
)

const (
	programID  = "11111111-1111-4111-8111-111111111111"
	testID     = "22222222-2222-4222-8222-222222222222"
	processA   = "33333333-3333-4333-8333-333333333333"
	controlA   = "44444444-4444-4444-8444-444444444444"
	controlB   = "55555555-5555-4555-8555-555555555555"
	userA      = "66666666-6666-4666-8666-666666666666"
	userB      = "77777777-7777-4777-8777-777777777777"
	eventID    = "88888888-8888-4888-8888-888888888888"
	findingID  = "99999999-9999-4999-8999-999999999999"
	companyID  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	permission = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

type auditRecorder struct {
	mu   sync.Mutex
	logs []*models.AuditLog
}

func (a *auditRecorder) Create(_ context.Context, log *models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logs = append(a.logs, log)
	return nil
}

func (a *auditRecorder) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.logs))
	for i, l := range a.logs {
		out[i] = l.Action + ":" + l.Resource
	}
	return out
}

// memCacheRepo is an in-memory CacheRepository that round-trips values through JSON like Redis does.
type memCacheRepo struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{data: map[string][]byte{}}
}

func (m *memCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	m.sets++
	return nil
}

func (m *memCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	for key := range m.data {
		if key == pattern || (wildcard && strings.HasPrefix(key, prefix)) {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *memCacheRepo) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type forgetRecorder struct {
	calls []string
}

func (f *forgetRecorder) Forget(_ context.Context, userID string) {
	f.calls = append(f.calls, userID)
}

type activeUsers map[string]bool

func (u activeUsers) CountActiveByIDs(_ context.Context, ids []string) (int, error) {
	count := 0
	for _, id := range ids {
		if u[id] {
			count++
		}
	}
	return count, nil
}

func notFound() error {
	return sql.ErrNoRows
}
