// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memSessionRepo is a small in-memory implementation used by unit tests.
type memSessionRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{store: make(map[int64]*model.Session)}
}

func (m *memSessionRepo) Find(ctx context.Context, chatID int64) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionRepo) Save(ctx context.Context, chatID int64, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[chatID] = &cp
	return nil
}

type memLedger struct {
	mu      sync.RWMutex
	store   map[string]*model.PendingPayment
	saveErr error
}

func newMemLedger() *memLedger {
	return &memLedger{store: make(map[string]*model.PendingPayment)}
}

func (m *memLedger) Save(ctx context.Context, p *model.PendingPayment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memLedger) Find(ctx context.Context, id string) (*model.PendingPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memLedger) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *memLedger) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type memRecordRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.UserPlanRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{store: make(map[int64]*model.UserPlanRecord)}
}

func (m *memRecordRepo) Save(ctx context.Context, r *model.UserPlanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ChatID] = &cp
	return nil
}

func (m *memRecordRepo) Find(ctx context.Context, chatID int64) (*model.UserPlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRecordRepo) All(ctx context.Context) ([]*model.UserPlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.UserPlanRecord, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

// mockProvisioner records calls and can fail selectively per region.
type mockProvisioner struct {
	mu      sync.Mutex
	calls   []model.Region
	failOn  map[model.Region]error
	nextKey int
}

func newMockProvisioner() *mockProvisioner {
	return &mockProvisioner{failOn: make(map[model.Region]error)}
}

func (m *mockProvisioner) CreateKey(ctx context.Context, region model.Region, ownerLabel string, quotaBytes int64) (*model.IssuedAccess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, region)
	if err, ok := m.failOn[region]; ok {
		return nil, err
	}
	m.nextKey++
	return &model.IssuedAccess{
		Region:     region,
		AccessURL:  fmt.Sprintf("ss://key-%d@%s.example:443", m.nextKey, region),
		QuotaBytes: quotaBytes,
		KeyID:      fmt.Sprintf("%d", m.nextKey),
	}, nil
}

func (m *mockProvisioner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockNotifier captures everything the use cases try to say.
type mockNotifier struct {
	mu       sync.Mutex
	texts    map[int64][]string
	buttons  map[int64][]string // message text per SendButtons call
	keySends map[int64][][]model.IssuedAccess
	edits    []string
	forwards int
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		texts:    make(map[int64][]string),
		buttons:  make(map[int64][]string),
		keySends: make(map[int64][][]model.IssuedAccess),
	}
}

func (m *mockNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts[chatID] = append(m.texts[chatID], text)
	return nil
}

func (m *mockNotifier) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[chatID] = append(m.buttons[chatID], text)
	return nil
}

func (m *mockNotifier) SendAccessKeys(ctx context.Context, chatID int64, lang string, keys []model.IssuedAccess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := append([]model.IssuedAccess(nil), keys...)
	m.keySends[chatID] = append(m.keySends[chatID], cp)
	return nil
}

func (m *mockNotifier) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, text)
	return nil
}

func (m *mockNotifier) ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forwards++
	return nil
}

// stubTranslator echoes keys so tests can assert on them without locale data.
type stubTranslator struct{}

func (stubTranslator) T(lang, key string, args ...interface{}) string { return key }
