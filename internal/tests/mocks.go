package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"checkout/internal/domain"
	"checkout/internal/repository"
	"checkout/internal/workflow"
)

// ──────────────────────────────────────────────
// MOCK PROMO REPOSITORY
// ──────────────────────────────────────────────

// MockPromoRepository is a mock implementation of PromoRepository.
type MockPromoRepository struct {
	mu     sync.RWMutex
	promos map[string]*domain.PromoCode // keyed by ID

	// Counters for verification
	GetByCodeCallCount      int32
	IncrementUsageCallCount int32

	// Error injection
	GetByCodeError      error
	IncrementUsageError error
}

// NewMockPromoRepository creates a new mock promo repository.
func NewMockPromoRepository() *MockPromoRepository {
	return &MockPromoRepository{
		promos: make(map[string]*domain.PromoCode),
	}
}

// AddPromo adds a promo code to the mock repository.
func (m *MockPromoRepository) AddPromo(promo *domain.PromoCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promos[promo.ID] = promo
}

func (m *MockPromoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.promos {
		if strings.EqualFold(existing.Code, promo.Code) {
			return repository.ErrDuplicateCode
		}
	}
	copy := *promo
	m.promos[promo.ID] = &copy
	return nil
}

func (m *MockPromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	atomic.AddInt32(&m.GetByCodeCallCount, 1)
	if m.GetByCodeError != nil {
		return nil, m.GetByCodeError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, promo := range m.promos {
		if strings.EqualFold(promo.Code, code) {
			copy := *promo
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPromoRepository) GetByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	promo, ok := m.promos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *promo
	return &copy, nil
}

func (m *MockPromoRepository) GetAll(ctx context.Context) ([]*domain.PromoCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.PromoCode, 0, len(m.promos))
	for _, promo := range m.promos {
		copy := *promo
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockPromoRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	promo, ok := m.promos[id]
	if !ok {
		return repository.ErrNotFound
	}
	promo.IsActive = active
	return nil
}

// IncrementUsage mirrors the SQL guard: the cap is re-checked at increment
// time under the lock.
func (m *MockPromoRepository) IncrementUsage(ctx context.Context, id string) error {
	atomic.AddInt32(&m.IncrementUsageCallCount, 1)
	if m.IncrementUsageError != nil {
		return m.IncrementUsageError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	promo, ok := m.promos[id]
	if !ok {
		return repository.ErrNotFound
	}
	if promo.MaxUsage != nil && promo.CurrentUsage >= *promo.MaxUsage {
		return repository.ErrUsageExhausted
	}
	promo.CurrentUsage++
	return nil
}

func (m *MockPromoRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.promos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.promos, id)
	return nil
}

// GetPromo returns a promo for test assertions.
func (m *MockPromoRepository) GetPromo(id string) *domain.PromoCode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.promos[id]
}

// ──────────────────────────────────────────────
// MOCK CONFIG REPOSITORY
// ──────────────────────────────────────────────

// MockConfigRepository is a mock implementation of ConfigRepository.
type MockConfigRepository struct {
	mu     sync.RWMutex
	values map[string]string

	GetValuesCallCount int32

	// Error injection
	GetValuesError error
}

// NewMockConfigRepository creates a new mock config repository.
func NewMockConfigRepository() *MockConfigRepository {
	return &MockConfigRepository{
		values: make(map[string]string),
	}
}

// SetValue seeds a config value.
func (m *MockConfigRepository) SetValue(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MockConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func (m *MockConfigRepository) GetValues(ctx context.Context, keys []string) (map[string]string, error) {
	atomic.AddInt32(&m.GetValuesCallCount, 1)
	if m.GetValuesError != nil {
		return nil, m.GetValuesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]string)
	for _, key := range keys {
		if value, ok := m.values[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.CheckoutSession

	SaveCallCount int32

	// Error injection
	SaveError error
	GetError  error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]*domain.CheckoutSession),
	}
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copy := *session
	return &copy, nil
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *session
	m.sessions[session.ID] = &copy
	return nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// GetSession returns a stored session for test assertions.
func (m *MockSessionStore) GetSession(id string) *domain.CheckoutSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// HoldLocks makes every acquisition fail, simulating a concurrent holder.
	HoldLocks bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireConfirmLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HoldLocks || m.locks[sessionID] {
		return false, nil
	}
	m.locks[sessionID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseConfirmLock(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, sessionID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CONFIG CACHE
// ──────────────────────────────────────────────

// MockConfigCache is an in-memory implementation of ConfigCacheInterface.
type MockConfigCache struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMockConfigCache creates a new mock config cache.
func NewMockConfigCache() *MockConfigCache {
	return &MockConfigCache{
		values: make(map[string]string),
	}
}

func (m *MockConfigCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MockConfigCache) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockConfigCache) GetMany(ctx context.Context, keys []string) (map[string]string, []string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]string)
	var missing []string
	for _, key := range keys {
		if value, ok := m.values[key]; ok {
			result[key] = value
		} else {
			missing = append(missing, key)
		}
	}
	return result, missing, nil
}

func (m *MockConfigCache) SetMany(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range values {
		m.values[key] = value
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT INITIATOR
// ──────────────────────────────────────────────

// MockPaymentInitiator is a mock implementation of workflow.PaymentInitiator.
type MockPaymentInitiator struct {
	mu sync.Mutex

	InitiateCallCount int32

	// Result/error injection
	Result *workflow.InitiationResult
	Err    error

	// LastRequest records the most recent initiation payload for assertions.
	LastRequest *workflow.InitiatePaymentRequest
}

// NewMockPaymentInitiator creates a mock initiator returning the given redirect.
func NewMockPaymentInitiator(redirectURL string) *MockPaymentInitiator {
	return &MockPaymentInitiator{
		Result: &workflow.InitiationResult{RedirectURL: redirectURL},
	}
}

func (m *MockPaymentInitiator) InitiatePayment(ctx context.Context, req workflow.InitiatePaymentRequest) (*workflow.InitiationResult, error) {
	atomic.AddInt32(&m.InitiateCallCount, 1)
	m.mu.Lock()
	reqCopy := req
	m.LastRequest = &reqCopy
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT VERIFIER
// ──────────────────────────────────────────────

// MockPaymentVerifier is a mock implementation of workflow.PaymentVerifier.
type MockPaymentVerifier struct {
	VerifyCallCount int32

	Response *workflow.VerificationResponse
	Err      error

	LastPaymentID string
}

func (m *MockPaymentVerifier) VerifyPayment(ctx context.Context, paymentID string) (*workflow.VerificationResponse, error) {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.LastPaymentID = paymentID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}
