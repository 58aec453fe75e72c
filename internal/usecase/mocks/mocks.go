// Package mocks provides handwritten in-memory mocks for the use case
// interfaces. Every method can be overridden through its Func field; the
// default behavior is a functional in-memory store, which lets tests assert
// journal/balance invariants end to end without a database.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc      func(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByStatusFunc      func(ctx context.Context, status domain.AccountStatus) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed adds an account directly to the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Status = status
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (m *MockAccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus) ([]*domain.Account, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.Status == status {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	DeleteByRefFunc        func(ctx context.Context, tx usecase.Transaction, refType, refID string) ([]string, error)
	ListByAccountFunc      func(ctx context.Context, accountID string, limit, offset int) ([]*domain.JournalEntry, error)
	ListByRefFunc          func(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error)
	SumByAccountFunc       func(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error)
	SumByAccountAtTimeFunc func(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

// Entries returns a snapshot of all stored entries, ordered by ID.
func (m *MockJournalRepository) Entries() []*domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) DeleteByRef(ctx context.Context, tx usecase.Transaction, refType, refID string) ([]string, error) {
	if m.DeleteByRefFunc != nil {
		return m.DeleteByRefFunc(ctx, tx, refType, refID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	touched := make(map[string]bool)
	for id, e := range m.entries {
		if e.RefType == refType && e.RefID == refID {
			touched[e.AccountID] = true
			delete(m.entries, id)
		}
	}
	var accountIDs []string
	for id := range touched {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)
	return accountIDs, nil
}

func (m *MockJournalRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MockJournalRepository) ListByRef(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error) {
	if m.ListByRefFunc != nil {
		return m.ListByRefFunc(ctx, refType, refID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.JournalEntry
	for _, e := range m.entries {
		if e.RefType == refType && e.RefID == refID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MockJournalRepository) SumByAccount(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (m *MockJournalRepository) SumByAccountAtTime(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	if m.SumByAccountAtTimeFunc != nil {
		return m.SumByAccountAtTimeFunc(ctx, accountID, at)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID && !e.CreatedAt.After(at) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Transfer, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
	ListByPeriodFunc  func(ctx context.Context, from, to time.Time) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

func (m *MockTransferRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transfer, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// MockRateRepository is a mock implementation of RateRepository.
type MockRateRepository struct {
	mu    sync.RWMutex
	rates map[string]*domain.ExchangeRate

	UpsertFunc func(ctx context.Context, rate *domain.ExchangeRate) error
	GetFunc    func(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
	ListFunc   func(ctx context.Context) ([]*domain.ExchangeRate, error)
}

func NewMockRateRepository() *MockRateRepository {
	return &MockRateRepository{
		rates: make(map[string]*domain.ExchangeRate),
	}
}

func rateKey(from, to string) string { return from + "/" + to }

func (m *MockRateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, rate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rateKey(rate.FromCurrency, rate.ToCurrency)] = rate
	return nil
}

func (m *MockRateRepository) Get(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rates[rateKey(from, to)]; ok {
		return r, nil
	}
	return nil, domain.ErrRateNotFound
}

func (m *MockRateRepository) List(ctx context.Context) ([]*domain.ExchangeRate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rates []*domain.ExchangeRate
	for _, r := range m.rates {
		rates = append(rates, r)
	}
	return rates, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository.
type MockSettingsRepository struct {
	mu       sync.RWMutex
	settings *domain.Settings

	GetFunc    func(ctx context.Context) (*domain.Settings, error)
	UpsertFunc func(ctx context.Context, settings *domain.Settings) error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return m.settings, nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
	return nil
}

// MockPaymentMethodSource is a mock implementation of PaymentMethodSource.
type MockPaymentMethodSource struct {
	mu   sync.RWMutex
	keys map[string]bool

	ExistsFunc func(ctx context.Context, key string) (bool, error)
}

func NewMockPaymentMethodSource(keys ...string) *MockPaymentMethodSource {
	m := &MockPaymentMethodSource{keys: make(map[string]bool)}
	for _, k := range keys {
		m.keys[k] = true
	}
	return m
}

func (m *MockPaymentMethodSource) Exists(ctx context.Context, key string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keys[key], nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('a'+m.counter-1))
}

// MockRetrier is a pass-through Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// MockRecorder counts domain events.
type MockRecorder struct {
	mu sync.Mutex

	AccountsCreated    int
	EntriesPosted      int
	TransfersCreated   int
	BalanceRecomputes  int
	DeletedAccountsHit int
	ConversionMisses   []string
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

func (m *MockRecorder) AccountCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountsCreated++
}

func (m *MockRecorder) EntryPosted(kind domain.EntryKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesPosted++
}

func (m *MockRecorder) EntriesDeleted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedAccountsHit += count
}

func (m *MockRecorder) TransferCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TransfersCreated++
}

func (m *MockRecorder) BalanceRecomputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BalanceRecomputes++
}

func (m *MockRecorder) ConversionMiss(pair string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConversionMisses = append(m.ConversionMisses, pair)
}
