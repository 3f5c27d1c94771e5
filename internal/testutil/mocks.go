package testutil

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

// MockRecordGateway is a mock implementation of domain.RecordGateway
type MockRecordGateway struct {
	Records    []*domain.Record
	ByBudget   map[int64][]*domain.Record
	NextID     int64
	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	LastParams url.Values
}

// NewMockRecordGateway creates a new MockRecordGateway
func NewMockRecordGateway() *MockRecordGateway {
	return &MockRecordGateway{
		ByBudget: make(map[int64][]*domain.Record),
		NextID:   1,
	}
}

// List returns the configured records, remembering the query parameters
func (m *MockRecordGateway) List(ctx context.Context, token string, params url.Values) ([]*domain.Record, error) {
	m.LastParams = params
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Records, nil
}

// GetByID retrieves a record by ID
func (m *MockRecordGateway) GetByID(ctx context.Context, token string, id int64) (*domain.Record, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, r := range m.Records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByBudget returns the records associated with a budget
func (m *MockRecordGateway) ListByBudget(ctx context.Context, token string, budgetID int64) ([]*domain.Record, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ByBudget[budgetID], nil
}

// Create creates a new record
func (m *MockRecordGateway) Create(ctx context.Context, token string, record *domain.Record) (*domain.Record, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	record.ID = m.NextID
	m.NextID++
	m.Records = append(m.Records, record)
	return record, nil
}

// Update updates an existing record
func (m *MockRecordGateway) Update(ctx context.Context, token string, record *domain.Record) (*domain.Record, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i, r := range m.Records {
		if r.ID == record.ID {
			m.Records[i] = record
			return record, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a record
func (m *MockRecordGateway) Delete(ctx context.Context, token string, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, r := range m.Records {
		if r.ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockBudgetGateway is a mock implementation of domain.BudgetGateway
type MockBudgetGateway struct {
	Budgets    []*domain.Budget
	NextID     int64
	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	LastParams url.Values
}

// NewMockBudgetGateway creates a new MockBudgetGateway
func NewMockBudgetGateway() *MockBudgetGateway {
	return &MockBudgetGateway{NextID: 1}
}

// List returns the configured budgets, remembering the query parameters
func (m *MockBudgetGateway) List(ctx context.Context, token string, params url.Values) ([]*domain.Budget, error) {
	m.LastParams = params
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Budgets, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetGateway) GetByID(ctx context.Context, token string, id int64) (*domain.Budget, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, b := range m.Budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create creates a new budget
func (m *MockBudgetGateway) Create(ctx context.Context, token string, budget *domain.Budget) (*domain.Budget, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	budget.ID = m.NextID
	m.NextID++
	m.Budgets = append(m.Budgets, budget)
	return budget, nil
}

// Update updates an existing budget
func (m *MockBudgetGateway) Update(ctx context.Context, token string, budget *domain.Budget) (*domain.Budget, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i, b := range m.Budgets {
		if b.ID == budget.ID {
			m.Budgets[i] = budget
			return budget, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a budget
func (m *MockBudgetGateway) Delete(ctx context.Context, token string, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, b := range m.Budgets {
		if b.ID == id {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockDetailGateway is a mock implementation of domain.DetailGateway
type MockDetailGateway struct {
	Details   []*domain.Detail
	NextID    int64
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewMockDetailGateway creates a new MockDetailGateway
func NewMockDetailGateway() *MockDetailGateway {
	return &MockDetailGateway{NextID: 1}
}

// ListByIDs returns the details matching the given ids
func (m *MockDetailGateway) ListByIDs(ctx context.Context, token string, ids []int64) ([]*domain.Detail, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []*domain.Detail{}
	for _, d := range m.Details {
		if wanted[d.ID] {
			out = append(out, d)
		}
	}
	return out, nil
}

// Create creates a new detail
func (m *MockDetailGateway) Create(ctx context.Context, token string, detail *domain.Detail) (*domain.Detail, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	detail.ID = m.NextID
	m.NextID++
	m.Details = append(m.Details, detail)
	return detail, nil
}

// Update updates an existing detail
func (m *MockDetailGateway) Update(ctx context.Context, token string, detail *domain.Detail) (*domain.Detail, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i, d := range m.Details {
		if d.ID == detail.ID {
			m.Details[i] = detail
			return detail, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a detail
func (m *MockDetailGateway) Delete(ctx context.Context, token string, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, d := range m.Details {
		if d.ID == id {
			m.Details = append(m.Details[:i], m.Details[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockUserGateway is a mock implementation of domain.UserGateway
type MockUserGateway struct {
	Users     map[string]*domain.User
	Token     string
	LoginErr  error
	GetErr    error
	LoginFn   func(creds domain.Credentials) (string, error)
	UpdateErr error
}

// NewMockUserGateway creates a new MockUserGateway
func NewMockUserGateway() *MockUserGateway {
	return &MockUserGateway{Users: make(map[string]*domain.User)}
}

// Get retrieves a user by username
func (m *MockUserGateway) Get(ctx context.Context, token, username string) (*domain.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if user, ok := m.Users[username]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

// Login exchanges credentials for the configured token
func (m *MockUserGateway) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(creds)
	}
	if m.LoginErr != nil {
		return "", m.LoginErr
	}
	return m.Token, nil
}

// Register creates a new user
func (m *MockUserGateway) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	user := &domain.User{Username: username, Email: email}
	m.Users[username] = user
	return user, nil
}

// UpdateData updates a user's profile
func (m *MockUserGateway) UpdateData(ctx context.Context, token string, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	user := &domain.User{Username: update.Username, Email: update.Email}
	m.Users[update.Username] = user
	return user, nil
}

// MockRequestGateway is a mock implementation of domain.RequestGateway
type MockRequestGateway struct {
	Requests   []*domain.GroupRequest
	NextID     int64
	ListErr    error
	CreateErr  error
	ResolveErr error
}

// NewMockRequestGateway creates a new MockRequestGateway
func NewMockRequestGateway() *MockRequestGateway {
	return &MockRequestGateway{NextID: 1}
}

// ListByUsername returns the configured requests
func (m *MockRequestGateway) ListByUsername(ctx context.Context, token, username string) ([]*domain.GroupRequest, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Requests, nil
}

// Create creates a new share request
func (m *MockRequestGateway) Create(ctx context.Context, token string, groupID int64, requestingUser, requestedUser string) (*domain.GroupRequest, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	req := &domain.GroupRequest{
		ID:             m.NextID,
		RequestingUser: requestingUser,
		RequestedUser:  requestedUser,
	}
	m.NextID++
	m.Requests = append(m.Requests, req)
	return req, nil
}

// Resolve updates a share request
func (m *MockRequestGateway) Resolve(ctx context.Context, token string, request *domain.GroupRequest) (*domain.GroupRequest, error) {
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	for i, req := range m.Requests {
		if req.ID == request.ID {
			m.Requests[i] = request
			return request, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockGroupGateway is a mock implementation of domain.GroupGateway
type MockGroupGateway struct {
	Usernames map[int64][]string
	Err       error
}

// NewMockGroupGateway creates a new MockGroupGateway
func NewMockGroupGateway() *MockGroupGateway {
	return &MockGroupGateway{Usernames: make(map[int64][]string)}
}

// UsernamesOf returns the usernames sharing a group
func (m *MockGroupGateway) UsernamesOf(ctx context.Context, token string, groupID int64) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Usernames[groupID], nil
}

// MockSessionStore is an in-memory implementation of domain.SessionStore
type MockSessionStore struct {
	Sessions  map[uuid.UUID]*domain.Session
	CreateErr error
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[uuid.UUID]*domain.Session)}
}

// Create stores a session
func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Sessions[session.ID] = session
	return nil
}

// Get retrieves a session by id
func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if sess, ok := m.Sessions[id]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Delete removes a session
func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.Sessions, id)
	return nil
}

// SetMenuCollapsed updates the preference flag
func (m *MockSessionStore) SetMenuCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error {
	sess, ok := m.Sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.MenuCollapsed = collapsed
	return nil
}

// PurgeExpired removes expired sessions
func (m *MockSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	for id, sess := range m.Sessions {
		if sess.Expired(now) {
			delete(m.Sessions, id)
			purged++
		}
	}
	return purged, nil
}
