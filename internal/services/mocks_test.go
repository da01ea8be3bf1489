package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventease/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockEventRepository struct {
	events      map[string]*domain.Event
	listResult  []*domain.Event
	publicList  []*domain.Event
	err         error
	created     *domain.Event
	lastOwnerID string
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "ev-new"
	m.created = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastOwnerID = ownerID
	return m.listResult, nil
}

func (m *mockEventRepository) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.publicList, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *ev
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.EventDate != nil {
		updated.EventDate = *in.EventDate
	}
	if in.EndDate != nil {
		updated.EndDate = in.EndDate
	}
	if in.IsPublic != nil {
		updated.IsPublic = *in.IsPublic
	}
	return &updated, nil
}

func (m *mockEventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *ev
	updated.Status = status
	return &updated, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockRSVPRepository struct {
	rsvps           map[string]*domain.RSVP
	byEmail         map[string]*domain.RSVP // eventID + ":" + email
	listResult      []*domain.RSVP
	stats           *domain.EventStats
	err             error
	created         *domain.RSVP
	createdCapacity int // maxAttendees passed to CreateWithinCapacity, 0 if plain Create was used
	createErr       error
}

func (m *mockRSVPRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	if m.createErr != nil {
		return m.createErr
	}
	rsvp.ID = "rsvp-new"
	m.created = rsvp
	return nil
}

func (m *mockRSVPRepository) CreateWithinCapacity(ctx context.Context, rsvp *domain.RSVP, maxAttendees int) error {
	if m.createErr != nil {
		return m.createErr
	}
	rsvp.ID = "rsvp-new"
	m.created = rsvp
	m.createdCapacity = maxAttendees
	return nil
}

func (m *mockRSVPRepository) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	if m.err != nil {
		return nil, m.err
	}
	rsvp, ok := m.rsvps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rsvp, nil
}

func (m *mockRSVPRepository) FindByEmail(ctx context.Context, eventID, email string) (*domain.RSVP, error) {
	if m.err != nil {
		return nil, m.err
	}
	if rsvp, ok := m.byEmail[eventID+":"+email]; ok {
		return rsvp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRSVPRepository) ListForEvent(ctx context.Context, eventID string) ([]*domain.RSVP, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listResult, nil
}

func (m *mockRSVPRepository) UpdateStatus(ctx context.Context, id string, status domain.RSVPStatus) (*domain.RSVP, error) {
	if m.err != nil {
		return nil, m.err
	}
	rsvp, ok := m.rsvps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := *rsvp
	updated.Status = status
	return &updated, nil
}

func (m *mockRSVPRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rsvps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rsvps, id)
	return nil
}

func (m *mockRSVPRepository) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &domain.EventStats{}, nil
}

type mockUserRepository struct {
	users       map[string]*domain.User
	usersByMail map[string]*domain.User
	listResult  []*domain.UserWithStats
	withStats   map[string]*domain.UserWithStats
	systemStats *domain.SystemStats
	err         error
	created     *domain.User
	deleted     []string
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.usersByMail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.usersByMail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]*domain.UserWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listResult, nil
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.UserWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]*domain.UserWithStats, 0)
	for _, u := range m.listResult {
		if u.Role == role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (m *mockUserRepository) GetWithStats(ctx context.Context, id string) (*domain.UserWithStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.withStats[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	updated := *u
	if in.Email != nil {
		updated.Email = *in.Email
	}
	if in.FirstName != nil {
		updated.FirstName = *in.FirstName
	}
	if in.Role != nil {
		updated.Role = *in.Role
	}
	return &updated, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	m.deleted = append(m.deleted, id)
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.systemStats != nil {
		return m.systemStats, nil
	}
	return &domain.SystemStats{}, nil
}

type mockHasher struct {
	salt string
	err  error
	// compareErr is returned from Compare, simulating a wrong password.
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.salt != "" {
		return m.salt, nil
	}
	return "salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "hashed:" + salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hashed:"+salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type mockTokenIssuer struct {
	err        error
	lastIssued domain.Identity
}

func (m *mockTokenIssuer) Issue(identity domain.Identity, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.lastIssued = identity
	return "token-for-" + identity.UserID, nil
}

type mockEmailService struct {
	sent []*domain.RSVPConfirmationEmailData
	err  error
}

func (m *mockEmailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}
