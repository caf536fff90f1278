package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  []*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	clone.ID = r.nextID
	r.nextID++
	r.users = append(r.users, &clone)
	copied := clone
	return &copied, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubShareholderRepo struct {
	users        *stubUserRepo // shared so CreateWithUser lands in both stores
	shareholders []*domain.Shareholder
	nextID       int64
	createErr    error
}

func newStubShareholderRepo(users *stubUserRepo) *stubShareholderRepo {
	return &stubShareholderRepo{users: users, nextID: 1}
}

func (r *stubShareholderRepo) CreateWithUser(ctx context.Context, user *domain.User, sh *domain.Shareholder) (*domain.User, *domain.Shareholder, error) {
	if r.createErr != nil {
		return nil, nil, r.createErr
	}
	createdUser, err := r.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	clone := *sh
	clone.ID = r.nextID
	clone.UserID = createdUser.ID
	r.nextID++
	r.shareholders = append(r.shareholders, &clone)
	copied := clone
	return createdUser, &copied, nil
}

func (r *stubShareholderRepo) add(sh *domain.Shareholder) *domain.Shareholder {
	clone := *sh
	if clone.ID == 0 {
		clone.ID = r.nextID
	}
	if clone.ID >= r.nextID {
		r.nextID = clone.ID + 1
	}
	r.shareholders = append(r.shareholders, &clone)
	return &clone
}

func (r *stubShareholderRepo) FindByID(_ context.Context, id int64) (*domain.Shareholder, error) {
	for _, sh := range r.shareholders {
		if sh.ID == id {
			clone := *sh
			return &clone, nil
		}
	}
	return nil, domain.ErrShareholderNotFound
}

func (r *stubShareholderRepo) FindByUserID(_ context.Context, userID int64) (*domain.Shareholder, error) {
	for _, sh := range r.shareholders {
		if sh.UserID == userID {
			clone := *sh
			return &clone, nil
		}
	}
	return nil, domain.ErrShareholderNotFound
}

func (r *stubShareholderRepo) FindByEmail(_ context.Context, email string) (*domain.Shareholder, error) {
	for _, sh := range r.shareholders {
		if sh.Email == email {
			clone := *sh
			return &clone, nil
		}
	}
	return nil, domain.ErrShareholderNotFound
}

func (r *stubShareholderRepo) List(_ context.Context) ([]*domain.Shareholder, error) {
	result := make([]*domain.Shareholder, 0, len(r.shareholders))
	for _, sh := range r.shareholders {
		clone := *sh
		result = append(result, &clone)
	}
	return result, nil
}

type stubIssuanceRepo struct {
	issuances []*domain.ShareIssuance
	nextID    int64
	createErr error
}

func newStubIssuanceRepo() *stubIssuanceRepo {
	return &stubIssuanceRepo{nextID: 1}
}

func (r *stubIssuanceRepo) Create(_ context.Context, iss *domain.ShareIssuance) (*domain.ShareIssuance, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *iss
	clone.ID = r.nextID
	r.nextID++
	r.issuances = append(r.issuances, &clone)
	copied := clone
	return &copied, nil
}

func (r *stubIssuanceRepo) FindByID(_ context.Context, id int64) (*domain.ShareIssuance, error) {
	for _, iss := range r.issuances {
		if iss.ID == id {
			clone := *iss
			return &clone, nil
		}
	}
	return nil, domain.ErrIssuanceNotFound
}

func (r *stubIssuanceRepo) List(_ context.Context) ([]*domain.ShareIssuance, error) {
	result := make([]*domain.ShareIssuance, 0, len(r.issuances))
	for _, iss := range r.issuances {
		clone := *iss
		result = append(result, &clone)
	}
	return result, nil
}

func (r *stubIssuanceRepo) ListByShareholder(_ context.Context, shareholderID int64) ([]*domain.ShareIssuance, error) {
	var result []*domain.ShareIssuance
	for _, iss := range r.issuances {
		if iss.ShareholderID == shareholderID {
			clone := *iss
			result = append(result, &clone)
		}
	}
	return result, nil
}

type stubAuditRepo struct {
	events    []*domain.AuditEvent
	nextID    int64
	createErr error
}

func newStubAuditRepo() *stubAuditRepo {
	return &stubAuditRepo{nextID: 1}
}

func (r *stubAuditRepo) Create(_ context.Context, event *domain.AuditEvent) (*domain.AuditEvent, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *event
	clone.ID = r.nextID
	r.nextID++
	r.events = append(r.events, &clone)
	copied := clone
	return &copied, nil
}

func (r *stubAuditRepo) List(_ context.Context) ([]*domain.AuditEvent, error) {
	result := make([]*domain.AuditEvent, 0, len(r.events))
	for _, ev := range r.events {
		clone := *ev
		result = append(result, &clone)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Stub cache: stores real JSON so cached and fresh values round-trip the same
// way they would through Redis.
// ---------------------------------------------------------------------------

type stubCache struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
	getErr  error
	setErr  error
	delErr  error
}

func newStubCache() *stubCache {
	return &stubCache{
		values: make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *stubCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *stubCache) Delete(_ context.Context, keys ...string) error {
	if c.delErr != nil {
		return c.delErr
	}
	for _, key := range keys {
		delete(c.values, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

type stubNotifier struct {
	sent []ports.IssuanceNotification
}

func (n *stubNotifier) Enqueue(notification ports.IssuanceNotification) {
	n.sent = append(n.sent, notification)
}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

func adminUser() *domain.User {
	return &domain.User{ID: 100, Username: "admin", Role: domain.RoleAdmin}
}

func shareholderUser(id int64, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Role: domain.RoleShareholder}
}
