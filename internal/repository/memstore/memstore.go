// Package memstore is an in-process implementation of the repository
// interfaces.  It enforces the same uniqueness rules as the MySQL schema
// and is used for local development (STORE_DRIVER=memory) and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
)

// New returns a Store whose collections all live in memory.
func New() *repository.Store {
	return &repository.Store{
		Users:        NewUsers(),
		Admins:       &Admins{},
		Products:     NewProducts(),
		Queries:      &Queries{},
		Transactions: &Transactions{},
		Resets:       NewResets(),
		Close:        func(context.Context) error { return nil },
	}
}

// Users is a UserStore keyed by id with unique username and email.
type Users struct {
	mu   sync.RWMutex
	byID map[string]*model.User
	seq  int64
}

func NewUsers() *Users { return &Users{byID: map[string]*model.User{}} }

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// conflictLocked reports a username/email clash with any user other than
// skipID.  Username is checked first, matching the MySQL index order.
func (s *Users) conflictLocked(username, email, skipID string) error {
	for id, u := range s.byID {
		if id != skipID && u.Username == username {
			return repository.ErrUsernameExists
		}
	}
	for id, u := range s.byID {
		if id != skipID && u.Email == normEmail(email) {
			return repository.ErrEmailExists
		}
	}
	return nil
}

func (s *Users) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conflictLocked(u.Username, u.Email, ""); err != nil {
		return err
	}
	s.seq++
	now := time.Now().UTC().Add(time.Duration(s.seq))
	cp := *u
	cp.ID = uuid.NewString()
	cp.Email = normEmail(u.Email)
	cp.CreatedAt, cp.UpdatedAt = now, now
	s.byID[cp.ID] = &cp
	*u = cp
	return nil
}

func (s *Users) find(match func(*model.User) bool) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) GetByID(_ context.Context, id string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.ID == id })
}

func (s *Users) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username })
}

func (s *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	e := normEmail(email)
	return s.find(func(u *model.User) bool { return u.Email == e })
}

func (s *Users) List(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// update applies fn to the user selected by match under the write lock.
func (s *Users) update(match func(*model.User) bool, fn func(*model.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if match(u) {
			cp := *u
			if err := fn(&cp); err != nil {
				return err
			}
			cp.UpdatedAt = time.Now().UTC()
			s.byID[cp.ID] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Users) UpdatePassword(_ context.Context, email, hash string) error {
	e := normEmail(email)
	return s.update(func(u *model.User) bool { return u.Email == e }, func(u *model.User) error {
		u.Password = hash
		return nil
	})
}

func (s *Users) UpdateProfile(_ context.Context, id string, upd model.ProfileUpdate) error {
	return s.update(func(u *model.User) bool { return u.ID == id }, func(u *model.User) error {
		if err := s.conflictLocked(upd.Username, upd.Email, u.ID); err != nil {
			return err
		}
		u.Username, u.Email = upd.Username, normEmail(upd.Email)
		u.Phone, u.Address = upd.Phone, upd.Address
		if upd.Password != "" {
			u.Password = upd.Password
		}
		return nil
	})
}

func (s *Users) SetProfilePic(_ context.Context, id, url string) error {
	return s.update(func(u *model.User) bool { return u.ID == id }, func(u *model.User) error {
		u.ProfilePic = url
		return nil
	})
}

// Admins is an AdminStore.
type Admins struct {
	mu     sync.RWMutex
	hashes []string
}

func (s *Admins) Create(_ context.Context, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes = append(s.hashes, passwordHash)
	return nil
}

func (s *Admins) ListHashes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.hashes...), nil
}

func (s *Admins) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes = nil
	return nil
}

// Products is a ProductStore with unique productname.
type Products struct {
	mu    sync.RWMutex
	items []*model.Product
}

func NewProducts() *Products { return &Products{} }

func (s *Products) Create(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Productname == p.Productname {
			return repository.ErrProductExists
		}
	}
	cp := *p
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	s.items = append(s.items, &cp)
	*p = cp
	return nil
}

func (s *Products) GetByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Products) List(ctx context.Context) ([]*model.Product, error) {
	return s.filter(func(*model.Product) bool { return true }), nil
}

func (s *Products) ListByType(_ context.Context, productType string) ([]*model.Product, error) {
	return s.filter(func(p *model.Product) bool { return p.Type == productType }), nil
}

func (s *Products) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.items))
	s.items = nil
	return n, nil
}

func (s *Products) filter(keep func(*model.Product) bool) []*model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*model.Product{}
	for _, it := range s.items {
		if keep(it) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out
}

// Queries is a QueryStore.
type Queries struct {
	mu    sync.RWMutex
	items []*model.Query
}

func (s *Queries) Create(_ context.Context, q *model.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	s.items = append(s.items, &cp)
	*q = cp
	return nil
}

func (s *Queries) List(_ context.Context) ([]*model.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Query, 0, len(s.items))
	for _, it := range s.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

// Transactions is a TransactionStore.
type Transactions struct {
	mu    sync.RWMutex
	items []*model.Transaction
}

func (s *Transactions) Create(_ context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	s.items = append(s.items, &cp)
	*t = cp
	return nil
}

func (s *Transactions) List(_ context.Context) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Transaction, 0, len(s.items))
	for _, it := range s.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

// Resets is a ResetStore keyed by token hash.
type Resets struct {
	mu     sync.Mutex
	byHash map[string]*model.PasswordReset
}

func NewResets() *Resets { return &Resets{byHash: map[string]*model.PasswordReset{}} }

func (s *Resets) Create(_ context.Context, r *model.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byHash[r.TokenHash]; dup {
		return repository.ErrConflict
	}
	cp := *r
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	s.byHash[cp.TokenHash] = &cp
	*r = cp
	return nil
}

func (s *Resets) GetByHash(_ context.Context, tokenHash string) (*model.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byHash[tokenHash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Resets) MarkUsed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byHash {
		if r.ID == id && r.UsedAt == nil {
			now := time.Now().UTC()
			r.UsedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Resets) InvalidateForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, r := range s.byHash {
		if r.UserID == userID && r.UsedAt == nil {
			r.UsedAt = &now
		}
	}
	return nil
}

func (s *Resets) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for h, r := range s.byHash {
		if r.ExpiresAt.Before(now) {
			delete(s.byHash, h)
			n++
		}
	}
	return n, nil
}
