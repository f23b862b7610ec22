package user

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Directory is the contract for looking up and storing users.
type Directory interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
}

// MemoryDirectory is a Directory backed by maps.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewMemoryDirectory returns an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (d *MemoryDirectory) GetByID(_ context.Context, id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byID[id]
	if !ok {
		return User{}, errors.Newf(errors.ErrCodeUserNotFound, "user %s not found", id)
	}
	return u.Clone(), nil
}

func (d *MemoryDirectory) GetByEmail(_ context.Context, email string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, errors.New(errors.ErrCodeUserNotFound, "user not found").WithDetail(email)
	}
	return d.byID[id].Clone(), nil
}

func (d *MemoryDirectory) Create(_ context.Context, u User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	email := NormalizeEmail(u.Email)
	if _, ok := d.byEmail[email]; ok {
		return errors.New(errors.ErrCodeUserAlreadyExists, "an account with this email already exists").WithDetail(email)
	}
	if _, ok := d.byID[u.ID]; ok {
		return errors.Newf(errors.ErrCodeUserAlreadyExists, "user %s already exists", u.ID)
	}
	u.Email = email
	d.byID[u.ID] = u.Clone()
	d.byEmail[email] = u.ID
	return nil
}

// Update replaces the stored user, re-indexing the email if it changed.
func (d *MemoryDirectory) Update(_ context.Context, u User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	old, ok := d.byID[u.ID]
	if !ok {
		return errors.Newf(errors.ErrCodeUserNotFound, "user %s not found", u.ID)
	}
	email := NormalizeEmail(u.Email)
	if owner, taken := d.byEmail[email]; taken && owner != u.ID {
		return errors.New(errors.ErrCodeUserAlreadyExists, "an account with this email already exists").WithDetail(email)
	}
	delete(d.byEmail, old.Email)
	u.Email = email
	d.byID[u.ID] = u.Clone()
	d.byEmail[email] = u.ID
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Demo accounts
// ─────────────────────────────────────────────────────────────────────────────

type demoAccount struct {
	user     User
	password string
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{User{ID: "admin", Name: "Admin User", Email: "admin@example.com", Role: RoleAdmin}, "admin123"},
		{User{
			ID: "student1", Name: "Jane Smith", Email: "student@example.com", Role: RoleStudent,
			Profile: &Profile{
				Education: "undergrad",
				Age:       20,
				Location:  "Delhi",
				Category:  "General",
				Income:    300000,
				Interests: []string{"Engineering", "Technology"},
			},
		}, "password"},
		{User{ID: "parent1", Name: "John Doe", Email: "parent@example.com", Role: RoleParent}, "password"},
	}
}

// SeedDemoUsers adds the demo administrator, student and parent accounts.
func SeedDemoUsers(ctx context.Context, d Directory, now time.Time) error {
	for _, acc := range demoAccounts() {
		hash, err := HashPassword(acc.password)
		if err != nil {
			return err
		}
		u := acc.user
		u.PasswordHash = hash
		u.CreatedAt = now
		if err := d.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

//Personal.AI order the ending
