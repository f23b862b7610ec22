// Package user holds the session-scoped identities of ScholarAI: students,
// parents and administrators, their profiles, and the in-memory directory
// used for demo login and registration.
package user

import (
	"strings"
	"time"

	"github.com/mcnijman/go-emailaddress"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Role is the coarse permission level of a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// Profile carries the self-reported data used for recommendations.
type Profile struct {
	Education string   `json:"education,omitempty"`
	Age       int      `json:"age,omitempty"`
	Location  string   `json:"location,omitempty"`
	Category  string   `json:"category,omitempty"`
	Income    int64    `json:"income,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// User represents a system user.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Profile      *Profile  `json:"profile,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Clone returns a deep copy.
func (u User) Clone() User {
	out := u
	if u.Profile != nil {
		p := *u.Profile
		p.Interests = append([]string(nil), u.Profile.Interests...)
		out.Profile = &p
	}
	return out
}

// IsAdmin reports whether u may manage the catalog.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// CheckPassword compares password against the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashCost is the bcrypt cost used for new passwords.
var HashCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
	}
	return string(h), nil
}

// NormalizeEmail lower-cases and trims an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// ValidateRegistration checks sign-up input.
func ValidateRegistration(name, email, password string, role Role) error {
	if len([]rune(strings.TrimSpace(name))) < 2 {
		return errors.Validation("name must be at least 2 characters").WithDetail("name")
	}
	if !validEmail(email) {
		return errors.Validation("please enter a valid email address").WithDetail("email")
	}
	if len(password) < 6 {
		return errors.Validation("password must be at least 6 characters").WithDetail("password")
	}
	if role != RoleStudent && role != RoleParent {
		return errors.Validation("role must be student or parent").WithDetail("role")
	}
	return nil
}

// ValidateProfile checks a profile update.
func ValidateProfile(name, email string, p Profile) error {
	if len([]rune(strings.TrimSpace(name))) < 2 {
		return profileErr("name must be at least 2 characters", "name")
	}
	if !validEmail(email) {
		return profileErr("please enter a valid email address", "email")
	}
	if strings.TrimSpace(p.Education) == "" {
		return profileErr("please select your education level", "education")
	}
	if p.Age < 10 || p.Age > 100 {
		return profileErr("age must be between 10 and 100", "age")
	}
	if len([]rune(strings.TrimSpace(p.Location))) < 2 {
		return profileErr("location must be at least 2 characters", "location")
	}
	if strings.TrimSpace(p.Category) == "" {
		return profileErr("please select your category", "category")
	}
	if p.Income < 0 {
		return profileErr("income must not be negative", "income")
	}
	return nil
}

func profileErr(msg, field string) error {
	return errors.New(errors.ErrCodeProfileInvalid, msg).WithDetail(field)
}

func validEmail(email string) bool {
	_, err := emailaddress.Parse(strings.TrimSpace(email))
	return err == nil
}

//Personal.AI order the ending
