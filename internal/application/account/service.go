// internal/application/account/service.go
//
// Login, registration and profile management over the user directory.
// Successful logins and registrations return a signed bearer token.

package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ScholarAI/internal/domain/user"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, name, role string) (token string, expiresAt time.Time, err error)
}

// Session is returned by Login and Register.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      user.User `json:"user"`
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     user.Role `json:"role"`
}

// ProfileInput is the profile form.
type ProfileInput struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Profile user.Profile `json:"profile"`
}

// Service manages accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, in RegisterInput) (Session, error)
	Profile(ctx context.Context, userID string) (user.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (user.User, error)
}

type serviceImpl struct {
	users   user.Directory
	tokens  TokenIssuer
	clock   func() time.Time
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// NewService builds the account service.  metrics may be nil.
func NewService(users user.Directory, tokens TokenIssuer, logger logging.Logger, metrics *prometheus.AppMetrics) Service {
	return &serviceImpl{users: users, tokens: tokens, clock: time.Now, logger: logger, metrics: metrics}
}

func (s *serviceImpl) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !u.CheckPassword(password) {
		prometheus.RecordAuthAttempt(s.metrics, "login", false)
		s.logger.Info("login rejected", logging.String("email", user.NormalizeEmail(email)))
		return Session{}, errors.New(errors.ErrCodeInvalidCredentials, "invalid email or password")
	}
	prometheus.RecordAuthAttempt(s.metrics, "login", true)
	return s.session(u)
}

func (s *serviceImpl) Register(ctx context.Context, in RegisterInput) (Session, error) {
	if in.Role == "" {
		in.Role = user.RoleStudent
	}
	if err := user.ValidateRegistration(in.Name, in.Email, in.Password, in.Role); err != nil {
		prometheus.RecordAuthAttempt(s.metrics, "register", false)
		return Session{}, err
	}
	hash, err := user.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}
	u := user.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        user.NormalizeEmail(in.Email),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    s.clock(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		prometheus.RecordAuthAttempt(s.metrics, "register", false)
		return Session{}, err
	}
	prometheus.RecordAuthAttempt(s.metrics, "register", true)
	s.logger.Info("user registered", logging.String("user_id", u.ID), logging.String("role", string(u.Role)))
	return s.session(u)
}

func (s *serviceImpl) session(u user.User) (Session, error) {
	token, exp, err := s.tokens.Issue(u.ID, u.Name, string(u.Role))
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *serviceImpl) Profile(ctx context.Context, userID string) (user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (user.User, error) {
	if err := user.ValidateProfile(in.Name, in.Email, in.Profile); err != nil {
		return user.User{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	p := in.Profile
	p.Education = strings.TrimSpace(p.Education)
	p.Location = strings.TrimSpace(p.Location)
	p.Category = strings.TrimSpace(p.Category)

	u.Name = strings.TrimSpace(in.Name)
	u.Email = user.NormalizeEmail(in.Email)
	u.Profile = &p
	if err := s.users.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return s.users.GetByID(ctx, userID)
}

//Personal.AI order the ending
