package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/ScholarAI/internal/domain/user"
	"github.com/turtacn/ScholarAI/internal/infrastructure/auth/token"
	"github.com/turtacn/ScholarAI/internal/testutil"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

func init() {
	user.HashCost = bcrypt.MinCost
}

func newTestAccounts(t *testing.T) (Service, *token.Issuer) {
	t.Helper()
	dir := user.NewMemoryDirectory()
	require.NoError(t, user.SeedDemoUsers(context.Background(), dir, time.Now()))
	iss, err := token.NewIssuer(token.Config{Secret: "test", TTL: time.Hour})
	require.NoError(t, err)
	return NewService(dir, iss, testutil.NewMockLogger(), nil), iss
}

func TestLogin(t *testing.T) {
	svc, iss := newTestAccounts(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "Admin@Example.com ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.User.ID)

	claims, err := iss.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserID())
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_Rejected(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "student@example.com", "wrong")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))

	_, err = svc.Login(ctx, "nobody@example.com", "password")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{Name: "Asha Rao", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleStudent, sess.User.Role)
	assert.NotEmpty(t, sess.Token)

	_, err = svc.Login(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Asha Again", Email: "ASHA@example.com", Password: "secret1"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserAlreadyExists))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	_, err = svc.Register(ctx, RegisterInput{Name: "Admin Two", Email: "a2@example.com", Password: "secret1", Role: user.RoleAdmin})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	in := ProfileInput{
		Name:  "Jane Smith",
		Email: "jane@example.com",
		Profile: user.Profile{
			Education: "postgrad",
			Age:       24,
			Location:  " Pune ",
			Category:  "OBC",
			Income:    250000,
			Interests: []string{"Research"},
		},
	}
	u, err := svc.UpdateProfile(ctx, "student1", in)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	require.NotNil(t, u.Profile)
	assert.Equal(t, "Pune", u.Profile.Location)

	_, err = svc.Login(ctx, "jane@example.com", "password")
	require.NoError(t, err)

	in.Profile.Age = 5
	_, err = svc.UpdateProfile(ctx, "student1", in)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileInvalid))

	in.Profile.Age = 24
	_, err = svc.UpdateProfile(ctx, "ghost", in)
	assert.True(t, errors.IsNotFound(err))
}

//Personal.AI order the ending
