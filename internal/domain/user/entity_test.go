package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

func init() {
	HashCost = bcrypt.MinCost
}

func validProfile() Profile {
	return Profile{Education: "undergrad", Age: 20, Location: "Pune", Category: "OBC", Income: 250000}
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration("Asha", "asha@example.com", "secret1", RoleStudent))

	cases := map[string]error{
		"short name":   ValidateRegistration("A", "asha@example.com", "secret1", RoleStudent),
		"bad email":    ValidateRegistration("Asha", "asha-at-example", "secret1", RoleStudent),
		"short pass":   ValidateRegistration("Asha", "asha@example.com", "12345", RoleStudent),
		"admin signup": ValidateRegistration("Asha", "asha@example.com", "secret1", RoleAdmin),
	}
	for name, err := range cases {
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation), name)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"asha@example.com", true},
		{"  asha.rao+fees@mail.example.org ", true},
		{"asha-at-example", false},
		{"asha@", false},
		{"@example.com", false},
		{"Asha <asha@example.com>", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validEmail(tt.email))
		})
	}

	err := ValidateProfile("Asha", "Asha <asha@example.com>", validProfile())
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileInvalid))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile("Asha", "asha@example.com", validProfile()))

	young := validProfile()
	young.Age = 9
	err := ValidateProfile("Asha", "asha@example.com", young)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProfileInvalid))

	old := validProfile()
	old.Age = 101
	assert.Error(t, ValidateProfile("Asha", "asha@example.com", old))

	poor := validProfile()
	poor.Income = -5
	assert.Error(t, ValidateProfile("Asha", "asha@example.com", poor))

	noEdu := validProfile()
	noEdu.Education = " "
	assert.Error(t, ValidateProfile("Asha", "asha@example.com", noEdu))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	u := User{PasswordHash: hash}
	assert.True(t, u.CheckPassword("hunter22"))
	assert.False(t, u.CheckPassword("hunter23"))
}

func TestMemoryDirectory_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	require.NoError(t, d.Create(ctx, User{ID: "u1", Name: "Asha", Email: " Asha@Example.com ", Role: RoleStudent}))

	got, err := d.GetByEmail(ctx, "asha@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "asha@example.com", got.Email)

	err = d.Create(ctx, User{ID: "u2", Email: "asha@example.com"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserAlreadyExists))

	_, err = d.GetByID(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryDirectory_UpdateReindexesEmail(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	require.NoError(t, d.Create(ctx, User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, d.Create(ctx, User{ID: "u2", Email: "b@example.com"}))

	u, _ := d.GetByID(ctx, "u1")
	u.Email = "c@example.com"
	require.NoError(t, d.Update(ctx, u))

	_, err := d.GetByEmail(ctx, "a@example.com")
	assert.Error(t, err)
	got, err := d.GetByEmail(ctx, "c@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	u.Email = "b@example.com"
	assert.True(t, errors.IsCode(d.Update(ctx, u), errors.ErrCodeUserAlreadyExists))
}

func TestSeedDemoUsers(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	require.NoError(t, SeedDemoUsers(ctx, d, time.Now()))

	admin, err := d.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CheckPassword("admin123"))

	student, err := d.GetByEmail(ctx, "student@example.com")
	require.NoError(t, err)
	require.NotNil(t, student.Profile)
	assert.Equal(t, 20, student.Profile.Age)
}

//Personal.AI order the ending
