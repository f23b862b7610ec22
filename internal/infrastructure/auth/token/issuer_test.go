package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newTestIssuer(t *testing.T, now time.Time) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{Secret: "s3cret", Issuer: "scholarai-test", TTL: time.Hour}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	return iss
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer(Config{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Now()
	iss := newTestIssuer(t, now)

	raw, exp, err := iss.Issue("2", "Jane Smith", "student")
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "2", claims.UserID())
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "Jane Smith", claims.Name)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Now()
	raw, _, err := newTestIssuer(t, now.Add(-2*time.Hour)).Issue("2", "", "student")
	require.NoError(t, err)

	_, err = newTestIssuer(t, now).Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Now()
	raw, _, err := newTestIssuer(t, now).Issue("2", "", "student")
	require.NoError(t, err)

	other, err := NewIssuer(Config{Secret: "other", Issuer: "scholarai-test"}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestVerify_WrongIssuer(t *testing.T) {
	now := time.Now()
	raw, _, err := newTestIssuer(t, now).Issue("2", "", "student")
	require.NoError(t, err)

	other, err := NewIssuer(Config{Secret: "s3cret", Issuer: "elsewhere"}, WithClock(fixedClock(now)))
	require.NoError(t, err)
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalidIssuer)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newTestIssuer(t, time.Now()).Verify("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTokenInvalid))
}

//Personal.AI order the ending
