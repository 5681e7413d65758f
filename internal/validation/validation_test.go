package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/useradmin/internal/errs"
)

func TestValidateUser_OK(t *testing.T) {
	assert.NoError(t, ValidateUser("hein_wai", "wyan913@gmail.com"))
	assert.NoError(t, ValidateUser("abc", "a@b.co"))
}

func TestValidateUser_CollectsAllFields(t *testing.T) {
	err := ValidateUser("", "not-an-email")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)

	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, []string{"Username is required"}, ve.Fields["username"])
	assert.Equal(t, []string{"Email must be a valid email address"}, ve.Fields["email"])
}

func TestValidateUser_UsernameRules(t *testing.T) {
	cases := []struct {
		name     string
		username string
		want     string
	}{
		{"too short", "ab", "Username must be at least 3 characters"},
		{"too long", "abcdefghijklmnopqrstu", "Username cannot exceed 20 characters"},
		{"bad charset", "bad name!", "Username can only contain letters, numbers, and underscores"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUser(tc.username, "ok@example.com")
			ve, ok := errs.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, []string{tc.want}, ve.Fields["username"])
			assert.NotContains(t, ve.Fields, "email")
		})
	}
}

func TestValidateUser_FirstFailurePerFieldWins(t *testing.T) {
	// empty username violates required, length and charset; only the
	// first rule is reported
	err := ValidateUser("", "ok@example.com")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Username is required"}, ve.Fields["username"])
}

func TestValidateRegistration_OK(t *testing.T) {
	assert.NoError(t, ValidateRegistration("admin_1", "Passw0rd"))
}

func TestValidateRegistration_WeakPassword(t *testing.T) {
	// all lowercase, no digit: both missing classes are reported
	err := ValidateRegistration("admin_1", "abcdefgh")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)

	require.Contains(t, ve.Fields, "password")
	assert.Equal(t, []string{
		"Password must contain at least one uppercase letter",
		"Password must contain at least one number",
	}, ve.Fields["password"])
	assert.NotContains(t, ve.Fields, "username")
}

func TestValidateRegistration_ShortPassword(t *testing.T) {
	err := ValidateRegistration("admin_1", "Ab1")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields["password"], "Password must be at least 8 characters")
}

func TestValidateRegistration_BadUsernameAndPassword(t *testing.T) {
	err := ValidateRegistration("x", "")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, []string{"Password is required"}, ve.Fields["password"])
}
