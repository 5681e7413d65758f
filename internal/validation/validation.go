package validation

import (
	"regexp"
	"unicode"

	"github.com/example/useradmin/internal/errs"
)

var (
	usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailSyntax     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUser checks the create/update/upsert payload shape. All failing
// fields are reported together; within a field the first failing rule wins.
func ValidateUser(username, email string) error {
	fields := map[string][]string{}
	if msg := checkUsername(username); msg != "" {
		fields["username"] = []string{msg}
	}
	if email == "" {
		fields["email"] = []string{"Email is required"}
	} else if !emailSyntax.MatchString(email) {
		fields["email"] = []string{"Email must be a valid email address"}
	}
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

// ValidateRegistration checks a registration payload. Unlike ValidateUser a
// single field can accumulate several messages, one per failed password
// rule, so the form can list everything that is still missing.
func ValidateRegistration(username, password string) error {
	fields := map[string][]string{}
	if msg := checkUsername(username); msg != "" {
		fields["username"] = []string{msg}
	}
	if pw := checkPassword(password); len(pw) > 0 {
		fields["password"] = pw
	}
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

func checkUsername(username string) string {
	switch {
	case username == "":
		return "Username is required"
	case len(username) < 3:
		return "Username must be at least 3 characters"
	case len(username) > 20:
		return "Username cannot exceed 20 characters"
	case !usernameCharset.MatchString(username):
		return "Username can only contain letters, numbers, and underscores"
	}
	return ""
}

func checkPassword(password string) []string {
	if password == "" {
		return []string{"Password is required"}
	}
	var msgs []string
	if len(password) < 8 {
		msgs = append(msgs, "Password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		msgs = append(msgs, "Password must contain at least one uppercase letter")
	}
	if !lower {
		msgs = append(msgs, "Password must contain at least one lowercase letter")
	}
	if !digit {
		msgs = append(msgs, "Password must contain at least one number")
	}
	return msgs
}
