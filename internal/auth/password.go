package auth

import (
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 32

	// DefaultAdminUsername is used when only a password hash is configured.
	DefaultAdminUsername = "admin"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9._-]*[a-z0-9])?$`)

// NormalizeUsername returns canonical lowercase username and validates allowed characters.
func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(strings.ToLower(raw))
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLength {
		return "", fmt.Errorf("username too long")
	}
	if !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("invalid username")
	}
	return username, nil
}

// ValidatePassword checks minimal password requirements.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// HashPassword hashes one plaintext password for the admin.password_hash key.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword verifies plaintext password against a bcrypt hash.
func VerifyPassword(passwordHash, candidate string) bool {
	if strings.TrimSpace(passwordHash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(candidate)) == nil
}

// Admin is the single account allowed into the message inbox.
type Admin struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether a password hash is configured.
func (a Admin) Enabled() bool {
	return strings.TrimSpace(a.PasswordHash) != ""
}

// Verify checks a username and password pair. The password hash is always
// compared so a wrong username costs as much as a wrong password.
func (a Admin) Verify(username, password string) bool {
	if !a.Enabled() {
		return false
	}
	want := a.Username
	if strings.TrimSpace(want) == "" {
		want = DefaultAdminUsername
	}
	wantNorm, err := NormalizeUsername(want)
	if err != nil {
		return false
	}
	gotNorm, err := NormalizeUsername(username)
	userOK := err == nil && subtle.ConstantTimeCompare([]byte(gotNorm), []byte(wantNorm)) == 1
	passOK := VerifyPassword(a.PasswordHash, password)
	return userOK && passOK
}
