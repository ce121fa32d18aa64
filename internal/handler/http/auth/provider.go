// Package auth provides JWT-based authentication for the administrative
// endpoints: token issuing against environment-configured credentials and
// the Authz middleware that guards protected routes.
package auth

import (
	"crypto/subtle"
	"errors"
	"os"
)

// Credentials holds a username/password pair submitted for authentication.
type Credentials struct {
	Username string
	Password string
}

// minPasswordLength is the minimum admin password length accepted at startup.
const minPasswordLength = 12

// EnvProvider validates credentials against the ADMIN_USER and
// ADMIN_USER_PASSWORD environment variables.
type EnvProvider struct{}

// ValidateCredentials compares the submitted credentials with the configured
// admin account using constant-time comparison.
func (EnvProvider) ValidateCredentials(creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return errors.New("credentials must not be empty")
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")

	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if !userMatch || !passMatch {
		return errors.New("invalid credentials")
	}
	return nil
}

// ValidateAdminCredentials checks the admin account configuration at startup
// so the server refuses to boot with empty or trivially weak credentials.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return errors.New("ADMIN_USER must not be empty")
	}
	if pass == "" {
		return errors.New("ADMIN_USER_PASSWORD must not be empty")
	}
	if len(pass) < minPasswordLength {
		return errors.New("ADMIN_USER_PASSWORD must be at least 12 characters")
	}
	return nil
}
