package auth

import (
	"fmt"
	"os"
	"strings"
)

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

const (
	// minPasswordLength is the minimum required password length for admin credentials
	minPasswordLength = 12

	// minJWTSecretLength is the minimum required length for the HS256 signing secret
	minJWTSecretLength = 32
)

// ValidateAdminCredentials validates admin credentials from environment variables
// at application startup. This function must be called before the server starts
// to prevent security vulnerabilities from empty or weak credentials.
//
// Security requirements:
//   - ADMIN_EMAIL must not be empty
//   - ADMIN_PASSWORD must not be empty
//   - Password must be at least 12 characters
//   - Password must not match any weak password patterns
//
// Returns an error if validation fails with a clear description of the issue.
// The error message is safe to log but does not leak sensitive information.
func ValidateAdminCredentials() error {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")

	if email == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_EMAIL must not be empty")
	}
	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_PASSWORD must not be empty")
	}
	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: ADMIN_PASSWORD must be at least %d characters (current length: %d)", minPasswordLength, len(pass))
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak {
			return fmt.Errorf("admin credentials validation failed: ADMIN_PASSWORD must not be a weak password")
		}
		// "admin1234567890" のような弱いパスワードの変種も拒否する
		if strings.HasPrefix(lowerPass, weak) && len(pass) < minPasswordLength+5 {
			return fmt.Errorf("admin credentials validation failed: ADMIN_PASSWORD must not be based on common weak passwords")
		}
	}

	return nil
}

// ValidateJWTSecret validates the JWT signing secret from the environment
// at application startup. A short secret makes HS256 tokens brute-forceable,
// so the server refuses to start rather than run with one.
func ValidateJWTSecret(envKey string) error {
	secret := os.Getenv(envKey)
	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: %s must not be empty", envKey)
	}
	if len(secret) < minJWTSecretLength {
		return fmt.Errorf("jwt secret validation failed: %s must be at least %d characters (current length: %d)", envKey, minJWTSecretLength, len(secret))
	}
	return nil
}
