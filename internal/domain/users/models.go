package users

import (
	"regexp"
	"strings"
	"time"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials are the email and password submitted at register or login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the bearer token response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateRegistration checks a new account request. Email must be normalized.
func (c Credentials) ValidateRegistration() error {
	var ve domain.ValidationError
	if !ValidEmail(c.Email) {
		ve.Add("email", "Invalid email format")
	}
	if len(c.Password) < MinPasswordLength {
		ve.Add("password", "must be at least 8 characters")
	}
	return ve.Err()
}
