package validation

import (
	"fmt"
	"net/mail"
)

// MaxEmailLen caps email length to keep the unique index sane
const MaxEmailLen = 254

// ValidateEmail checks that email is a plausible address. It is a shape
// check, not deliverability verification.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}
	if addr.Address != email {
		// Reject display-name forms like `Name <a@b.c>`
		return fmt.Errorf("invalid email address")
	}

	return nil
}

// ValidatePassword checks minimal password requirements
func ValidatePassword(password string) error {
	const minPasswordLen = 4

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}
