package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kiran-703/ShopNest/models"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	postalRegex   = regexp.MustCompile(`^[0-9]{5,6}$`)
)

// ValidateUsername checks username format
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks phone number format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain uppercase, lowercase and numeric characters")
	}
	return nil
}

// ValidateAddress checks the fields a shipping address must carry before it
// can be copied onto an order
func ValidateAddress(addr models.Address) FieldValidationErrors {
	var errs FieldValidationErrors
	if strings.TrimSpace(addr.Name) == "" {
		errs = append(errs, FieldValidationError{Field: "name", Message: "Name is required"})
	}
	if !ValidatePhone(addr.Phone) {
		errs = append(errs, FieldValidationError{Field: "phone", Message: "Invalid phone number"})
	}
	if strings.TrimSpace(addr.Line1) == "" {
		errs = append(errs, FieldValidationError{Field: "line1", Message: "Address line is required"})
	}
	if strings.TrimSpace(addr.City) == "" {
		errs = append(errs, FieldValidationError{Field: "city", Message: "City is required"})
	}
	if !postalRegex.MatchString(addr.PostalCode) {
		errs = append(errs, FieldValidationError{Field: "postal_code", Message: "Invalid postal code"})
	}
	return errs
}
