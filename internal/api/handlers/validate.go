package handlers

import (
	"net/mail"
	"unicode"
)

// Per-field validation mirroring the auth route contracts: all failures are
// collected and reported together.

func validateSignup(req SignupRequest) []FieldError {
	var errs []FieldError

	if req.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	} else if len(req.Username) < 3 || len(req.Username) > 20 {
		errs = append(errs, FieldError{Field: "username", Message: "Username must be between 3 and 20 characters"})
	}

	errs = append(errs, validateEmail(req.Email)...)
	errs = append(errs, validatePassword("password", req.Password)...)
	errs = append(errs, validateConfirm(req.Password, req.ConfirmPassword)...)

	return errs
}

func validateEmail(email string) []FieldError {
	if _, err := mail.ParseAddress(email); err != nil {
		return []FieldError{{Field: "email", Message: "Invalid email"}}
	}
	return nil
}

// validatePassword requires at least 8 characters with one lowercase, one
// uppercase, one digit and one symbol.
func validatePassword(field, password string) []FieldError {
	if len(password) < 8 {
		return []FieldError{{Field: field, Message: "Password must be at least 8 characters"}}
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return []FieldError{{
			Field:   field,
			Message: "Password must include one lowercase character, one uppercase character, a number, and a special character",
		}}
	}
	return nil
}

func validateConfirm(password, confirm string) []FieldError {
	if confirm == "" {
		return []FieldError{{Field: "confirmPassword", Message: "Confirm password is required"}}
	}
	if confirm != password {
		return []FieldError{{Field: "confirmPassword", Message: "Password confirmation does not match password"}}
	}
	return nil
}
