// Package validate holds the form rules shared by checkout and signup.
// Each rule is a named validator returning a *FieldError tagged with the
// offending field; forms compose them in a fixed order and stop at the
// first failure.
package validate

import (
	"regexp"
	"strings"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// international format: optional +, 2-15 digits, no leading zero
	phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{1,14}$`)
	spaceRe = regexp.MustCompile(`\s+`)
)

func Name(name string) error {
	if len(name) < 3 {
		return &FieldError{Field: "name", Reason: "full name must be at least 3 characters"}
	}
	return nil
}

func Email(email string) error {
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Reason: "invalid email address"}
	}
	return nil
}

func Phone(phone string) error {
	if !phoneRe.MatchString(spaceRe.ReplaceAllString(phone, "")) {
		return &FieldError{Field: "phone", Reason: "invalid phone number, country code required"}
	}
	return nil
}

func Address(addr string) error {
	if len(strings.TrimSpace(addr)) < 10 {
		return &FieldError{Field: "address", Reason: "delivery address must be at least 10 characters"}
	}
	return nil
}

type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Checkout runs the checkout pipeline: name, email, phone, address, cart.
// The first failing rule wins.
func Checkout(c Contact, cartLines int) error {
	if err := Name(c.Name); err != nil {
		return err
	}
	if err := Email(c.Email); err != nil {
		return err
	}
	if err := Phone(c.Phone); err != nil {
		return err
	}
	if err := Address(c.Address); err != nil {
		return err
	}
	if cartLines == 0 {
		return &FieldError{Field: "cart", Reason: "bag is empty"}
	}
	return nil
}

// Signup shares the checkout field rules minus the address and cart checks.
func Signup(name, email, phone string) error {
	if err := Name(name); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Phone(phone)
}
