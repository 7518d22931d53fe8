// Package validate applies declarative per-field rules to submitted form
// data. A chain evaluates every rule and returns the complete ordered
// error set; it never stops at the first failure and never touches
// storage.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Rule checks one field of the submitted form. A nil result means pass.
type Rule func(form url.Values) *FieldError

type Chain []Rule

// Validate runs every rule in order, collecting all failures.
func (c Chain) Validate(form url.Values) []FieldError {
	var errs []FieldError
	for _, rule := range c {
		if e := rule(form); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

func Required(field, message string) Rule {
	return func(form url.Values) *FieldError {
		if strings.TrimSpace(form.Get(field)) == "" {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func Email(field, message string) Rule {
	return func(form url.Values) *FieldError {
		addr := strings.TrimSpace(form.Get(field))
		parsed, err := mail.ParseAddress(addr)
		// The submitted string is stored verbatim as the unique email key,
		// so display-name forms like "Jane <jane@x.com>" must not pass
		// even though the parser tolerates them.
		if err != nil || parsed.Address != addr {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func MinLength(field string, min int, message string) Rule {
	return func(form url.Values) *FieldError {
		if len(form.Get(field)) < min {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

// MatchesField fails unless the field equals a sibling field, e.g.
// confirmPassword against password.
func MatchesField(field, other, message string) Rule {
	return func(form url.Values) *FieldError {
		if form.Get(field) != form.Get(other) {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func OneOf(field string, allowed []string, message string) Rule {
	return func(form url.Values) *FieldError {
		value := form.Get(field)
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return &FieldError{Field: field, Message: message}
	}
}

// Equals fails unless the field holds exactly the literal value; used for
// consent checkboxes that must be "on".
func Equals(field, literal, message string) Rule {
	return func(form url.Values) *FieldError {
		if form.Get(field) != literal {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

func Numeric(field, message string) Rule {
	return func(form url.Values) *FieldError {
		value := strings.TrimSpace(form.Get(field))
		if value == "" {
			return &FieldError{Field: field, Message: message}
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}
