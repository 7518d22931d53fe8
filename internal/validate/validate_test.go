package validate_test

import (
	"net/url"
	"testing"

	"github.com/arya/athlete-insights/internal/validate"
	"github.com/stretchr/testify/assert"
)

func signupChain() validate.Chain {
	return validate.Chain{
		validate.Required("fullName", "Full name is required"),
		validate.Email("email", "Enter a valid email"),
		validate.MinLength("password", 8, "Password must be at least 8 characters"),
		validate.MatchesField("confirmPassword", "password", "Passwords do not match"),
		validate.OneOf("role", []string{"athlete", "coach", "scout"}, "Role is required"),
		validate.Required("sport", "Sport is required"),
		validate.Equals("terms", "on", "You must accept the terms"),
	}
}

func validSignupForm() url.Values {
	return url.Values{
		"fullName":        {"Jane Doe"},
		"email":           {"jane@x.com"},
		"password":        {"longenough1"},
		"confirmPassword": {"longenough1"},
		"role":            {"athlete"},
		"sport":           {"soccer"},
		"terms":           {"on"},
	}
}

func TestChain_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(url.Values)
		wantFields []string
	}{
		{
			name:   "valid form passes",
			mutate: func(url.Values) {},
		},
		{
			name:       "missing full name",
			mutate:     func(f url.Values) { f.Del("fullName") },
			wantFields: []string{"fullName"},
		},
		{
			name:       "whitespace-only full name",
			mutate:     func(f url.Values) { f.Set("fullName", "   ") },
			wantFields: []string{"fullName"},
		},
		{
			name:       "malformed email",
			mutate:     func(f url.Values) { f.Set("email", "not-an-email") },
			wantFields: []string{"email"},
		},
		{
			name:       "display-name email form",
			mutate:     func(f url.Values) { f.Set("email", "Jane <jane@x.com>") },
			wantFields: []string{"email"},
		},
		{
			name: "short password fails both length and confirmation rules when confirm unchanged",
			mutate: func(f url.Values) {
				f.Set("password", "short")
			},
			wantFields: []string{"password", "confirmPassword"},
		},
		{
			name:       "password mismatch",
			mutate:     func(f url.Values) { f.Set("confirmPassword", "different123") },
			wantFields: []string{"confirmPassword"},
		},
		{
			name:       "unknown role",
			mutate:     func(f url.Values) { f.Set("role", "referee") },
			wantFields: []string{"role"},
		},
		{
			name:       "terms not accepted",
			mutate:     func(f url.Values) { f.Del("terms") },
			wantFields: []string{"terms"},
		},
		{
			name: "all failures are collected in rule order",
			mutate: func(f url.Values) {
				f.Del("fullName")
				f.Set("email", "bad")
				f.Del("sport")
			},
			wantFields: []string{"fullName", "email", "sport"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignupForm()
			tt.mutate(form)

			errs := signupChain().Validate(form)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestNumeric(t *testing.T) {
	rule := validate.Numeric("height", "Height is required and must be a number")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"integer", "170", true},
		{"decimal", "65.5", true},
		{"negative", "-3", true},
		{"empty", "", false},
		{"whitespace", "  ", false},
		{"text", "tall", false},
		{"mixed", "170cm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"height": {tt.value}}
			err := rule(form)
			if tt.valid {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Equal(t, "height", err.Field)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	rule := validate.Email("email", "Enter a valid email")

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain address", "jane@x.com", true},
		{"subdomain", "jane@mail.example.co.uk", true},
		{"display name form", "Jane <jane@x.com>", false},
		{"quoted display name", `"Jane Doe" <jane@x.com>`, false},
		{"missing domain", "jane@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"email": {tt.value}}
			err := rule(form)
			if tt.valid {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Equal(t, "email", err.Field)
			}
		})
	}
}

func TestChain_NeverShortCircuits(t *testing.T) {
	chain := validate.Chain{
		validate.Required("a", "a required"),
		validate.Required("b", "b required"),
		validate.Required("c", "c required"),
	}

	errs := chain.Validate(url.Values{})

	assert.Len(t, errs, 3)
	assert.Equal(t, "a required", errs[0].Message)
	assert.Equal(t, "c required", errs[2].Message)
}
