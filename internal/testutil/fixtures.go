package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserBuilder creates test users with a builder pattern.
type UserBuilder struct {
	fullName string
	email    string
	password string
	role     domain.Role
	sport    string
}

func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		fullName: fmt.Sprintf("Test User %s", suffix),
		email:    fmt.Sprintf("test_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleAthlete,
		sport:    "soccer",
	}
}

func (b *UserBuilder) WithFullName(name string) *UserBuilder {
	b.fullName = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

func (b *UserBuilder) WithSport(sport string) *UserBuilder {
	b.sport = sport
	return b
}

// Build creates the user through the repository and returns it with the
// raw password.
func (b *UserBuilder) Build(t *testing.T, users repository.UserRepository) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     b.fullName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Sport:        b.sport,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// Login posts the login form and returns the client carrying the session
// cookie.
func Login(t *testing.T, ts *TestServer, email, password string) *http.Client {
	t.Helper()

	client := ts.Client(t)
	resp := PostForm(t, client, ts.URL("/users/login"), url.Values{
		"email":    {email},
		"password": {password},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	return client
}

// PostForm submits urlencoded form data.
func PostForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to post form: %v", err)
	}
	return resp
}

// PostVideo submits a multipart request with one file under the given
// field name. An empty field name sends no file part at all.
func PostVideo(t *testing.T, client *http.Client, target, fieldName, fileName string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	resp, err := client.Post(target, writer.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("failed to post video: %v", err)
	}
	return resp
}

// ReadBody drains and returns the response body as a string.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return string(body)
}
