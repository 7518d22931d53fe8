package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "athlete_session"

// Manager correlates browsers to Records. The cookie value is the opaque
// session id signed into an HS256 token with the session secret, so a
// forged or tampered cookie never reaches the store.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl}
}

// Start creates a session record for the user and sets the signed
// cookie. Only called after validation and credential checks pass.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, user *domain.User) error {
	rec := &Record{
		ID:        uuid.New(),
		UserID:    user.ID,
		FullName:  user.FullName,
		Role:      user.Role,
		Sport:     user.Sport,
		ExpiresAt: time.Now().Add(m.ttl),
	}

	if err := m.store.Create(ctx, rec); err != nil {
		return err
	}

	token, err := m.signToken(rec.ID, rec.ExpiresAt)
	if err != nil {
		return err
	}

	m.setCookie(w, token)
	return nil
}

// Current resolves the request's session and slides the expiry window:
// the store record is extended and the cookie re-issued with a fresh
// signed deadline, so activity keeps a session alive for another TTL.
// ErrNotFound covers every "not authenticated" shape: no cookie, bad
// signature, expired or destroyed record.
func (m *Manager) Current(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Record, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNotFound
	}

	id, err := m.parseToken(cookie.Value)
	if err != nil {
		return nil, ErrNotFound
	}

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	expiresAt := time.Now().Add(m.ttl)
	if err := m.store.Touch(ctx, id, expiresAt); err == nil {
		if token, err := m.signToken(id, expiresAt); err == nil {
			m.setCookie(w, token)
			rec.ExpiresAt = expiresAt
		}
	}
	return rec, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// End destroys the current session and expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err == nil {
		if id, perr := m.parseToken(cookie.Value); perr == nil {
			if derr := m.store.Destroy(ctx, id); derr != nil {
				return derr
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) signToken(id uuid.UUID, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": id.String(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

func (m *Manager) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sid claim")
	}
	return uuid.Parse(sid)
}
