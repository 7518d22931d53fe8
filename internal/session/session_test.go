package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	rec := &session.Record{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		FullName:  "Jane Doe",
		Role:      domain.RoleAthlete,
		Sport:     "soccer",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, store.Create(ctx, rec))

	t.Run("get returns the record", func(t *testing.T) {
		got, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.UserID, got.UserID)
		assert.Equal(t, "Jane Doe", got.FullName)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("touch extends expiry", func(t *testing.T) {
		newExpiry := time.Now().Add(2 * time.Hour)
		require.NoError(t, store.Touch(ctx, rec.ID, newExpiry))
		got, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)
	})

	t.Run("destroy removes the record", func(t *testing.T) {
		require.NoError(t, store.Destroy(ctx, rec.ID))
		_, err := store.Get(ctx, rec.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("expired record is treated as absent", func(t *testing.T) {
		expired := &session.Record{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		require.NoError(t, store.Create(ctx, expired))
		_, err := store.Get(ctx, expired.ID)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestManager_CookieRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, "test-secret", time.Hour)
	ctx := context.Background()

	user := &domain.User{
		ID:       uuid.New(),
		FullName: "Jane Doe",
		Role:     domain.RoleAthlete,
		Sport:    "soccer",
	}

	w := httptest.NewRecorder()
	require.NoError(t, mgr.Start(ctx, w, user))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, session.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	t.Run("valid cookie resolves the session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		r.AddCookie(cookie)

		rec, err := mgr.Current(ctx, httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, rec.UserID)
		assert.Equal(t, domain.RoleAthlete, rec.Role)
		assert.Equal(t, "soccer", rec.Sport)
	})

	t.Run("no cookie means no session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		_, err := mgr.Current(ctx, httptest.NewRecorder(), r)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("tampered cookie is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie.Value + "x"})
		_, err := mgr.Current(ctx, httptest.NewRecorder(), r)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("cookie signed with another secret is rejected", func(t *testing.T) {
		other := session.NewManager(session.NewMemoryStore(), "other-secret", time.Hour)
		w2 := httptest.NewRecorder()
		require.NoError(t, other.Start(ctx, w2, user))

		r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		r.AddCookie(w2.Result().Cookies()[0])
		_, err := mgr.Current(ctx, httptest.NewRecorder(), r)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("end destroys the session", func(t *testing.T) {
		w2 := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/logout", nil)
		r.AddCookie(cookie)

		require.NoError(t, mgr.End(ctx, w2, r))

		r2 := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		r2.AddCookie(cookie)
		_, err := mgr.Current(ctx, httptest.NewRecorder(), r2)
		assert.ErrorIs(t, err, session.ErrNotFound)

		// Cookie cleared on the response
		cleared := w2.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, -1, cleared[0].MaxAge)
	})
}

func TestManager_ActivityExtendsSession(t *testing.T) {
	store := session.NewMemoryStore()
	ttl := 2 * time.Second
	mgr := session.NewManager(store, "test-secret", ttl)
	ctx := context.Background()

	user := &domain.User{ID: uuid.New(), FullName: "Jane Doe", Role: domain.RoleAthlete}

	w := httptest.NewRecorder()
	require.NoError(t, mgr.Start(ctx, w, user))
	cookie := w.Result().Cookies()[0]

	// Keep touching the session well past the login-time deadline. Each
	// response carries a re-issued cookie with a fresh expiry; using it
	// for the next request must keep the session alive.
	deadline := time.Now().Add(ttl + ttl/2)
	for time.Now().Before(deadline) {
		time.Sleep(500 * time.Millisecond)

		r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
		r.AddCookie(cookie)
		w2 := httptest.NewRecorder()

		rec, err := mgr.Current(ctx, w2, r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, rec.UserID)

		reissued := w2.Result().Cookies()
		require.NotEmpty(t, reissued, "active request must re-issue the session cookie")
		cookie = reissued[0]
	}
}

func TestManager_ExpiredSession(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, "test-secret", -time.Minute)
	ctx := context.Background()

	user := &domain.User{ID: uuid.New(), FullName: "Jane Doe", Role: domain.RoleAthlete}

	w := httptest.NewRecorder()
	require.NoError(t, mgr.Start(ctx, w, user))

	r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	_, err := mgr.Current(ctx, httptest.NewRecorder(), r)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
