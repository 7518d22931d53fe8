package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/arya/athlete-insights/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPerformanceForm() url.Values {
	return url.Values{
		"height":   {"170"},
		"weight":   {"65"},
		"speed":    {"7"},
		"stamina":  {"6"},
		"accuracy": {"8"},
	}
}

func TestPerformance_RequiresSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.PostForm(t, ts.Client(t), ts.URL("/users/performance"), validPerformanceForm())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/login", resp.Header.Get("Location"))
	assert.Zero(t, ts.Gateway.Calls())
}

func TestPerformance_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing height", func(f url.Values) { f.Del("height") }},
		{"missing accuracy", func(f url.Values) { f.Del("accuracy") }},
		{"non-numeric speed", func(f url.Values) { f.Set("speed", "fast") }},
		{"empty stamina", func(f url.Values) { f.Set("stamina", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testutil.NewTestServer(t)
			user, rawPassword := testutil.NewUserBuilder().Build(t, ts.Repos.User)
			client := testutil.Login(t, ts, user.Email, rawPassword)

			form := validPerformanceForm()
			tt.mutate(form)

			resp := testutil.PostForm(t, client, ts.URL("/users/performance"), form)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			count, err := ts.Repos.Performance.CountByUserID(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Zero(t, count)
			assert.Zero(t, ts.Gateway.Calls())
		})
	}
}

func TestPerformance_Success(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.Repos.User)
	client := testutil.Login(t, ts, user.Email, rawPassword)

	ts.Gateway.Response = "Great job"

	resp := testutil.PostForm(t, client, ts.URL("/users/performance"), validPerformanceForm())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.ReadBody(t, resp)
	assert.Contains(t, body, "Great job")
	assert.Contains(t, body, "170")
	assert.Contains(t, body, "65")

	count, err := ts.Repos.Performance.CountByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	perfs, err := ts.Repos.Performance.GetByUserID(context.Background(), user.ID, 0)
	require.NoError(t, err)
	require.Len(t, perfs, 1)
	assert.Equal(t, 170.0, perfs[0].Height)
	assert.Equal(t, 8.0, perfs[0].Accuracy)
}

func TestPerformance_GatewayFailureStillPersists(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.Repos.User)
	client := testutil.Login(t, ts, user.Email, rawPassword)

	ts.Gateway.Fail(errors.New("model overloaded"))

	resp := testutil.PostForm(t, client, ts.URL("/users/performance"), validPerformanceForm())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.ReadBody(t, resp)
	assert.Contains(t, body, "170")
	assert.Contains(t, body, "temporarily unavailable")

	count, err := ts.Repos.Performance.CountByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEndToEndScenario(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Gateway.Response = "Great job"

	// Signup
	signup := testutil.PostForm(t, ts.Client(t), ts.URL("/users/signup"), url.Values{
		"fullName":        {"Jane Doe"},
		"email":           {"jane@x.com"},
		"password":        {"longenough1"},
		"confirmPassword": {"longenough1"},
		"role":            {"athlete"},
		"sport":           {"soccer"},
		"terms":           {"on"},
	})
	defer signup.Body.Close()
	require.Equal(t, http.StatusOK, signup.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, signup), "<h1>Log in</h1>")

	user, err := ts.Repos.User.GetByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", user.PasswordHash)

	// Login
	client := ts.Client(t)
	login := testutil.PostForm(t, client, ts.URL("/users/login"), url.Values{
		"email":    {"jane@x.com"},
		"password": {"longenough1"},
	})
	defer login.Body.Close()
	require.Equal(t, http.StatusFound, login.StatusCode)

	profile, err := client.Get(ts.URL("/users/profile"))
	require.NoError(t, err)
	defer profile.Body.Close()
	assert.Contains(t, testutil.ReadBody(t, profile), "athlete")

	// Performance submission
	perf := testutil.PostForm(t, client, ts.URL("/users/performance"), validPerformanceForm())
	defer perf.Body.Close()
	require.Equal(t, http.StatusOK, perf.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, perf), "Great job")

	count, err := ts.Repos.Performance.CountByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDashboard_ShowsRecentPerformances(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, rawPassword := testutil.NewUserBuilder().Build(t, ts.Repos.User)
	client := testutil.Login(t, ts, user.Email, rawPassword)

	resp := testutil.PostForm(t, client, ts.URL("/users/performance"), validPerformanceForm())
	resp.Body.Close()

	dash, err := client.Get(ts.URL("/users/dashboad"))
	require.NoError(t, err)
	defer dash.Body.Close()

	assert.Equal(t, http.StatusOK, dash.StatusCode)
	body := testutil.ReadBody(t, dash)
	assert.Contains(t, body, "170")
	assert.Contains(t, body, "65")
}

func TestLeaderboard(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, rawPassword := testutil.NewUserBuilder().
		WithFullName("Jane Doe").
		Build(t, ts.Repos.User)
	client := testutil.Login(t, ts, user.Email, rawPassword)

	resp := testutil.PostForm(t, client, ts.URL("/users/performance"), validPerformanceForm())
	resp.Body.Close()

	// Public page, no session needed.
	lb, err := ts.Client(t).Get(ts.URL("/users/leaderboad"))
	require.NoError(t, err)
	defer lb.Body.Close()

	assert.Equal(t, http.StatusOK, lb.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, lb), "Jane Doe")
}
