package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arya/athlete-insights/internal/ai"
	"github.com/arya/athlete-insights/internal/api"
	"github.com/arya/athlete-insights/internal/config"
	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository"
	"github.com/arya/athlete-insights/internal/repository/memory"
	"github.com/arya/athlete-insights/internal/repository/postgres"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/view"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go.uber.org/zap"
)

// TestConfig returns a configuration suitable for testing.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:          "0",
		Environment:   "test",
		DatabaseURL:   "unused",
		SessionSecret: "test-session-secret-key-for-testing-only",
		SessionTTL:    time.Hour,
		GeminiModel:   "gemini-1.5-flash",
		UploadDir:     t.TempDir(),
	}
}

// TestServer wires the full HTTP surface over memory repositories, a
// memory session store, and a stubbed AI gateway. No external services.
type TestServer struct {
	Server   *httptest.Server
	Repos    *repository.Repositories
	Gateway  *StubGateway
	Sessions *session.Manager
	Config   *config.Config
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig(t)
	log := zap.NewNop()

	repos := memory.NewRepositories()
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)

	gateway := NewStubGateway()

	renderer, err := view.NewRenderer(log)
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	services := &service.Services{
		Auth:        service.NewAuthService(repos.User),
		Performance: service.NewPerformanceService(repos.Performance, gateway, log),
		Video:       service.NewVideoAnalysisService(repos.Report, gateway, ai.ContainsReal, log),
	}

	router := api.NewRouter(services, sessions, renderer, cfg, log)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Repos:    repos,
		Gateway:  gateway,
		Sessions: sessions,
		Config:   cfg,
	}

	t.Cleanup(server.Close)
	return ts
}

// URL returns the full URL for a given path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Client returns an HTTP client with a cookie jar that does not follow
// redirects, so tests can assert on Location headers.
func (ts *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// TestDB manages a testcontainers PostgreSQL instance for repository
// tests.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_athlete_insights"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Performance{},
		&domain.AnalysisReport{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{Container: container, DB: db, DSN: dsn}

	t.Cleanup(func() {
		container.Terminate(ctx)
	})

	return testDB
}

// Truncate clears all tables for test isolation.
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range []string{"analysis_reports", "performances", "users"} {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// Repositories returns the gorm repositories over the test database.
func (tdb *TestDB) Repositories() *repository.Repositories {
	return postgres.NewRepositories(tdb.DB)
}
