// Package memory holds map-backed implementations of the repository
// interfaces so handlers and services can be exercised without a
// database. Semantics mirror the postgres package: email uniqueness,
// newest-first listings, athlete-only leaderboard.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository"
	"github.com/google/uuid"
)

func NewRepositories() *repository.Repositories {
	users := NewUserRepository()
	perfs := NewPerformanceRepository()
	perfs.AttachUsers(users)
	return &repository.Repositories{
		User:        users,
		Performance: perfs,
		Report:      NewReportRepository(),
	}
}

type userRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func NewUserRepository() *userRepository {
	return &userRepository{users: make(map[uuid.UUID]domain.User)}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type performanceRepository struct {
	mu    sync.RWMutex
	perfs []domain.Performance
	users repositoryUsers
}

// repositoryUsers lets Leaderboard resolve athlete names and roles
// without a SQL join.
type repositoryUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func NewPerformanceRepository() *performanceRepository {
	return &performanceRepository{}
}

// AttachUsers provides the user lookup used by Leaderboard.
func (r *performanceRepository) AttachUsers(users repositoryUsers) {
	r.users = users
}

func (r *performanceRepository) Create(_ context.Context, perf *domain.Performance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if perf.ID == uuid.Nil {
		perf.ID = uuid.New()
	}
	r.perfs = append(r.perfs, *perf)
	return nil
}

func (r *performanceRepository) GetByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*domain.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Performance
	for i := len(r.perfs) - 1; i >= 0; i-- {
		if r.perfs[i].UserID != userID {
			continue
		}
		p := r.perfs[i]
		out = append(out, &p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *performanceRepository) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, p := range r.perfs {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *performanceRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	r.mu.RLock()
	sums := make(map[uuid.UUID]float64)
	counts := make(map[uuid.UUID]int)
	for _, p := range r.perfs {
		sums[p.UserID] += (p.Speed + p.Stamina + p.Accuracy) / 3
		counts[p.UserID]++
	}
	r.mu.RUnlock()

	var entries []*domain.LeaderboardEntry
	for id, sum := range sums {
		entry := &domain.LeaderboardEntry{UserID: id, Score: sum / float64(counts[id])}
		if r.users != nil {
			user, err := r.users.GetByID(ctx, id)
			if err != nil {
				continue
			}
			if user.Role != domain.RoleAthlete {
				continue
			}
			entry.FullName = user.FullName
			entry.Sport = user.Sport
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].FullName < entries[j].FullName
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type reportRepository struct {
	mu      sync.RWMutex
	reports []domain.AnalysisReport
}

func NewReportRepository() *reportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(_ context.Context, report *domain.AnalysisReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *reportRepository) GetByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*domain.AnalysisReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.AnalysisReport
	for i := len(r.reports) - 1; i >= 0; i-- {
		rep := r.reports[i]
		if rep.UserID == nil || *rep.UserID != userID {
			continue
		}
		out = append(out, &rep)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
