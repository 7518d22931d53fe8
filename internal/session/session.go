// Package session owns the ephemeral proof-of-authentication records.
// A Record is a denormalized copy of the User taken at login time; it is
// never written back and gates every protected route by its presence.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Record struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	Sport     string      `json:"sport"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Store is the injected backing for session records: an in-process map
// by default, valkey when the deployment configures one. Get must treat
// an expired record as absent.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	Destroy(ctx context.Context, id uuid.UUID) error
}
