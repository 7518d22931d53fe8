package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// valkeyStore keeps session records in an external valkey/redis-speaking
// cache so sessions survive process restarts. Key TTLs do the expiry.
type valkeyStore struct {
	client valkey.Client
}

func NewValkeyStore(uri string) (Store, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	username := ""
	password := ""
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	options := valkey.ClientOption{
		InitAddress: []string{u.Host},
		Username:    username,
		Password:    password,
	}
	if u.Scheme == "valkeys" || u.Scheme == "rediss" {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(options)
	if err != nil {
		return nil, err
	}
	return &valkeyStore{client: client}, nil
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (s *valkeyStore) Create(ctx context.Context, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := time.Until(rec.ExpiresAt)
	return s.client.Do(ctx, s.client.B().Set().
		Key(sessionKey(rec.ID)).
		Value(string(payload)).
		Ex(ttl).
		Build()).Error()
}

func (s *valkeyStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	raw, err := s.client.Do(ctx, s.client.B().Get().
		Key(sessionKey(id)).
		Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *valkeyStore) Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	rec.ExpiresAt = expiresAt
	return s.Create(ctx, rec)
}

func (s *valkeyStore) Destroy(ctx context.Context, id uuid.UUID) error {
	return s.client.Do(ctx, s.client.B().Del().
		Key(sessionKey(id)).
		Build()).Error()
}
