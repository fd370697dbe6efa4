package gateway

import (
	"context"

	"github.com/shelfkeeper/shelfkeeper/internal/client/repositories/metadata"
)

// Metadata keys for persisted session state.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyProfile      = "profile"
)

// SQLiteStore is a durable TokenStore backed by the client's local metadata
// repository, so credentials survive process restarts.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(repo metadata.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Access(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, keyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Renewal(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) SetPair(ctx context.Context, access, renewal string) error {
	if err := s.repo.Set(ctx, keyAccessToken, []byte(access)); err != nil {
		return err
	}
	return s.repo.Set(ctx, keyRefreshToken, []byte(renewal))
}

func (s *SQLiteStore) SetAccess(ctx context.Context, access string) error {
	return s.repo.Set(ctx, keyAccessToken, []byte(access))
}

// Clear wipes tokens and the cached profile together.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, keyAccessToken); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, keyRefreshToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, keyProfile)
}

// SetProfile caches the last-known user profile next to the tokens.
func (s *SQLiteStore) SetProfile(ctx context.Context, profile []byte) error {
	return s.repo.Set(ctx, keyProfile, profile)
}

// Profile returns the cached user profile, nil when absent.
func (s *SQLiteStore) Profile(ctx context.Context) ([]byte, error) {
	return s.repo.Get(ctx, keyProfile)
}
