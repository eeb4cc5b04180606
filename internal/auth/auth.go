// Package auth holds the single shared admin credential and the persisted
// "admin is logged in" flag.
package auth

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/safar/solestride/internal/kv"
	"github.com/safar/solestride/internal/models"
	"go.uber.org/zap"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

var authenticatedFlag = []byte("true")

type Service struct {
	kv     kv.Store
	logger *zap.Logger
}

func NewService(store kv.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{kv: store, logger: logger}
}

// Login persists the flag on an exact credential match. A mismatch returns
// false and leaves any earlier login in place.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	if !matches(username, AdminUsername) || !matches(password, AdminPassword) {
		s.logger.Warn("Admin login rejected", zap.String("username", username))
		return false, nil
	}

	if err := s.kv.Set(ctx, models.KeyAdminAuth, authenticatedFlag); err != nil {
		return false, fmt.Errorf("persist admin session: %w", err)
	}
	s.logger.Info("Admin logged in")
	return true, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.kv.Remove(ctx, models.KeyAdminAuth); err != nil {
		return fmt.Errorf("clear admin session: %w", err)
	}
	s.logger.Info("Admin logged out")
	return nil
}

func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	value, err := s.kv.Get(ctx, models.KeyAdminAuth)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read admin session: %w", err)
	}
	return bytes.Equal(bytes.TrimSpace(value), authenticatedFlag), nil
}

func matches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
