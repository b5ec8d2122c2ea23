// Package session holds the authenticated user and keeps it in the durable local store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// UserKey is the durable store key holding the serialized current user.
const UserKey = "user"

// RegisterInput is the registration form.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileInput is the profile form. Leave Password empty to keep the current password.
type ProfileInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Store is the session store. The zero value is not usable; call New.
type Store struct {
	api   service.AuthAPI
	kv    service.KeyValueStore
	user  *model.User
	mutex sync.RWMutex
}

// New creates an unauthenticated store. Call Rehydrate to restore a saved session.
func New(api service.AuthAPI, kv service.KeyValueStore) *Store {
	return &Store{api: api, kv: kv}
}

// Rehydrate loads the saved user, if any. A missing key leaves the store unauthenticated.
func (s *Store) Rehydrate(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, UserKey)
	if errors.Is(err, common.ErrNotFound) {
		s.setUser(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == 0 {
		slog.Warn("Discarding unreadable saved session", "error", err)
		s.setUser(nil)
		return s.kv.Delete(ctx, UserKey)
	}

	s.setUser(&user)
	slog.Debug("Session restored", "user_id", user.ID)
	return nil
}

// Current returns the logged in user.
func (s *Store) Current() (model.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Login authenticates and persists the returned user.
func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, common.NewValidationError("email", "Email and password are required")
	}

	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return model.User{}, fmt.Errorf("login failed: %w", err)
	}

	if err := s.persist(ctx, user); err != nil {
		return model.User{}, err
	}

	slog.Info("Logged in", "user_id", user.ID)
	return user, nil
}

// Register validates the form locally and then creates the account.
// It does not log the user in.
func (s *Store) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegistration(in); err != nil {
		return err
	}

	err := s.api.Register(ctx, service.RegisterRequest{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Logout forgets the user locally and in the durable store.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.setUser(nil)
	slog.Info("Logged out")
	return nil
}

// UpdateProfile saves new account details; the server's user replaces the current one.
func (s *Store) UpdateProfile(ctx context.Context, in ProfileInput) (model.User, error) {
	current, ok := s.Current()
	if !ok {
		return model.User{}, common.ErrNotAuthenticated
	}
	if err := validateProfile(in); err != nil {
		return model.User{}, err
	}

	user, err := s.api.UpdateProfile(ctx, current.ID, service.ProfileRequest{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	if err := s.persist(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Store) persist(ctx context.Context, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Put(ctx, UserKey, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.setUser(&user)
	return nil
}

func (s *Store) setUser(user *model.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.user = user
}

func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return common.NewValidationError("", "All fields are required")
	}
	if in.Password != in.ConfirmPassword {
		return common.NewValidationError("confirmPassword", "Passwords mismatch")
	}
	if !IsStrongPassword(in.Password) {
		return common.NewValidationError("password", WeakPasswordMessage)
	}
	return nil
}

func validateProfile(in ProfileInput) error {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" {
		return common.NewValidationError("", "Name and email are required")
	}
	if in.Password == "" {
		return nil
	}
	if in.Password != in.ConfirmPassword {
		return common.NewValidationError("confirmPassword", "New passwords do not match!")
	}
	if !IsStrongPassword(in.Password) {
		return common.NewValidationError("password", "New password weak: 8+ chars, 1 number, 1 symbol.")
	}
	return nil
}
