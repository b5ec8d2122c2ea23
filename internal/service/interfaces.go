// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
)

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileRequest is the payload for updating an account. An empty Password keeps the old one.
type ProfileRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AuthAPI is the part of the remote API that deals with accounts.
type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email, password string) (model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req ProfileRequest) (model.User, error)
}

// LedgerAPI is the part of the remote API that deals with transactions.
// Mutations return nothing useful; callers re-read with Dashboard.
type LedgerAPI interface {
	Dashboard(ctx context.Context, userID int64) (model.Dashboard, error)
	CreateTransaction(ctx context.Context, userID int64, draft model.Draft) error
	UpdateTransaction(ctx context.Context, userID int64, draft model.Draft) error
	DeleteTransaction(ctx context.Context, id int64) error
	Trash(ctx context.Context, userID int64) ([]model.Transaction, error)
	RestoreTransaction(ctx context.Context, id int64) error
}

// API is the full remote finance API.
type API interface {
	AuthAPI
	LedgerAPI
}

// KeyValueStore is the durable local store. Get returns common.ErrNotFound for missing keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
