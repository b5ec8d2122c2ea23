package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	loginErr     error
	registerErr  error
	profileErr   error
	user         model.User
	lastRegister service.RegisterRequest
	lastProfile  service.ProfileRequest
	loginCalls   int
	registerCall int
	profileCalls int
}

func (f *fakeAuth) Register(_ context.Context, req service.RegisterRequest) error {
	f.registerCall++
	f.lastRegister = req
	return f.registerErr
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (model.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return model.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, id int64, req service.ProfileRequest) (model.User, error) {
	f.profileCalls++
	f.lastProfile = req
	if f.profileErr != nil {
		return model.User{}, f.profileErr
	}
	return model.User{ID: id, FullName: req.FullName, Email: req.Email}, nil
}

func openStorage(t *testing.T, path string) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func newTestStore(t *testing.T, auth *fakeAuth) *Store {
	t.Helper()
	return New(auth, openStorage(t, filepath.Join(t.TempDir(), "tally.db")))
}

func TestStore_LoginPersistsUser(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	auth := &fakeAuth{user: model.User{ID: 7, FullName: "Asha Rao", Email: "asha@example.com"}}

	kv := openStorage(t, dbPath)
	store := New(auth, kv)

	_, ok := store.Current()
	assert.False(t, ok)

	user, err := store.Login(ctx, "asha@example.com", "secret1!")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "Asha Rao", current.FullName)

	restarted := New(auth, kv)
	require.NoError(t, restarted.Rehydrate(ctx))
	current, ok = restarted.Current()
	require.True(t, ok)
	assert.Equal(t, int64(7), current.ID)
}

func TestStore_LoginServerError(t *testing.T) {
	auth := &fakeAuth{loginErr: &common.ServerError{Status: 401, Message: "Invalid credentials"}}
	store := newTestStore(t, auth)

	_, err := store.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", common.UserMessage(err))

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestStore_LoginRequiresCredentials(t *testing.T) {
	auth := &fakeAuth{}
	store := newTestStore(t, auth)

	_, err := store.Login(context.Background(), " ", "")
	assert.True(t, common.IsValidation(err))
	assert.Zero(t, auth.loginCalls)
}

func TestStore_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		message string
	}{
		{
			name:    "mismatch",
			input:   RegisterInput{FullName: "A", Email: "a@b.c", Password: "abcdef1!", ConfirmPassword: "abcdef1@"},
			message: "Passwords mismatch",
		},
		{
			name:    "weak",
			input:   RegisterInput{FullName: "A", Email: "a@b.c", Password: "abcdefgh", ConfirmPassword: "abcdefgh"},
			message: WeakPasswordMessage,
		},
		{
			name:    "missing fields",
			input:   RegisterInput{Email: "a@b.c", Password: "abcdef1!", ConfirmPassword: "abcdef1!"},
			message: "All fields are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{}
			store := newTestStore(t, auth)

			err := store.Register(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, common.IsValidation(err))
			assert.Equal(t, tt.message, common.UserMessage(err))
			assert.Zero(t, auth.registerCall, "validation failures must not reach the server")
		})
	}
}

func TestStore_Register(t *testing.T) {
	auth := &fakeAuth{}
	store := newTestStore(t, auth)

	err := store.Register(context.Background(), RegisterInput{
		FullName:        " Asha Rao ",
		Email:           "asha@example.com",
		Password:        "abcdef1!",
		ConfirmPassword: "abcdef1!",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, auth.registerCall)
	assert.Equal(t, "Asha Rao", auth.lastRegister.FullName)

	_, ok := store.Current()
	assert.False(t, ok, "registering does not log in")
}

func TestStore_RegisterServerError(t *testing.T) {
	auth := &fakeAuth{registerErr: &common.ServerError{Status: 400, Message: "Email already exists"}}
	store := newTestStore(t, auth)

	err := store.Register(context.Background(), RegisterInput{
		FullName: "A", Email: "a@b.c", Password: "abcdef1!", ConfirmPassword: "abcdef1!",
	})
	assert.Equal(t, "Email already exists", common.UserMessage(err))
}

func TestStore_LogoutClearsDurableStorage(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	kv := openStorage(t, dbPath)
	auth := &fakeAuth{user: model.User{ID: 3, FullName: "B", Email: "b@c.d"}}

	store := New(auth, kv)
	_, err := store.Login(ctx, "b@c.d", "pw")
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	_, ok := store.Current()
	assert.False(t, ok)

	_, err = kv.Get(ctx, UserKey)
	assert.ErrorIs(t, err, common.ErrNotFound)

	restarted := New(auth, kv)
	require.NoError(t, restarted.Rehydrate(ctx))
	_, ok = restarted.Current()
	assert.False(t, ok)
}

func TestStore_RehydrateDiscardsGarbage(t *testing.T) {
	ctx := context.Background()
	kv := openStorage(t, filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, kv.Put(ctx, UserKey, []byte("not json")))

	store := New(&fakeAuth{}, kv)
	require.NoError(t, store.Rehydrate(ctx))

	_, ok := store.Current()
	assert.False(t, ok)
	_, err := kv.Get(ctx, UserKey)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{user: model.User{ID: 9, FullName: "Old", Email: "old@example.com"}}
	store := newTestStore(t, auth)

	_, err := store.UpdateProfile(ctx, ProfileInput{FullName: "New", Email: "new@example.com"})
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)

	_, err = store.Login(ctx, "old@example.com", "pw")
	require.NoError(t, err)

	_, err = store.UpdateProfile(ctx, ProfileInput{
		FullName: "New", Email: "new@example.com", Password: "abcdef1!", ConfirmPassword: "different1!",
	})
	assert.True(t, common.IsValidation(err))
	assert.Zero(t, auth.profileCalls)

	user, err := store.UpdateProfile(ctx, ProfileInput{FullName: "New", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "New", user.FullName)
	assert.Empty(t, auth.lastProfile.Password)

	current, _ := store.Current()
	assert.Equal(t, "new@example.com", current.Email)
}

func TestStore_UpdateProfileFailureKeepsUser(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{user: model.User{ID: 9, FullName: "Old", Email: "old@example.com"}}
	store := newTestStore(t, auth)
	_, err := store.Login(ctx, "old@example.com", "pw")
	require.NoError(t, err)

	auth.profileErr = &common.TransportError{Op: "PUT /profile/9", Err: errors.New("refused")}
	_, err = store.UpdateProfile(ctx, ProfileInput{FullName: "New", Email: "new@example.com"})
	assert.Equal(t, common.ConnectivityMessage, common.UserMessage(err))

	current, _ := store.Current()
	assert.Equal(t, "Old", current.FullName)
}
