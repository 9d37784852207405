package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-account-service/internal/basicauth"
	"github.com/sbilibin2017/gw-account-service/internal/hasher"
	"github.com/sbilibin2017/gw-account-service/internal/models"
	"github.com/sbilibin2017/gw-account-service/internal/repositories"
	"github.com/sbilibin2017/gw-account-service/internal/services"
)

func strPtr(s string) *string { return &s }

func storedAccount(t *testing.T, identifier, secret string) *models.AccountDB {
	t.Helper()
	stored, err := hasher.New().Hash(secret)
	require.NoError(t, err)
	return &models.AccountDB{
		ID:          1,
		Identifier:  identifier,
		DisplayName: identifier,
		SecretHash:  stored,
		Note:        strPtr(""),
	}
}

func TestAccountService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)

	svc := services.NewAccountService(mockReader, mockWriter, hasher.New(), nil)

	tests := []struct {
		name       string
		identifier string
		secret     string
		setup      func()
		wantErr    error
	}{
		{
			name:       "empty identifier",
			identifier: "",
			secret:     "pw1",
			wantErr:    services.ErrValidation,
		},
		{
			name:       "empty secret",
			identifier: "alice",
			secret:     "",
			wantErr:    services.ErrValidation,
		},
		{
			name:       "duplicate",
			identifier: "bob",
			secret:     "pw1",
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "bob").
					Return(&models.AccountDB{Identifier: "bob"}, nil)
			},
			wantErr: services.ErrAccountAlreadyExists,
		},
		{
			name:       "reader error",
			identifier: "eve",
			secret:     "pw1",
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "eve").
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
		{
			name:       "concurrent signup hits unique index",
			identifier: "carol",
			secret:     "pw1",
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "carol").Return(nil, nil)
				mockWriter.EXPECT().Save(gomock.Any(), "carol", "carol", gomock.Any()).
					Return(nil, repositories.ErrDuplicateIdentifier)
			},
			wantErr: services.ErrAccountAlreadyExists,
		},
		{
			name:       "writer error",
			identifier: "dan",
			secret:     "pw1",
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "dan").Return(nil, nil)
				mockWriter.EXPECT().Save(gomock.Any(), "dan", "dan", gomock.Any()).
					Return(nil, errors.New("save error"))
			},
			wantErr: errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			acc, err := svc.Create(context.Background(), tt.identifier, tt.secret)
			assert.Nil(t, acc)
			if errors.Is(tt.wantErr, services.ErrValidation) {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestAccountService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)
	h := hasher.New()

	svc := services.NewAccountService(mockReader, mockWriter, h, nil)

	mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(nil, nil)
	mockWriter.EXPECT().
		Save(gomock.Any(), "alice", "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, identifier, displayName, secretHash string) (*models.AccountDB, error) {
			assert.NotContains(t, secretHash, "pw1")
			ok, err := h.Verify(secretHash, "pw1")
			assert.NoError(t, err)
			assert.True(t, ok)
			return &models.AccountDB{ID: 1, Identifier: identifier, DisplayName: displayName, SecretHash: secretHash, Note: strPtr("")}, nil
		})

	acc, err := svc.Create(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, &models.Account{Identifier: "alice", DisplayName: "alice"}, acc)
}

func TestAccountService_Create_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)
	mockHasher := services.NewMockSecretHasher(ctrl)

	svc := services.NewAccountService(mockReader, mockWriter, mockHasher, nil)

	mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(nil, nil)
	mockHasher.EXPECT().Hash("pw1").Return("", errors.New("entropy exhausted"))

	_, err := svc.Create(context.Background(), "alice", "pw1")
	assert.EqualError(t, err, "entropy exhausted")
}

func TestAccountService_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)
	svc := services.NewAccountService(mockReader, mockWriter, hasher.New(), nil)

	alice := storedAccount(t, "alice", "pw1")
	alice.DisplayName = "Alice"
	alice.Note = strPtr("hi")

	tests := []struct {
		name    string
		path    string
		header  string
		setup   func()
		want    *models.Account
		wantErr error
	}{
		{
			name:    "malformed header",
			path:    "alice",
			header:  "Token abc",
			wantErr: services.ErrMalformedCredentials,
		},
		{
			name:    "identity mismatch is rejected before lookup",
			path:    "bob",
			header:  basicauth.Encode("alice", "pw1"),
			wantErr: services.ErrAuthenticationFailed,
		},
		{
			name:   "not found",
			path:   "ghost",
			header: basicauth.Encode("ghost", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: services.ErrAccountNotFound,
		},
		{
			name:   "wrong secret",
			path:   "alice",
			header: basicauth.Encode("alice", "wrong"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			wantErr: services.ErrAuthenticationFailed,
		},
		{
			name:   "corrupt stored secret",
			path:   "mallory",
			header: basicauth.Encode("mallory", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "mallory").
					Return(&models.AccountDB{Identifier: "mallory", SecretHash: "no-separator"}, nil)
			},
			wantErr: hasher.ErrMalformedStoredSecret,
		},
		{
			name:   "success",
			path:   "alice",
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			want: &models.Account{Identifier: "alice", DisplayName: "Alice", Note: strPtr("hi")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			acc, err := svc.Read(context.Background(), tt.path, tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, acc)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, acc)
		})
	}
}

func TestAccountService_Read_MismatchIsNotMalformed(t *testing.T) {
	svc := services.NewAccountService(nil, nil, hasher.New(), nil)

	_, err := svc.Read(context.Background(), "bob", basicauth.Encode("alice", "pw1"))
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)
	assert.NotErrorIs(t, err, services.ErrMalformedCredentials)
}

func TestAccountService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)
	svc := services.NewAccountService(mockReader, mockWriter, hasher.New(), nil)

	alice := storedAccount(t, "alice", "pw1")

	tests := []struct {
		name    string
		path    string
		upd     models.AccountUpdate
		header  string
		setup   func()
		want    *models.Account
		wantErr error
	}{
		{
			name:    "nothing to update",
			path:    "alice",
			upd:     models.AccountUpdate{},
			header:  basicauth.Encode("alice", "pw1"),
			wantErr: services.ErrValidation,
		},
		{
			name:    "secret is not updatable even with valid credentials",
			path:    "alice",
			upd:     models.AccountUpdate{DisplayName: strPtr("A"), Secret: strPtr("new")},
			header:  basicauth.Encode("alice", "pw1"),
			wantErr: services.ErrValidation,
		},
		{
			name:    "malformed header",
			path:    "alice",
			upd:     models.AccountUpdate{Note: strPtr("n")},
			header:  "Basic %%%",
			wantErr: services.ErrMalformedCredentials,
		},
		{
			name:   "not found",
			path:   "ghost",
			upd:    models.AccountUpdate{Note: strPtr("n")},
			header: basicauth.Encode("ghost", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: services.ErrAccountNotFound,
		},
		{
			name:   "wrong secret",
			path:   "alice",
			upd:    models.AccountUpdate{Note: strPtr("n")},
			header: basicauth.Encode("alice", "nope"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			wantErr: services.ErrAuthenticationFailed,
		},
		{
			name:   "foreign account is forbidden after authentication",
			path:   "bob",
			upd:    models.AccountUpdate{Note: strPtr("n")},
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			wantErr: services.ErrForbidden,
		},
		{
			name:   "foreign account with wrong secret is an authentication failure",
			path:   "bob",
			upd:    models.AccountUpdate{Note: strPtr("n")},
			header: basicauth.Encode("alice", "nope"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			wantErr: services.ErrAuthenticationFailed,
		},
		{
			name:   "row vanished before write",
			path:   "alice",
			upd:    models.AccountUpdate{Note: strPtr("n")},
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
				mockWriter.EXPECT().UpdateProfile(gomock.Any(), "alice", "alice", strPtr("n")).
					Return(repositories.ErrNotFound)
			},
			wantErr: services.ErrAccountNotFound,
		},
		{
			name:   "display name defaults to identifier",
			path:   "alice",
			upd:    models.AccountUpdate{Note: strPtr("only note")},
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
				mockWriter.EXPECT().UpdateProfile(gomock.Any(), "alice", "alice", strPtr("only note")).Return(nil)
			},
			want: &models.Account{Identifier: "alice", DisplayName: "alice", Note: strPtr("only note")},
		},
		{
			name:   "empty secret field is accepted",
			path:   "alice",
			upd:    models.AccountUpdate{DisplayName: strPtr("Alice"), Secret: strPtr("")},
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
				mockWriter.EXPECT().UpdateProfile(gomock.Any(), "alice", "Alice", (*string)(nil)).Return(nil)
			},
			want: &models.Account{Identifier: "alice", DisplayName: "Alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			acc, err := svc.Update(context.Background(), tt.path, tt.upd, tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, acc)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, acc)
		})
	}
}

func TestAccountService_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockAccountReader(ctrl)
	mockWriter := services.NewMockAccountWriter(ctrl)
	svc := services.NewAccountService(mockReader, mockWriter, hasher.New(), nil)

	alice := storedAccount(t, "alice", "pw1")

	tests := []struct {
		name    string
		header  string
		setup   func()
		wantErr error
	}{
		{
			name:    "malformed header",
			header:  "",
			wantErr: services.ErrMalformedCredentials,
		},
		{
			name:   "not found",
			header: basicauth.Encode("ghost", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: services.ErrAccountNotFound,
		},
		{
			name:   "wrong secret",
			header: basicauth.Encode("alice", "bad"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
			},
			wantErr: services.ErrAuthenticationFailed,
		},
		{
			name:   "writer error",
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
				mockWriter.EXPECT().MarkDeleted(gomock.Any(), "alice").Return(errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
		{
			name:   "success",
			header: basicauth.Encode("alice", "pw1"),
			setup: func() {
				mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
				mockWriter.EXPECT().MarkDeleted(gomock.Any(), "alice").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			err := svc.Close(context.Background(), tt.header)
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, services.ErrAuthenticationFailed), errors.Is(tt.wantErr, services.ErrAccountNotFound):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestAccountService_Cache(t *testing.T) {
	alice := storedAccount(t, "alice", "pw1")

	t.Run("hit skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockReader := services.NewMockAccountReader(ctrl)
		mockCache := services.NewMockAccountCache(ctrl)
		svc := services.NewAccountService(mockReader, services.NewMockAccountWriter(ctrl), hasher.New(), mockCache)

		mockCache.EXPECT().Get(gomock.Any(), "alice").Return(alice, nil)

		acc, err := svc.Read(context.Background(), "alice", basicauth.Encode("alice", "pw1"))
		assert.NoError(t, err)
		assert.Equal(t, "alice", acc.Identifier)
	})

	t.Run("miss populates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockReader := services.NewMockAccountReader(ctrl)
		mockCache := services.NewMockAccountCache(ctrl)
		svc := services.NewAccountService(mockReader, services.NewMockAccountWriter(ctrl), hasher.New(), mockCache)

		gomock.InOrder(
			mockCache.EXPECT().Get(gomock.Any(), "alice").Return(nil, nil),
			mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil),
			mockCache.EXPECT().Set(gomock.Any(), alice).Return(nil),
		)

		_, err := svc.Read(context.Background(), "alice", basicauth.Encode("alice", "pw1"))
		assert.NoError(t, err)
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockReader := services.NewMockAccountReader(ctrl)
		mockCache := services.NewMockAccountCache(ctrl)
		svc := services.NewAccountService(mockReader, services.NewMockAccountWriter(ctrl), hasher.New(), mockCache)

		mockCache.EXPECT().Get(gomock.Any(), "alice").Return(nil, errors.New("redis down"))
		mockReader.EXPECT().GetByIdentifier(gomock.Any(), "alice").Return(alice, nil)
		mockCache.EXPECT().Set(gomock.Any(), alice).Return(errors.New("redis down"))

		_, err := svc.Read(context.Background(), "alice", basicauth.Encode("alice", "pw1"))
		assert.NoError(t, err)
	})

	t.Run("absent account is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockReader := services.NewMockAccountReader(ctrl)
		mockCache := services.NewMockAccountCache(ctrl)
		svc := services.NewAccountService(mockReader, services.NewMockAccountWriter(ctrl), hasher.New(), mockCache)

		mockCache.EXPECT().Get(gomock.Any(), "ghost").Return(nil, nil)
		mockReader.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(nil, nil)

		_, err := svc.Read(context.Background(), "ghost", basicauth.Encode("ghost", "pw1"))
		assert.ErrorIs(t, err, services.ErrAccountNotFound)
	})

	t.Run("update and close evict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockWriter := services.NewMockAccountWriter(ctrl)
		mockCache := services.NewMockAccountCache(ctrl)
		svc := services.NewAccountService(services.NewMockAccountReader(ctrl), mockWriter, hasher.New(), mockCache)

		mockCache.EXPECT().Get(gomock.Any(), "alice").Return(alice, nil).Times(2)
		gomock.InOrder(
			mockWriter.EXPECT().UpdateProfile(gomock.Any(), "alice", "Alice", (*string)(nil)).Return(nil),
			mockCache.EXPECT().Delete(gomock.Any(), "alice").Return(nil),
			mockWriter.EXPECT().MarkDeleted(gomock.Any(), "alice").Return(nil),
			mockCache.EXPECT().Delete(gomock.Any(), "alice").Return(errors.New("redis down")),
		)

		_, err := svc.Update(context.Background(), "alice", models.AccountUpdate{DisplayName: strPtr("Alice")}, basicauth.Encode("alice", "pw1"))
		assert.NoError(t, err)
		assert.NoError(t, svc.Close(context.Background(), basicauth.Encode("alice", "pw1")))
	})
}
