package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"journal_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository はテスト用のUserRepositoryモック実装です。
type mockUserRepository struct {
	createFn      func(ctx context.Context, user *entity.User) error
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	findByIDFn    func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockSessionRepository はテスト用のSessionRepositoryモック実装です。
type mockSessionRepository struct {
	createFn       func(ctx context.Context, session *entity.Session) error
	findByIDFn     func(ctx context.Context, id string) (*entity.Session, error)
	revokeFn       func(ctx context.Context, id string) error
	countFn        func(ctx context.Context, userID uint) (int64, error)
	deleteOldestFn func(ctx context.Context, userID uint) error
	created        []*entity.Session
	revoked        []string
	deletedOldest  int
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	m.created = append(m.created, session)
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	m.revoked = append(m.revoked, id)
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	m.deletedOldest++
	if m.deleteOldestFn != nil {
		return m.deleteOldestFn(ctx, userID)
	}
	return nil
}

// mockJWTGenerator はテスト用のJWTGeneratorモック実装です。
type mockJWTGenerator struct {
	generateFn func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(userID, email)
	}
	return "access-token", nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

// TestSignup はパスワードがハッシュ化されて保存されることを検証します。
func TestSignup(t *testing.T) {
	t.Parallel()

	var created *entity.User
	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *entity.User) error {
			created = user
			return nil
		},
	}
	uc := NewAuthUsecase(users, &mockSessionRepository{}, &mockJWTGenerator{})

	require.NoError(t, uc.Signup(context.Background(), "user@example.com", "password123"))

	require.NotNil(t, created)
	assert.Equal(t, "user@example.com", created.Email)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

// TestSignup_ShortPassword は最低文字数未満のパスワードを拒否することを検証します。
func TestSignup_ShortPassword(t *testing.T) {
	t.Parallel()

	uc := NewAuthUsecase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTGenerator{})

	err := uc.Signup(context.Background(), "user@example.com", "short")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

// TestSignup_DuplicateEmail はリポジトリの重複エラーがそのまま返ることを検証します。
func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *entity.User) error {
			return ErrEmailAlreadyExists
		},
	}
	uc := NewAuthUsecase(users, &mockSessionRepository{}, &mockJWTGenerator{})

	err := uc.Signup(context.Background(), "user@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// TestLogin_Success は正しい資格情報でトークンの組とセッションが
// 発行されることを検証します。
func TestLogin_Success(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, Email: email, Password: hashPassword(t, "password123")}, nil
		},
	}
	sessions := &mockSessionRepository{}
	uc := NewAuthUsecase(users, sessions, &mockJWTGenerator{})

	meta := SessionMeta{UserAgent: "test-agent", IPAddress: "127.0.0.1"}
	pair, err := uc.Login(context.Background(), "user@example.com", "password123", meta)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, "access-token", pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 64, "refresh token should be 64 hex chars")

	require.Len(t, sessions.created, 1)
	s := sessions.created[0]
	assert.Equal(t, pair.RefreshToken, s.ID)
	assert.Equal(t, uint(1), s.UserID)
	assert.Equal(t, "test-agent", s.UserAgent)
	assert.Equal(t, "127.0.0.1", s.IPAddress)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), s.ExpiresAt, time.Minute)
}

// TestLogin_Failures は未知のユーザーと誤ったパスワードの双方で
// 同じ汎用エラーを返すことを検証します。
func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		users *mockUserRepository
	}{
		{
			name:  "unknown user",
			users: &mockUserRepository{},
		},
		{
			name: "wrong password",
			users: &mockUserRepository{
				findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
					return &entity.User{ID: 1, Email: email, Password: hashPassword(t, "password123")}, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessions := &mockSessionRepository{}
			uc := NewAuthUsecase(tt.users, sessions, &mockJWTGenerator{})

			pair, err := uc.Login(context.Background(), "user@example.com", "wrong-password", SessionMeta{})
			require.Error(t, err)
			assert.Equal(t, "invalid email or password", err.Error())
			assert.Nil(t, pair)
			assert.Empty(t, sessions.created, "no session should be created on failure")
		})
	}
}

// TestLogin_EvictsOldestSession はセッション上限到達時に最古の
// セッションが削除されることを検証します。
func TestLogin_EvictsOldestSession(t *testing.T) {
	t.Parallel()

	users := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: 1, Email: email, Password: hashPassword(t, "password123")}, nil
		},
	}
	sessions := &mockSessionRepository{
		countFn: func(ctx context.Context, userID uint) (int64, error) {
			return maxSessionsPerUser, nil
		},
	}
	uc := NewAuthUsecase(users, sessions, &mockJWTGenerator{})

	_, err := uc.Login(context.Background(), "user@example.com", "password123", SessionMeta{})
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.deletedOldest)
	assert.Len(t, sessions.created, 1)
}

// TestRefresh_RotatesSession はリフレッシュで旧セッションが失効し、
// 新しいトークンの組が発行されることを検証します。
func TestRefresh_RotatesSession(t *testing.T) {
	t.Parallel()

	now := time.Now()
	users := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return &entity.User{ID: id, Email: "user@example.com"}, nil
		},
	}
	sessions := &mockSessionRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Session, error) {
			return &entity.Session{
				ID:        id,
				UserID:    1,
				CreatedAt: now.Add(-time.Hour),
				ExpiresAt: now.Add(time.Hour),
			}, nil
		},
	}
	uc := NewAuthUsecase(users, sessions, &mockJWTGenerator{})

	pair, err := uc.Refresh(context.Background(), "old-token", SessionMeta{})
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, []string{"old-token"}, sessions.revoked)
	require.Len(t, sessions.created, 1)
	assert.NotEqual(t, "old-token", pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, sessions.created[0].ID)
}

// TestRefresh_Errors は不正・失効・期限切れトークンのエラーを検証します。
func TestRefresh_Errors(t *testing.T) {
	t.Parallel()

	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name    string
		findFn  func(ctx context.Context, id string) (*entity.Session, error)
		wantErr error
	}{
		{
			name:    "unknown token",
			findFn:  nil, // デフォルトでErrSessionNotFound
			wantErr: ErrInvalidRefreshToken,
		},
		{
			name: "revoked session",
			findFn: func(ctx context.Context, id string) (*entity.Session, error) {
				return &entity.Session{ID: id, UserID: 1, ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}, nil
			},
			wantErr: ErrSessionRevoked,
		},
		{
			name: "expired session",
			findFn: func(ctx context.Context, id string) (*entity.Session, error) {
				return &entity.Session{ID: id, UserID: 1, ExpiresAt: now.Add(-time.Hour)}, nil
			},
			wantErr: ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessions := &mockSessionRepository{findByIDFn: tt.findFn}
			uc := NewAuthUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})

			pair, err := uc.Refresh(context.Background(), "some-token", SessionMeta{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, pair)
		})
	}
}

// TestLogout はセッションの失効と不正トークンのマッピングを検証します。
func TestLogout(t *testing.T) {
	t.Parallel()

	sessions := &mockSessionRepository{}
	uc := NewAuthUsecase(&mockUserRepository{}, sessions, &mockJWTGenerator{})
	require.NoError(t, uc.Logout(context.Background(), "token-1"))
	assert.Equal(t, []string{"token-1"}, sessions.revoked)

	failing := &mockSessionRepository{
		revokeFn: func(ctx context.Context, id string) error {
			return ErrSessionNotFound
		},
	}
	uc = NewAuthUsecase(&mockUserRepository{}, failing, &mockJWTGenerator{})
	assert.ErrorIs(t, uc.Logout(context.Background(), "unknown"), ErrInvalidRefreshToken)
}
