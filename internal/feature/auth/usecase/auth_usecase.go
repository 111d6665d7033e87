// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"journal_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxSessionsPerUser は1ユーザーが同時に保持できるセッション数の上限です。
	// 上限を超えた場合、最も古いセッションを削除します。
	maxSessionsPerUser = 5

	// refreshTokenTTL はリフレッシュトークンの有効期間です。
	refreshTokenTTL = 30 * 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair はログイン・リフレッシュ成功時に発行されるトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionMeta はセッション作成時に記録するクライアント情報です。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// newRefreshToken は暗号学的に安全な64文字のhexトークンを生成します。
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Email: email, Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*TokenPair, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, errors.New("invalid email or password")
	}

	// 注入されたジェネレーターを使用してJWTトークンを生成
	access, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	refresh, err := u.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// createSession は新しいセッションを永続化し、リフレッシュトークンを返します。
// セッション数が上限に達している場合、最も古いセッションを削除します。
func (u *authUsecase) createSession(ctx context.Context, userID uint, meta SessionMeta) (string, error) {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return "", fmt.Errorf("failed to evict oldest session: %w", err)
		}
	}

	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組を発行します。
// 使用済みトークンの再利用を防ぐため、古いセッションは失効させます（ローテーション）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// トークンローテーション: 旧セッションを失効させてから新規発行
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := u.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout はリフレッシュトークンに対応するセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return nil
}
