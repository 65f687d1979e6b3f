package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/model"
	"github.com/minhokang/review-market/internal/repository"
)

// Korean user-facing messages kept verbatim from the product copy.
const (
	msgEmailNotFound    = "존재하지 않는 이메일입니다."
	msgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	msgDBFailure        = "데이터베이스 작업 중 오류가 발생했습니다"
)

// UserStore is the persistence surface the auth flows need. The
// repository implementation reports a missing row as sql.ErrNoRows and
// a duplicate email as repository.ErrEmailExists.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (uint64, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id uint64) (model.User, error)
	UpdateRefreshToken(ctx context.Context, id uint64, token string) error
}

// TokenPair is the result of a login or a refresh rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service implements registration, password login and refresh-token
// rotation. Persistence failures are logged here and replaced with a
// generic server error before they cross the boundary.
type Service struct {
	users  UserStore
	tokens *TokenIssuer
	cost   int
	log    *slog.Logger
}

func NewService(users UserStore, tokens *TokenIssuer, bcryptCost int, log *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, cost: bcryptCost, log: log}
}

// Register creates a user after checking the email is unused. The
// returned view never carries the password or refresh token.
func (s *Service) Register(ctx context.Context, email, name, password string) (model.PublicUser, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return model.PublicUser{}, apperr.Validation("User already exists", map[string]string{"email": email})
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.PublicUser{}, s.serverErr("register: lookup by email", err)
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return model.PublicUser{}, s.serverErr("register: hash password", err)
	}
	id, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		// The unique index can still fire under concurrent registration.
		if errors.Is(err, repository.ErrEmailExists) {
			return model.PublicUser{}, apperr.Validation("User already exists", map[string]string{"email": email})
		}
		return model.PublicUser{}, s.serverErr("register: insert user", err)
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, s.serverErr("register: load created user", err)
	}
	return u.Public(), nil
}

// Login verifies credentials and returns the public user view. The two
// failure modes stay distinguishable by message, matching the product's
// established behavior.
func (s *Service) Login(ctx context.Context, email, password string) (model.PublicUser, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublicUser{}, apperr.Authentication(msgEmailNotFound)
		}
		return model.PublicUser{}, s.serverErr("login: lookup by email", err)
	}
	if !VerifyPassword(u.Password, password) {
		return model.PublicUser{}, apperr.Authentication(msgPasswordMismatch)
	}
	return u.Public(), nil
}

// IssueTokenPair signs a fresh access/refresh pair and persists the
// refresh token as the user's single valid one.
func (s *Service) IssueTokenPair(ctx context.Context, userID uint64) (TokenPair, error) {
	access, err := s.tokens.Issue(userID, TokenAccess)
	if err != nil {
		return TokenPair{}, s.serverErr("issue access token", err)
	}
	refresh, err := s.tokens.Issue(userID, TokenRefresh)
	if err != nil {
		return TokenPair{}, s.serverErr("issue refresh token", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return TokenPair{}, s.serverErr("persist refresh token", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the token pair. The presented token must exactly
// match the stored one; after a successful rotation the old value is
// permanently invalid. Two concurrent rotations race on the single
// stored column (last write wins) — the loser's client ends up with a
// dead token and must log in again.
func (s *Service) Refresh(ctx context.Context, userID uint64, presented string) (TokenPair, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TokenPair{}, apperr.Authentication("Unauthorized")
		}
		return TokenPair{}, s.serverErr("refresh: load user", err)
	}
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return TokenPair{}, apperr.Authentication("Unauthorized")
	}
	return s.IssueTokenPair(ctx, userID)
}

// GetByID returns the public view of a user.
func (s *Service) GetByID(ctx context.Context, id uint64) (model.PublicUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublicUser{}, apperr.NotFound("Not Found")
		}
		return model.PublicUser{}, s.serverErr("load user", err)
	}
	return u.Public(), nil
}

// EnsureOAuthUser finds a user by the email an OAuth provider vouched
// for, provisioning one with an unguessable password when absent.
func (s *Service) EnsureOAuthUser(ctx context.Context, email, name string) (model.PublicUser, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return u.Public(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.PublicUser{}, s.serverErr("oauth: lookup by email", err)
	}
	hash, err := HashPassword(randomPassword(), s.cost)
	if err != nil {
		return model.PublicUser{}, s.serverErr("oauth: hash password", err)
	}
	id, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		return model.PublicUser{}, s.serverErr("oauth: create user", err)
	}
	created, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, s.serverErr("oauth: load created user", err)
	}
	return created.Public(), nil
}

func (s *Service) serverErr(op string, err error) *apperr.Error {
	s.log.Error("persistence failure", "op", op, "err", err)
	return apperr.Server(msgDBFailure)
}
