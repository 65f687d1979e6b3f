package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/model"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	seq   uint64
	users map[uint64]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint64]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, email, name, passwordHash string) (uint64, error) {
	f.seq++
	now := time.Now().UTC()
	f.users[f.seq] = &model.User{
		ID: f.seq, Email: email, Name: name, Password: passwordHash,
		CreatedAt: now, UpdatedAt: now,
	}
	return f.seq, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUsers) FindByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return *u, nil
}

func (f *fakeUsers) UpdateRefreshToken(_ context.Context, id uint64, token string) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.RefreshToken = &token
	return nil
}

func newTestService(users UserStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, testIssuer(), 4, log) // low cost keeps the suite fast
}

func TestRegisterStripsSensitiveFields(t *testing.T) {
	svc := newTestService(newFakeUsers())

	user, err := svc.Register(context.Background(), "a@x.com", "A", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 || user.Email != "a@x.com" || user.Name != "A" {
		t.Fatalf("unexpected view: %+v", user)
	}

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := strings.ToLower(string(raw))
	if strings.Contains(body, "password") || strings.Contains(body, "refreshtoken") {
		t.Fatalf("view leaks credentials: %s", raw)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "A", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "a@x.com", "B", "pw2")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != 422 {
		t.Fatalf("want 422 validation error, got %v", err)
	}
	data, ok := ae.Data.(map[string]string)
	if !ok || data["email"] != "a@x.com" {
		t.Fatalf("want email in data, got %#v", ae.Data)
	}
	if len(users.users) != 1 {
		t.Fatalf("duplicate register must not create a record, have %d", len(users.users))
	}
}

func TestLoginFailureMessages(t *testing.T) {
	svc := newTestService(newFakeUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "A", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "missing@x.com", "pw")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != 401 || ae.Message != "존재하지 않는 이메일입니다." {
		t.Fatalf("unknown email: got %v", err)
	}

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	if !errors.As(err, &ae) || ae.Status != 401 || ae.Message != "비밀번호가 일치하지 않습니다." {
		t.Fatalf("wrong password: got %v", err)
	}

	if _, err := svc.Login(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("correct credentials: %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "A", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.IssueTokenPair(ctx, user.ID)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	stored := users.users[user.ID].RefreshToken
	if stored == nil || *stored != pair.RefreshToken {
		t.Fatal("refresh token not persisted on issue")
	}

	rotated, err := svc.Refresh(ctx, user.ID, pair.RefreshToken)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("rotation must produce a new refresh token")
	}
	stored = users.users[user.ID].RefreshToken
	if stored == nil || *stored != rotated.RefreshToken {
		t.Fatal("rotated refresh token not persisted")
	}

	// Exactly one rotation per token: the superseded value is dead.
	_, err = svc.Refresh(ctx, user.ID, pair.RefreshToken)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != 401 || ae.Message != "Unauthorized" {
		t.Fatalf("stale token should be rejected, got %v", err)
	}
}

func TestRefreshUnknownUser(t *testing.T) {
	svc := newTestService(newFakeUsers())
	_, err := svc.Refresh(context.Background(), 99, "whatever")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != 401 {
		t.Fatalf("want 401, got %v", err)
	}
}

func TestEnsureOAuthUser(t *testing.T) {
	users := newFakeUsers()
	svc := newTestService(users)
	ctx := context.Background()

	created, err := svc.EnsureOAuthUser(ctx, "g@x.com", "G")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	again, err := svc.EnsureOAuthUser(ctx, "g@x.com", "ignored")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if created.ID != again.ID {
		t.Fatalf("same email should resolve to one user: %d vs %d", created.ID, again.ID)
	}
	if len(users.users) != 1 {
		t.Fatalf("want one user, have %d", len(users.users))
	}
}
