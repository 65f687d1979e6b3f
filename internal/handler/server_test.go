package handler_test

// The suite wires the real router, gates and services against in-memory
// fakes of the persistence and session layers, and drives everything
// through httptest the way a client would.

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/auth"
	"github.com/minhokang/review-market/internal/handler"
	"github.com/minhokang/review-market/internal/middleware"
	"github.com/minhokang/review-market/internal/model"
	"github.com/minhokang/review-market/internal/router"
	"github.com/minhokang/review-market/internal/service"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testSessionSecret = "test-session-secret"
)

// ----- fakes -----

type fakeUsers struct {
	seq   uint64
	users map[uint64]*model.User
}

func (f *fakeUsers) Create(_ context.Context, email, name, passwordHash string) (uint64, error) {
	f.seq++
	now := time.Now().UTC()
	f.users[f.seq] = &model.User{ID: f.seq, Email: email, Name: name, Password: passwordHash, CreatedAt: now, UpdatedAt: now}
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

type fakeProducts struct {
	seq      uint64
	products map[uint64]model.Product
}

func (f *fakeProducts) Create(_ context.Context, name string, price int64) (model.Product, error) {
	f.seq++
	now := time.Now().UTC()
	p := model.Product{ID: f.seq, Name: name, Price: price, CreatedAt: now, UpdatedAt: now}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uint64) (model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, sql.ErrNoRows
	}
	return p, nil
}

type fakeReviews struct {
	seq     uint64
	reviews map[uint64]model.Review
}

func (f *fakeReviews) Create(_ context.Context, title, description string, rating int, productID, authorID uint64) (model.Review, error) {
	f.seq++
	now := time.Now().UTC()
	rv := model.Review{ID: f.seq, Title: title, Description: description, Rating: rating, ProductID: productID, AuthorID: authorID, CreatedAt: now, UpdatedAt: now}
	f.reviews[rv.ID] = rv
	return rv, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id uint64) (model.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return model.Review{}, sql.ErrNoRows
	}
	return rv, nil
}

func (f *fakeReviews) GetAll(_ context.Context) ([]model.Review, error) {
	out := []model.Review{}
	for _, rv := range f.reviews {
		out = append(out, rv)
	}
	return out, nil
}

func (f *fakeReviews) Update(_ context.Context, id uint64, title, description string, rating int) (model.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return model.Review{}, sql.ErrNoRows
	}
	rv.Title, rv.Description, rv.Rating = title, description, rating
	f.reviews[id] = rv
	return rv, nil
}

func (f *fakeReviews) Delete(_ context.Context, id uint64) (model.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return model.Review{}, sql.ErrNoRows
	}
	delete(f.reviews, id)
	return rv, nil
}

// memSessions is an in-memory session.Store.
type memSessions struct {
	seq  int
	byID map[string]uint64
}

func (m *memSessions) Create(_ context.Context, userID uint64) (string, error) {
	m.seq++
	sid := "sid-" + strconv.Itoa(m.seq)
	m.byID[sid] = userID
	return sid, nil
}

func (m *memSessions) Get(_ context.Context, sid string) (uint64, error) {
	id, ok := m.byID[sid]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return id, nil
}

func (m *memSessions) Destroy(_ context.Context, sid string) error {
	delete(m.byID, sid)
	return nil
}

// ----- wiring -----

type testServer struct {
	e        *echo.Echo
	users    *fakeUsers
	reviews  *fakeReviews
	products *fakeProducts
	sessions *memSessions
	tokens   *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := &fakeUsers{users: map[uint64]*model.User{}}
	products := &fakeProducts{products: map[uint64]model.Product{}}
	reviews := &fakeReviews{reviews: map[uint64]model.Review{}}
	sessions := &memSessions{byID: map[string]uint64{}}

	tokens := auth.NewTokenIssuer(testJWTSecret, time.Hour, 14*24*time.Hour)
	authSvc := auth.NewService(users, tokens, 4, log)
	productSvc := service.NewProductService(products, log)
	reviewSvc := service.NewReviewService(reviews, log)

	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	router.Register(e, router.Deps{
		Auth:        handler.NewAuthHandler(authSvc, sessions, testSessionSecret),
		Products:    handler.NewProductHandler(productSvc),
		Reviews:     handler.NewReviewHandler(reviewSvc, nil),
		SessionAuth: middleware.SessionAuth(sessions, testSessionSecret, users),
		AccessAuth:  middleware.AccessTokenAuth(tokens),
		RefreshAuth: middleware.RefreshTokenAuth(tokens),
		ReviewOwner: middleware.ReviewOwnership(reviews),
		LoginLimit:  middleware.RateLimit(nil, 0, 0),
	})

	return &testServer{e: e, users: users, reviews: reviews, products: products, sessions: sessions, tokens: tokens}
}

func (ts *testServer) do(t *testing.T, method, path, body string, mod func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if mod != nil {
		mod(req)
	}
	w := httptest.NewRecorder()
	ts.e.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

// register creates a user through the API and returns its id.
func (ts *testServer) register(t *testing.T, email, name, password string) uint64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/users",
		`{"email":"`+email+`","name":"`+name+`","password":"`+password+`"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: code %d body %s", email, w.Code, w.Body.String())
	}
	return uint64(decode(t, w)["id"].(float64))
}

// accessToken mints a valid bearer token for the user.
func (ts *testServer) accessToken(t *testing.T, userID uint64) string {
	t.Helper()
	tok, err := ts.tokens.Issue(userID, auth.TokenAccess)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
