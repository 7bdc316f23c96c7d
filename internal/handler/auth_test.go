package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/repository"
	"github.com/stockroom/stockroom/internal/service"
)

type memUserStore struct {
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, exists := s.users[user.Email]; exists {
		return repository.ErrEmailExists
	}
	clone := *user
	s.users[user.Email] = &clone
	return nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, exists := s.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

type memSessionStore struct {
	issued map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{issued: make(map[string]string)}
}

func (s *memSessionStore) Issue(_ context.Context, token string, user *model.User) error {
	s.issued[token] = user.ID
	return nil
}

func (s *memSessionStore) Revoke(_ context.Context, token string) error {
	delete(s.issued, token)
	return nil
}

func newAuthRouter(users *memUserStore, sessions *memSessionStore) *chi.Mux {
	svc := service.NewAuthService(users, sessions, nil)
	h := NewAuthHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
	return r
}

const validRegisterBody = `{
	"name": "Jordan Doe",
	"email": "jordan@example.com",
	"password": "supersecret1",
	"password_confirmation": "supersecret1"
}`

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(newMemUserStore(), newMemSessionStore())

	rec, env := doRequest(t, router, http.MethodPost, "/api/register", validRegisterBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if env.Message != "User registered successfully" {
		t.Errorf("message = %q", env.Message)
	}

	var data struct {
		User  *model.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.User == nil || data.User.Email != "jordan@example.com" {
		t.Errorf("data.user = %+v", data.User)
	}
	if !auth.ValidTokenFormat(data.Token) {
		t.Errorf("token %q should be well formed", data.Token)
	}

	// The password hash never appears on the wire.
	if strings.Contains(string(env.Data), "password") {
		t.Errorf("response must not leak password material: %s", env.Data)
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(newMemUserStore(), newMemSessionStore())

	body := `{"email": "not-an-email", "password": "short", "password_confirmation": "other"}`
	rec, env := doRequest(t, router, http.MethodPost, "/api/register", body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Message != "Validation failed" {
		t.Errorf("message = %q", env.Message)
	}
	if got := env.Errors["name"]; len(got) == 0 || got[0] != "The name field is required." {
		t.Errorf("name errors = %v", got)
	}
	if got := env.Errors["email"]; len(got) == 0 || got[0] != "The email must be a valid email address." {
		t.Errorf("email errors = %v", got)
	}
	if len(env.Errors["password"]) == 0 {
		t.Errorf("password errors = %v", env.Errors["password"])
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(newMemUserStore(), newMemSessionStore())

	if rec, _ := doRequest(t, router, http.MethodPost, "/api/register", validRegisterBody); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}

	rec, env := doRequest(t, router, http.MethodPost, "/api/register", validRegisterBody)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if got := env.Errors["email"]; len(got) == 0 || got[0] != "The email has already been taken." {
		t.Errorf("email errors = %v", got)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	sessions := newMemSessionStore()
	router := newAuthRouter(users, sessions)

	if rec, _ := doRequest(t, router, http.MethodPost, "/api/register", validRegisterBody); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	body := `{"email": "jordan@example.com", "password": "supersecret1"}`
	rec, env := doRequest(t, router, http.MethodPost, "/api/login", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Message != "Login successful" {
		t.Errorf("message = %q", env.Message)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if sessions.issued[data.Token] == "" {
		t.Error("login token should be live in the session store")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(newMemUserStore(), newMemSessionStore())

	body := `{"email": "jordan@example.com", "password": "wrongpassword"}`
	rec, env := doRequest(t, router, http.MethodPost, "/api/login", body)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env.Message != "Invalid credentials" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthHandler_Login_MalformedJSON(t *testing.T) {
	t.Parallel()

	router := newAuthRouter(newMemUserStore(), newMemSessionStore())

	rec, env := doRequest(t, router, http.MethodPost, "/api/login", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Message != "Invalid request body" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	sessions := newMemSessionStore()
	svc := service.NewAuthService(users, sessions, nil)
	h := NewAuthHandler(svc, testLogger())

	_, token, err := svc.Register(context.Background(), service.RegisterInput{
		Name:                 "Jordan Doe",
		Email:                "jordan@example.com",
		Password:             "supersecret1",
		PasswordConfirmation: "supersecret1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// The gate normally injects the auth context; simulate it here.
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	ctx := auth.ContextWithAuth(req.Context(), &model.AuthContext{
		UserID: "user-1",
		Token:  token,
	})
	rec := httptest.NewRecorder()
	h.Logout(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var env responseEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Message != "Logged out successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if _, live := sessions.issued[token]; live {
		t.Error("token should be revoked after logout")
	}
}
