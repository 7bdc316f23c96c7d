package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/metrics"
	"github.com/stockroom/stockroom/internal/model"
	"github.com/stockroom/stockroom/internal/repository"
	"github.com/stockroom/stockroom/internal/validation"
)

// ErrInvalidCredentials indicates the email/password pair does not match a user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the persistence contract consumed by AuthService.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionStore issues and revokes opaque bearer tokens.
// *session.Store satisfies it.
type SessionStore interface {
	Issue(ctx context.Context, token string, user *model.User) error
	Revoke(ctx context.Context, token string) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	validate *validator.Validate
	metrics  metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, sessions SessionStore, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
		metrics:  recorder,
	}
}

// RegisterInput is the registration request payload.
type RegisterInput struct {
	Name                 string `json:"name"                  validate:"required"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

// LoginInput is the login request payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register validates the input, creates the user and issues a bearer token.
// Every violated field is reported in one validation error; the uniqueness
// of email is enforced by the store's constraint and mapped to the same map.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	verrs := s.translateStructErrors(input)

	// Duplicate email joins the other field errors; the insert below stays
	// the authority when two registrations race.
	if len(verrs["email"]) == 0 {
		_, err := s.users.GetUserByEmail(ctx, input.Email)
		switch {
		case err == nil:
			verrs.Add("email", msgEmailTaken)
		case !errors.Is(err, repository.ErrUserNotFound):
			return nil, "", fmt.Errorf("failed to check email: %w", err)
		}
	}

	if !verrs.Empty() {
		return nil, "", validation.NewError(verrs)
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           generateULID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost a concurrent race for the same email.
			return nil, "", validation.Single("email", msgEmailTaken)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncUserRegistered()

	return user, token, nil
}

// Login resolves the user by email and password and issues a fresh token.
// Each login gets its own token; other sessions stay valid until logout.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*model.User, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if verrs := s.translateStructErrors(input); !verrs.Empty() {
		return nil, "", validation.NewError(verrs)
	}

	user, err := s.users.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.IncLoginSucceeded()

	return user, token, nil
}

// Logout revokes the presenting token. Other tokens of the same user are
// left untouched.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, user *model.User) (string, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.sessions.Issue(ctx, token, user); err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Validation messages for the auth payloads.
const (
	msgNameFieldRequired = "The name field is required."
	msgEmailRequired     = "The email field is required."
	msgEmailInvalid      = "The email must be a valid email address."
	msgEmailTaken        = "The email has already been taken."
	msgPasswordRequired  = "The password field is required."
	msgPasswordMin       = "The password must be at least 8 characters."
	msgPasswordMismatch  = "The password confirmation does not match."
)

// translateStructErrors runs the declarative struct tags and converts the
// resulting violations into the shared field-keyed map. The confirmation
// mismatch is reported under password, matching the API contract.
func (s *AuthService) translateStructErrors(input any) validation.Errors {
	verrs := validation.Errors{}

	err := s.validate.Struct(input)
	if err == nil {
		return verrs
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		verrs.Add("input", "The request payload is invalid.")
		return verrs
	}

	for _, fe := range fieldErrors {
		switch fe.StructField() {
		case "Name":
			verrs.Add("name", msgNameFieldRequired)
		case "Email":
			if fe.Tag() == "required" {
				verrs.Add("email", msgEmailRequired)
			} else {
				verrs.Add("email", msgEmailInvalid)
			}
		case "Password":
			if fe.Tag() == "required" {
				verrs.Add("password", msgPasswordRequired)
			} else {
				verrs.Add("password", msgPasswordMin)
			}
		case "PasswordConfirmation":
			verrs.Add("password", msgPasswordMismatch)
		}
	}

	return verrs
}
