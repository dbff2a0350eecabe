// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login/logout, and the session
// tokens gating every other endpoint.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/common"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/auth"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/config"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/models"
	"github.com/NamalChandrasekara/Pill-Reminder-APP/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users and issue a first token
// - Login: verify credentials and mint a token
// - Logout: revoke the session behind a token
// - Authenticate: resolve a bearer token to a user identity
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns the
// user together with a fresh session token. A taken username surfaces as a
// ValidationError on the username field.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	verr := common.NewValidationError()
	if username == "" {
		verr.Add("username", "this field is required")
	}
	if password == "" {
		verr.Add("password", "this field is required")
	}
	if !verr.Empty() {
		return nil, "", verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.NewValidationError().Add("username", "a user with that username already exists")
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the username/password pair and, on success, returns the
// user and a new session token. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Logout deletes the session row, revoking the token immediately even
// though its signature remains valid until expiry.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to (userID, sessionID). The token
// must carry a valid signature AND name a session row that still exists and
// has not expired.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (string, string, error) {
	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	repo := s.repomanager.Sessions(s.db)
	session, err := repo.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrInvalidToken
		}
		return "", "", common.ErrorInternal
	}
	if session.ExpiresAt.Before(time.Now()) {
		return "", "", common.ErrTokenExpired
	}

	return session.UserID, session.ID, nil
}

func (s *UserService) issueToken(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.New().String()

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Create(ctx, sessionID, userID, s.sessionValidityDuration); err != nil {
		return "", err
	}

	return auth.GenerateToken(userID, sessionID, s.jwtSecret, s.sessionValidityDuration)
}
