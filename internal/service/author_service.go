package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/useradmin/internal/auth"
	"github.com/example/useradmin/internal/config"
	"github.com/example/useradmin/internal/datamodels/author"
	"github.com/example/useradmin/internal/errs"
	"github.com/example/useradmin/internal/events"
	"github.com/example/useradmin/internal/validation"
)

// Principal is the verified identity handed to the session issuer. It
// never carries either form of the password.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthorService owns registration, credential verification and session
// issuance for authentication principals.
type AuthorService struct {
	repo   author.Repository
	jwt    *config.JWTConfig
	events *events.Publisher
}

// NewAuthorService creates the service. events may be nil.
func NewAuthorService(repo author.Repository, jwt *config.JWTConfig, pub *events.Publisher) *AuthorService {
	return &AuthorService{repo: repo, jwt: jwt, events: pub}
}

// Register validates the payload, hashes the password and inserts the
// author. The plaintext is discarded as soon as the hash exists.
func (s *AuthorService) Register(ctx context.Context, username, password string) (*author.Author, error) {
	if err := validation.ValidateRegistration(username, password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &author.Author{Username: username, Password: string(hash)}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := s.events.Publish(ctx, events.AuthorRegistered, &Principal{ID: a.ID, Username: a.Username, Email: a.Email}); err != nil {
		zap.L().Warn("audit publish failed", zap.String("event", events.AuthorRegistered), zap.Error(err))
	}
	return a, nil
}

// Verify checks a credential pair against the author store. A missing
// author and a wrong password are distinct failures; the bcrypt compare is
// constant time.
func (s *AuthorService) Verify(ctx context.Context, username, password string) (*Principal, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return nil, errs.ErrInvalidPassword
	}
	return &Principal{ID: a.ID, Username: a.Username, Email: a.Email}, nil
}

// Login verifies the credentials and issues the session token.
func (s *AuthorService) Login(ctx context.Context, username, password string) (string, *Principal, error) {
	p, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := auth.GenerateToken(s.jwt, p.ID, p.Username, p.Email)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}
