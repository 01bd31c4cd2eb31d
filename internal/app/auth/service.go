package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/domain/users"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
	"github.com/AlexanderWinters/the-score-card/internal/metrics"
)

// Auth actions recorded in metrics.
const (
	ActionRegister = "register"
	ActionLogin    = "login"
)

// TokenType is returned with every issued token.
const TokenType = "bearer"

// ErrInvalidCredentials is the single failure returned for any bad login.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// Store defines the contract for persisting accounts.
type Store interface {
	Create(ctx context.Context, email, passwordHash string) (users.User, error)
	ByEmail(ctx context.Context, email string) (users.User, error)
}

// Service registers users and issues tokens.
type Service struct {
	store    Store
	tokens   *Tokens
	cost     int
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, tokens *Tokens, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
		recorder: recorder,
		logger:   logger,
	}
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, creds users.Credentials) (users.Token, error) {
	creds.Email = users.NormalizeEmail(creds.Email)
	if err := creds.ValidateRegistration(); err != nil {
		s.recorder.RecordAuthAttempt(ActionRegister, false)
		return users.Token{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return users.Token{}, err
	}
	user, err := s.store.Create(ctx, creds.Email, string(hash))
	if err != nil {
		s.recorder.RecordAuthAttempt(ActionRegister, false)
		return users.Token{}, err
	}
	s.recorder.RecordAuthAttempt(ActionRegister, true)
	logging.Info(s.logger, "user registered", logging.FieldUserID, user.ID)
	return s.issue(user)
}

// Login checks the password and returns a token. Unknown emails and wrong
// passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, creds users.Credentials) (users.Token, error) {
	email := users.NormalizeEmail(creds.Email)
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		s.recorder.RecordAuthAttempt(ActionLogin, false)
		if errors.Is(err, domain.ErrNotFound) {
			return users.Token{}, ErrInvalidCredentials
		}
		return users.Token{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.recorder.RecordAuthAttempt(ActionLogin, false)
		return users.Token{}, ErrInvalidCredentials
	}
	s.recorder.RecordAuthAttempt(ActionLogin, true)
	return s.issue(user)
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, raw string) (users.User, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return users.User{}, err
	}
	user, err := s.store.ByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return users.User{}, ErrInvalidToken
		}
		return users.User{}, err
	}
	return user, nil
}

func (s *Service) issue(user users.User) (users.Token, error) {
	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return users.Token{}, err
	}
	return users.Token{AccessToken: token, TokenType: TokenType}, nil
}
