// Package service contains application services for authentication, planner
// resources and bulk migration.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/goodvibes/planner/internal/crypto"
	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/limiter"
	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

// Default calendars provisioned for every new account.
var defaultCalendars = []model.Calendar{
	{Name: "Personal", Color: "#3b82f6", IsDefault: true},
	{Name: "Work", Color: "#10b981"},
	{Name: "Health", Color: "#f59e0b"},
}

// AuthService defines authentication and bootstrap operations.
type AuthService interface {
	// Register creates a new user and provisions its default calendars.
	Register(ctx context.Context, username, password string) (*model.User, error)
	// LoginWithIP applies rate-limiting and authenticates the user.
	LoginWithIP(ctx context.Context, username, password, ip string) (model.Token, error)
	// Resolve verifies a bearer token and returns the user it names.
	Resolve(ctx context.Context, token string) (*model.User, error)
	// EnsureDefaultUser creates the configured default account if absent.
	EnsureDefaultUser(ctx context.Context, username, password string) error
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	calendars repository.CalendarRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, calendars repository.CalendarRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, calendars: calendars, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new user record with a per-user salt and provisions the
// default calendar set.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("empty username/password")
	}
	saltAuth, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username: username,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), saltAuth),
		SaltAuth: saltAuth,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.provisionDefaultCalendars(ctx, username); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthServiceImpl) provisionDefaultCalendars(ctx context.Context, owner string) error {
	for _, c := range defaultCalendars {
		c.ID = model.NewID()
		c.UserID = owner
		if err := s.calendars.Create(ctx, &c); err != nil {
			return fmt.Errorf("provision calendar %q: %w", c.Name, err)
		}
	}
	return nil
}

// LoginWithIP authenticates with rate limiting by (username, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, username, password, ip string) (model.Token, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, username, ipHash)
	if err != nil {
		return model.Token{}, err
	}
	if !allowed {
		return model.Token{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, username, ipHash); ferr == nil && blocked {
			return model.Token{}, errs.ErrRateLimited
		}
		// unknown user and wrong password look identical to the caller
		return model.Token{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, username, ipHash)

	return s.issueAccessToken(username)
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(username string) (model.Token, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return model.Token{}, err
	}
	return model.Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: exp}, nil
}

// Resolve verifies an HS256 bearer token and loads the user it names. Any
// defect (bad signature, expiry, unknown subject) maps to ErrUnauthorized.
func (s *AuthServiceImpl) Resolve(ctx context.Context, token string) (*model.User, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrUnauthorized
	}

	v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
	if err := v.Validate(&claims); err != nil {
		return nil, errs.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, errs.ErrUnauthorized
	}

	u, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	return u, nil
}

// EnsureDefaultUser provisions the configured default account once per
// deployment. Safe to run on every startup.
func (s *AuthServiceImpl) EnsureDefaultUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("empty default username/password")
	}
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if _, err := s.Register(ctx, username, password); err != nil {
		// lost a race with a concurrent startup; the account exists
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}
