package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

func newAuth(users *fakeUsers, cals *fakeCalendars, lim *fakeLimiter, ttl time.Duration) *AuthServiceImpl {
	return NewAuthService(users, cals, []byte("test-signing-key"), ttl, lim)
}

func TestAuth_Register_Basics(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	cals := &fakeCalendars{}
	s := newAuth(users, cals, &fakeLimiter{}, time.Minute)

	if _, err := s.Register(context.Background(), "", ""); err == nil {
		t.Fatalf("want validation error on empty username/password")
	}

	u, err := s.Register(context.Background(), "alice", "pwd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username=%q", u.Username)
	}
	if len(u.PwdHash) == 0 || len(u.SaltAuth) == 0 {
		t.Fatalf("missing hash/salt")
	}
	if string(u.PwdHash) == "pwd" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestAuth_Register_ProvisionsDefaultCalendars(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	cals := &fakeCalendars{}
	s := newAuth(users, cals, &fakeLimiter{}, time.Minute)

	if _, err := s.Register(context.Background(), "alice", "pwd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, _ := cals.ListByOwner(context.Background(), "alice")
	if len(got) != 3 {
		t.Fatalf("calendars=%d, want 3", len(got))
	}
	names := map[string]model.Calendar{}
	for _, c := range got {
		names[c.Name] = c
	}
	for _, want := range []string{"Personal", "Work", "Health"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("missing default calendar %q", want)
		}
	}
	if !names["Personal"].IsDefault {
		t.Fatalf("Personal should be the default calendar")
	}
	if names["Work"].IsDefault || names["Health"].IsDefault {
		t.Fatalf("only one calendar should be default")
	}
}

func TestAuth_Register_Duplicate(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s := newAuth(users, &fakeCalendars{}, &fakeLimiter{}, time.Minute)

	if _, err := s.Register(context.Background(), "alice", "pwd"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := s.Register(context.Background(), "alice", "other")
	if err == nil || !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestAuth_Login_OKAndWrongPassword(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	lim := &fakeLimiter{allowOK: true}
	s := newAuth(users, &fakeCalendars{}, lim, time.Minute)

	if _, err := s.Register(context.Background(), "alice", "pwd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tok, err := s.LoginWithIP(context.Background(), "alice", "pwd", "10.0.0.1")
	if err != nil {
		t.Fatalf("LoginWithIP: %v", err)
	}
	if tok.AccessToken == "" || tok.TokenType != "bearer" {
		t.Fatalf("bad token: %+v", tok)
	}
	if lim.successCalls != 1 {
		t.Fatalf("successCalls=%d", lim.successCalls)
	}

	// wrong password twice: both unauthorized, both recorded as failures
	for i := 0; i < 2; i++ {
		_, err = s.LoginWithIP(context.Background(), "alice", "nope", "10.0.0.1")
		if !errors.Is(err, errs.ErrUnauthorized) {
			t.Fatalf("attempt %d: want ErrUnauthorized, got %v", i+1, err)
		}
	}
	if lim.failureCalls != 2 {
		t.Fatalf("failureCalls=%d", lim.failureCalls)
	}

	// unknown user looks identical
	_, err = s.LoginWithIP(context.Background(), "nobody", "pwd", "10.0.0.1")
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("unknown user: want ErrUnauthorized, got %v", err)
	}
}

func TestAuth_Login_RateLimited(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s := newAuth(users, &fakeCalendars{}, &fakeLimiter{allowOK: false}, time.Minute)

	_, err := s.LoginWithIP(context.Background(), "alice", "pwd", "10.0.0.1")
	if !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}

	// threshold reached on this failure
	users2 := &fakeUsers{byName: map[string]*model.User{}}
	lim := &fakeLimiter{allowOK: true, failBlocked: true}
	s2 := newAuth(users2, &fakeCalendars{}, lim, time.Minute)
	_, err = s2.LoginWithIP(context.Background(), "ghost", "pwd", "10.0.0.1")
	if !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited on block, got %v", err)
	}
}

func TestAuth_Resolve_RoundTrip(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	lim := &fakeLimiter{allowOK: true}
	s := newAuth(users, &fakeCalendars{}, lim, time.Minute)

	if _, err := s.Register(context.Background(), "alice", "pwd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tok, err := s.LoginWithIP(context.Background(), "alice", "pwd", "10.0.0.1")
	if err != nil {
		t.Fatalf("LoginWithIP: %v", err)
	}

	u, err := s.Resolve(context.Background(), tok.AccessToken)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("resolved %q", u.Username)
	}
}

func TestAuth_Resolve_Rejections(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s := newAuth(users, &fakeCalendars{}, &fakeLimiter{allowOK: true}, time.Minute)

	// garbage
	if _, err := s.Resolve(context.Background(), "not.a.jwt"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("garbage: %v", err)
	}

	// wrong key
	bad := signToken(t, "alice", []byte("other-key"), time.Now(), time.Minute)
	if _, err := s.Resolve(context.Background(), bad); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("wrong key: %v", err)
	}

	// expired beyond leeway
	expired := signToken(t, "alice", []byte("test-signing-key"), time.Now().Add(-2*time.Hour), time.Minute)
	if _, err := s.Resolve(context.Background(), expired); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("expired: %v", err)
	}

	// valid signature, unknown subject
	ghost := signToken(t, "ghost", []byte("test-signing-key"), time.Now(), time.Minute)
	if _, err := s.Resolve(context.Background(), ghost); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("unknown subject: %v", err)
	}
}

func TestAuth_EnsureDefaultUser_Idempotent(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	cals := &fakeCalendars{}
	s := newAuth(users, cals, &fakeLimiter{}, time.Minute)

	if err := s.EnsureDefaultUser(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("first EnsureDefaultUser: %v", err)
	}
	if err := s.EnsureDefaultUser(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("second EnsureDefaultUser: %v", err)
	}
	if len(users.byName) != 1 {
		t.Fatalf("users=%d, want 1", len(users.byName))
	}
	got, _ := cals.ListByOwner(context.Background(), "admin")
	if len(got) != 3 {
		t.Fatalf("admin calendars=%d, want 3 (provisioned once)", len(got))
	}
}

func signToken(t *testing.T, sub string, key []byte, iat time.Time, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(iat.Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}
