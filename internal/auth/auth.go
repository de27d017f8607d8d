package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifiers, fixed by the roles seed. The first registered user
// becomes Admin, everyone after that a Member.
const (
	RoleAdmin  int64 = 1
	RoleMember int64 = 2
)

// ActorContext carries the identity attributes authorization runs on.
// Two variants exist so the staleness trade-off is explicit: an
// AssertedContext trusts role and company affiliation carried inside the
// session token as-is, while an UnresolvedContext forces one fresh lookup
// before any decision is made.
type ActorContext interface {
	ActorID() int64
}

// AssertedContext is built from token claims that already carry role and
// company affiliation. No re-verification against storage happens within
// the request.
type AssertedContext struct {
	ID        int64
	RoleID    int64
	CompanyID *int64
}

func (a AssertedContext) ActorID() int64 { return a.ID }

// UnresolvedContext identifies the actor by id only.
type UnresolvedContext struct {
	ID int64
}

func (u UnresolvedContext) ActorID() int64 { return u.ID }

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims. RoleID and CompanyID ride along so
// the resolver can skip the user lookup when the caller asserts them.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	RoleID    int64  `json:"role_id,omitempty"`
	CompanyID *int64 `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates session tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string, roleID int64, companyID *int64) (string, error)
	GenerateRefreshToken(userID string, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailTaken         = errors.New("email already exists")

	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrResourceNotFound = errors.New("resource not found")
)
