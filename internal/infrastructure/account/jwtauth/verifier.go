package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID int64
}

// Claims carries the user id either in userId or, as a numeric string, in sub.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId,omitempty"`
}

func (c Claims) userID() (int64, error) {
	if c.UserID > 0 {
		return c.UserID, nil
	}
	subject := strings.TrimSpace(c.Subject)
	if subject == "" {
		return 0, crerr.New("token carries no user id")
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, crerr.Newf("subject %q is not a user id", subject)
	}
	return id, nil
}

// Verifier issues and verifies HS256 access tokens.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

// Issue signs a token for userID that expires after ttl.
func (v *Verifier) Issue(userID int64, ttl time.Duration) (string, error) {
	if userID <= 0 {
		return "", crerr.New("user id must be positive")
	}
	now := v.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", crerr.Wrap(err, "sign token")
	}
	return signed, nil
}

// VerifyAccessToken validates signature, expiry and issuer. Every failure wraps
// usecase.ErrUnauthorized.
func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Principal{}, fmt.Errorf("%w: invalid token signature", usecase.ErrUnauthorized)
		default:
			return Principal{}, fmt.Errorf("%w: invalid token: %v", usecase.ErrUnauthorized, err)
		}
	}
	if !parsed.Valid {
		return Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}

	userID, err := claims.userID()
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}
	return Principal{UserID: userID}, nil
}
