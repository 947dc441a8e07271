package jwtauth

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/dragon-lineup/internal/domain/user"
	"github.com/riskibarqy/dragon-lineup/internal/usecase"
)

// Claims is the access token payload issued by the member service.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens. It never issues tokens.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

func NewVerifier(secret, issuer string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, crerr.New("jwt secret is required")
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
	}, nil
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if crerr.Is(err, jwt.ErrTokenExpired) {
			return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token has expired")
		}
		return user.Principal{}, crerr.Wrapf(usecase.ErrUnauthorized, "invalid token: %v", err)
	}
	if !parsed.Valid {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token subject is required")
	}

	return user.Principal{
		UserID: subject,
		Email:  claims.Email,
		Roles:  append([]string(nil), claims.Roles...),
	}, nil
}
