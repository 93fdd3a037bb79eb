package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid or expired token")

type Service interface {
	GenerateAccessToken(subject string) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) *JWTService {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}
}

var _ Service = (*JWTService)(nil)

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken mints an HS256 access token for an operator or client name.
func (j *JWTService) GenerateAccessToken(subject string) (token string, expiresAt int64, err error) {
	if subject == "" {
		return "", 0, errors.New("token subject is required")
	}

	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.SubjectKey:    subject,
		jwt.IssuedAtKey:   issuedAt.Unix(),
		jwt.ExpirationKey: expiresAt,
		"type":            TokenTypeAccess,
	})
	return tokenString, expiresAt, err
}

// ValidateAccessToken verifies signature, expiry and token type and returns the subject.
func (j *JWTService) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeAccess {
		return "", ErrInvalidToken
	}

	return token.Subject(), nil
}
