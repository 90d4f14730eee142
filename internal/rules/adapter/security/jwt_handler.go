package security

import (
	"context"
	"errors"
	"time"

	"loyalty-rules/internal/rules/config"
	"loyalty-rules/internal/rules/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// Claims carries the authenticated subject of a request. Roles are never
// read from the token; the engine derives them from the subject's stored
// profile on every evaluation.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTokenService validates the bearer tokens the HTTP surface receives and
// reduces them to a Principal.
type JWTokenService struct {
	secretKey []byte
	issuer    string
}

// NewJWTokenService creates a new JWT token service
func NewJWTokenService(cfg *config.Config) (*JWTokenService, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if cfg.JWTIssuer == "" {
		return nil, errors.New("jwt issuer cannot be empty")
	}

	return &JWTokenService{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    cfg.JWTIssuer,
	}, nil
}

// GenerateToken mints a token for the given subject. Used by operational
// tooling and the test suite; the engine itself only validates.
func (s *JWTokenService) GenerateToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a bearer token and returns the Principal it names.
func (s *JWTokenService) ValidateToken(ctx context.Context, tokenString string) (model.Principal, error) {
	if tokenString == "" {
		return model.Principal{}, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Principal{}, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return model.Principal{}, ErrTokenSignatureInvalid
		}
		return model.Principal{}, ErrTokenInvalid
	}

	if !token.Valid {
		return model.Principal{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return model.Principal{}, ErrTokenInvalid
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return model.Principal{}, ErrTokenInvalid
	}

	return model.Principal{UID: uid}, nil
}
