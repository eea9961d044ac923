package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTokenTTL defines the fallback validity period for access tokens.
const DefaultAccessTokenTTL = 15 * time.Minute

// TokenTypeAccess is the discriminator embedded in every issued token.
const TokenTypeAccess = "access"

// Verification failure classes. Callers branch with errors.Is.
var (
	// ErrTokenExpired indicates the exp claim is in the past.
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrTokenMalformed covers signature and decode failures.
	ErrTokenMalformed = errors.New("jwt: token malformed")
	// ErrTokenInvalidPayload indicates required claims are missing or wrong.
	ErrTokenInvalidPayload = errors.New("jwt: invalid token payload")
)

// JWTConfig bundles the configuration required to build a JWTService.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
	Clock          func() time.Time
}

// Claims represents the identity assertion embedded in issued JWTs.
type Claims struct {
	UserID      uint   `json:"uid"`
	PhoneNumber string `json:"phone"`
	FullName    string `json:"name,omitempty"`
	TokenType   string `json:"typ"`
	jwt.RegisteredClaims
}

// AccessTokenInput holds the parameters used when generating a new access token.
type AccessTokenInput struct {
	UserID      uint
	PhoneNumber string
	FullName    string
}

// JWTService is responsible for issuing and validating JSON Web Tokens.
// Tokens are the only session artifact; nothing is stored server-side and
// there is no revocation list.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService constructs a JWTService instance when provided with the required configuration.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret must be provided")
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock
	}

	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

// AccessTokenTTL reports the configured token lifetime, used by the transport
// layer when setting cookie max-age.
func (s *JWTService) AccessTokenTTL() time.Duration {
	return s.ttl
}

// GenerateAccessToken issues a signed JWT containing the supplied identity.
func (s *JWTService) GenerateAccessToken(input AccessTokenInput) (string, error) {
	if input.UserID == 0 {
		return "", errors.New("jwt: user id is required")
	}
	if input.PhoneNumber == "" {
		return "", errors.New("jwt: phone number is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		UserID:      input.UserID,
		PhoneNumber: input.PhoneNumber,
		FullName:    input.FullName,
		TokenType:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", input.UserID),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken parses and validates a signed JWT, returning the
// application claims. Failures map to ErrTokenExpired, ErrTokenMalformed, or
// ErrTokenInvalidPayload.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: issuer mismatch", ErrTokenMalformed)
	}

	if claims.PhoneNumber == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalidPayload
	}
	if claims.UserID == 0 {
		return nil, ErrTokenInvalidPayload
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrTokenInvalidPayload
	}

	return &claims, nil
}
