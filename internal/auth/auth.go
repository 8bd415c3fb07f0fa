package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/g5stats/stats-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the JWT claims issued by the site for a signed-in user.
type Claims struct {
	UserID     int64 `json:"user_id"`
	Admin      bool  `json:"admin"`
	SuperAdmin bool  `json:"super_admin"`
	jwt.RegisteredClaims
}

// Principal returns the caller the claims describe.
func (c *Claims) Principal() *models.Principal {
	return &models.Principal{UserID: c.UserID, Admin: c.Admin, SuperAdmin: c.SuperAdmin}
}

// Service signs and validates HS256 bearer tokens.
type Service struct {
	jwtSecret     []byte
	tokenDuration time.Duration
}

func NewService(jwtSecret string, tokenDuration time.Duration) *Service {
	if tokenDuration == 0 {
		tokenDuration = 24 * time.Hour
	}
	return &Service{
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// Enabled reports whether a signing secret is configured. Without one every
// token is rejected.
func (s *Service) Enabled() bool {
	return s != nil && len(s.jwtSecret) > 0
}

// GenerateToken issues a token for p.
func (s *Service) GenerateToken(p models.Principal) (string, error) {
	claims := Claims{
		UserID:     p.UserID,
		Admin:      p.Admin,
		SuperAdmin: p.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT and returns the claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if !s.Enabled() {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
