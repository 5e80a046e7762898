package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token issuance lives in the external account service. This package
// only verifies tokens and extracts the identity the puzzle engine
// needs: a player id and the couple it belongs to.
type Service struct {
	jwtSecret []byte
}

// Claims carries the verified identity embedded in a session token
type Claims struct {
	PlayerID string `json:"player_id"`
	CoupleID string `json:"couple_id"`
	jwt.RegisteredClaims
}

func NewService(jwtSecret []byte) *Service {
	return &Service{jwtSecret: jwtSecret}
}

// ValidateToken parses and verifies a session token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.PlayerID == "" || claims.CoupleID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignToken mints a token for the given identity. The production
// issuer is external; this exists for local development and tests.
func (s *Service) SignToken(playerID, coupleID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		PlayerID: playerID,
		CoupleID: coupleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
