// Package auth issues and validates the JWT token pair used by the API.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Issuer and Audience pin tokens to this API; tokens minted elsewhere
	// fail validation even with a leaked secret of the same value.
	Issuer   = "vidtube-api"
	Audience = "vidtube-client"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateAccessToken mints a short-lived access token for the user. The
// returned JTI identifies the token for revocation on logout.
func GenerateAccessToken(secret string, userID uint) (token string, jti string, err error) {
	return generate(secret, userID, AccessTokenTTL)
}

// GenerateRefreshToken mints a long-lived refresh token, signed with the
// refresh secret so the two token kinds are never interchangeable.
func GenerateRefreshToken(secret string, userID uint) (string, error) {
	token, _, err := generate(secret, userID, RefreshTokenTTL)
	return token, err
}

func generate(secret string, userID uint, ttl time.Duration) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, jti, nil
}

// ParseToken validates a token against the given secret and returns the user
// ID from the subject claim plus the token's JTI.
func ParseToken(secret, tokenString string) (uint, string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, "", fmt.Errorf("invalid subject claim")
	}
	return uint(userID), claims.ID, nil
}
