package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RenderClaims is carried by the token handed to a respondent when a form is
// rendered. StartedAtMs is the render time used to compute fill duration.
type RenderClaims struct {
	FormID      string `json:"formId"`
	StartedAtMs int64  `json:"startedAtMs"`
	jwt.RegisteredClaims
}

var ErrInvalidRenderToken = errors.New("invalid render token")

func GenerateRenderToken(formID, secret string, startedAt time.Time, expiration time.Duration) (string, error) {
	claims := &RenderClaims{
		FormID:      formID,
		StartedAtMs: startedAt.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(startedAt.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(startedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateRenderToken checks signature and expiry against now and returns the claims.
func ValidateRenderToken(tokenString, secret string, now time.Time) (*RenderClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RenderClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		return nil, errors.Join(ErrInvalidRenderToken, err)
	}

	claims, ok := token.Claims.(*RenderClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidRenderToken
	}

	return claims, nil
}
