package utils

import (
	"errors"
	"time"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims identifies the staff member and terminal behind a request.
// The staff id is carried in the subject.
type StaffClaims struct {
	TerminalID string           `json:"terminal_id"`
	Role       domain.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

// StaffID returns the subject of the token.
func (c *StaffClaims) StaffID() string {
	return c.Subject
}

// GenerateStaffToken generates a signed token for a staff member working at a terminal.
func GenerateStaffToken(staffID, terminalID string, role domain.StaffRole, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if staffID == "" || terminalID == "" {
		return "", errors.New("staff id and terminal id are required")
	}
	if !role.Valid() {
		return "", errors.New("role must be staff or admin")
	}
	now := time.Now()
	claims := StaffClaims{
		TerminalID: terminalID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   staffID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseStaffToken parses a token string, validates its signature and standard claims
// and returns the staff claims.
func ParseStaffToken(tokenString string, secretKey string) (*StaffClaims, error) {
	claims := &StaffClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.TerminalID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if !claims.Role.Valid() {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
