package auth

import (
	"time"

	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the bearer token payload: who the user is and what role they
// carry. Reconstructed identically from any token with a valid signature.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword applies a one-way bcrypt transform to a plaintext password.
// The plaintext is never logged or returned.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", httperror.NewInternal("password hashing failed")
	}
	return string(hashed), nil
}

// ComparePassword reports whether the plaintext matches the stored hash.
// A normal mismatch is false, never an error.
func ComparePassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GenerateToken signs a bearer token for the given identity. expiry of 0
// issues a token with no expiration.
func GenerateToken(userID, email, role, secret string, expiry time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", httperror.NewInternal("token signing failed")
	}
	return signed, nil
}

// ParseToken verifies the signature (and expiry, when set) and returns the
// embedded claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, httperror.NewInvalidToken("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, httperror.NewInvalidToken(err.Error())
	}
	if !token.Valid {
		return nil, httperror.NewInvalidToken("token is not valid")
	}
	return claims, nil
}
