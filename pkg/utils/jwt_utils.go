package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecretKey    []byte
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// ConfigureJWT sets the signing key and token lifetimes. Must be called once at startup.
func ConfigureJWT(secret string, accessTTL, refreshTTL time.Duration) {
	jwtSecretKey = []byte(secret)
	if accessTTL > 0 {
		accessTokenTTL = accessTTL
	}
	if refreshTTL > 0 {
		refreshTokenTTL = refreshTTL
	}
}

// Claims defines the JWT claims structure.
type Claims struct {
	EmployeeID int64  `json:"employee_id"`
	Login      string `json:"login"`
	Role       string `json:"role"`
	StoreID    *int64 `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a new JWT access token for an employee.
func GenerateAccessToken(employeeID int64, login, role string, storeID *int64) (string, error) {
	expirationTime := time.Now().Add(accessTokenTTL)
	claims := &Claims{
		EmployeeID: employeeID,
		Login:      login,
		Role:       role,
		StoreID:    storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "retail-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken creates a new JWT refresh token for an employee.
// Refresh tokens carry fewer claims and a longer expiry.
func GenerateRefreshToken(employeeID int64) (string, error) {
	expirationTime := time.Now().Add(refreshTokenTTL)
	claims := &Claims{
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "retail-backend-refresh",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
