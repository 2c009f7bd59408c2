package services

import (
	"encoding/json"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"realty/errors"
)

// GetUserFromToken extracts the user id and role claim from a bearer
// token minted by the identity service. The signature belongs to that
// service; the gateway only reads the payload.
func GetUserFromToken(tokenString string) (string, string, error) {
	claims, err := decodeClaims(tokenString)
	if err != nil {
		return "", "", err
	}

	userID := firstStringClaim(claims, "sub", "nameid", "userId")
	if userID == "" {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidToken, "no user id in token", nil)
	}

	role := roleClaim(claims)
	if role == "" {
		return "", "", errors.NewAppError(errors.ErrCodeInvalidToken, "no role in token", nil)
	}

	return userID, role, nil
}

func decodeClaims(tokenString string) (jwt.MapClaims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "malformed token", nil)
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "cannot decode token payload", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "cannot parse token claims", err)
	}
	return claimsMap, nil
}

func firstStringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// roleClaim handles both a single role string and a role array.
func roleClaim(claims jwt.MapClaims) string {
	switch value := claims["role"].(type) {
	case string:
		return value
	case []interface{}:
		for _, item := range value {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
