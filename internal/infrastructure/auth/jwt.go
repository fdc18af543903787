package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims issued by the external identity provider. The
// subject is the opaque user identifier; this service never issues tokens of
// its own.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTVerifier validates identity-provider access tokens.
type JWTVerifier struct {
	secret []byte
	issuer string
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Verify parses and validates a token, returning the opaque user id from the
// subject claim.
func (s *JWTVerifier) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return "", fmt.Errorf("unexpected token issuer: %s", claims.Issuer)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("token carries no subject")
	}

	return claims.Subject, nil
}
