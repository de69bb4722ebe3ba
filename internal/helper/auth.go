package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qualiflow/document_service/internal/dto"
)

// Auth verifies bearer tokens issued by the surrounding platform and turns
// them into an opaque principal. This service never authenticates users
// itself; it only consumes the identity.
type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{
		Secret: s,
	}
}

// SignPrincipal issues a token for a principal. Used by local tooling and
// tests; production tokens come from the platform's identity service.
func (a Auth) SignPrincipal(p dto.Principal, ttl time.Duration) (string, error) {
	if !p.Resolved() {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"actor_id":   p.ActorID,
		"actor_name": p.ActorName,
		"actor_role": p.ActorRole,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken accepts both "Bearer <token>" and a bare token.
func (a Auth) VerifyToken(tokenString string) (dto.Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.Principal{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.Principal{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.Principal{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.Principal{}, errors.New("invalid token claims")
	}

	principal := dto.Principal{
		ActorID:   stringClaim(claims, "actor_id"),
		ActorName: stringClaim(claims, "actor_name"),
		ActorRole: stringClaim(claims, "actor_role"),
	}
	if !principal.Resolved() {
		return dto.Principal{}, errors.New("token carries no actor identity")
	}
	if principal.ActorRole == "" {
		principal.ActorRole = "user"
	}
	return principal, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
