package controllers

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ecclesia/models"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("ECCLESIA_JWT_SECRET", "")
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

// signAuthToken emite o token de sessão. Além do sub/exp/iat padrão, embute
// o papel organizacional, o member_id e o snapshot de permissões ("perms").
// O snapshot existe para o modo degradado do gate de permissões: se o store
// cair, o gate ainda tem algo (possivelmente defasado) para decidir.
// perms vazio é serializado como lista vazia, nunca omitido: claim ausente
// significa token fora do contrato.
func signAuthToken(user models.User, role string, memberID *int64, perms []string) (string, error) {
	if perms == nil {
		perms = []string{}
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  role,
		"perms": perms,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(getenvInt("JWT_TTL_HOURS", 24)) * time.Hour).Unix(),
	}
	if memberID != nil {
		claims["member_id"] = *memberID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(getJWTSecret()))
}

// parseAuthToken verifica assinatura HS256 e expiração e devolve as claims.
func parseAuthToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(getJWTSecret()), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
