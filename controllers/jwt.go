package controllers

import (
	"errors"
	"strconv"
	"time"

	"finlife/models"
	"finlife/tools"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() []byte {
	secret := conf.Security.JwtSecret
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return []byte(secret)
}

func tokenTTL() time.Duration {
	if conf.Security.TokenTTL > 0 {
		return conf.Security.TokenTTL
	}
	return 24 * time.Hour
}

// IssueToken assina um HS256 com sub = id do usuário.
func IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		ID:        tools.RandomString(16),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTSecret())
}

// parseToken valida assinatura e expiração e devolve o id do usuário.
func parseToken(raw string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return getJWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid subject")
	}
	return id, nil
}
