package controllers

import (
	"errors"
	"net/http"
	"strings"

	dbpkg "finlife/db"
	"finlife/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ctxUserKey = "auth_user"

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[len("Bearer "):]), true
}

// loadUser valida o token e busca o usuário no DB.
func loadUser(c *gin.Context, token string) (models.User, int, string) {
	userID, err := parseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, http.StatusUnauthorized, "ops! token expired"
		}
		return models.User{}, http.StatusUnauthorized, "ops! wat"
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		return models.User{}, http.StatusInternalServerError, "db não configurado no contexto"
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return models.User{}, http.StatusUnauthorized, "user not found"
	}
	return user, 0, ""
}

// AuthRequired validates the Bearer token and loads the user from DB into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			RespondError(c, "ops! wait", http.StatusUnauthorized)
			c.Abort()
			return
		}
		user, code, msg := loadUser(c, token)
		if code != 0 {
			RespondError(c, msg, code)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// OptionalAuth carrega o usuário quando há um token válido, sem bloquear.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, code, _ := loadUser(c, token); code == 0 {
				c.Set(ctxUserKey, user)
			}
		}
		c.Next()
	}
}

// GetUserLogged returns the user loaded by AuthRequired.
func GetUserLogged(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
