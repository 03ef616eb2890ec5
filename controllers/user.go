package controllers

import (
	"net/http"
	"strings"

	dbpkg "finlife/db"
	"finlife/models"
	"finlife/tools"

	"github.com/gin-gonic/gin"
)

func CheckUserExists(c *gin.Context, username string) (bool, error) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		return false, nil
	}
	var count int
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Signup cria o usuário. Route: POST /api/v1/accounts/signup
func Signup(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.ShouldBindJSON(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	user.ID = 0
	user.CreatedAt, user.UpdatedAt = nil, nil
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateUsername(user.Username) {
		RespondError(c, "username inválido", http.StatusBadRequest)
		return
	}
	if user.Email != "" && !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido!", http.StatusBadRequest)
		return
	}
	if user.Age < 0 || user.Money < 0 || user.Salary < 0 {
		RespondError(c, "age, money e salary não podem ser negativos", http.StatusBadRequest)
		return
	}

	exists, err := CheckUserExists(c, user.Username)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	} else if exists {
		RespondError(c, "Usuário já existe", http.StatusConflict)
		return
	}

	hash, err := tools.HashPassword(user.Password, conf.Security.BcryptCost)
	if err != nil {
		RespondError(c, "erro ao gerar hash da senha", http.StatusInternalServerError)
		return
	}
	user.Password = hash

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	c.JSON(http.StatusCreated, user)
}
