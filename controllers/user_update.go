package controllers

import (
	"net/http"
	"strings"

	"finlife/catalog"
	"finlife/models"

	"github.com/gin-gonic/gin"
)

// Só estes campos podem ser alterados; username, email e senha não.
type updateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Nickname  *string `json:"nickname"`
	Age       *int    `json:"age"`
	Money     *int    `json:"money"`
	Salary    *int    `json:"salary"`
}

func (r updateMeRequest) changes() (map[string]any, string) {
	out := map[string]any{}
	if r.FirstName != nil {
		out["first_name"] = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		out["last_name"] = strings.TrimSpace(*r.LastName)
	}
	if r.Nickname != nil {
		out["nickname"] = strings.TrimSpace(*r.Nickname)
	}
	for field, v := range map[string]*int{"age": r.Age, "money": r.Money, "salary": r.Salary} {
		if v == nil {
			continue
		}
		if *v < 0 {
			return nil, field
		}
		out[field] = *v
	}
	return out, ""
}

// UpdateCurrentUser updates the logged user ("me") and returns the rebuilt profile.
// Route: PATCH /api/v1/accounts/me
func UpdateCurrentUser(c *gin.Context) {
	logged, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	changes, invalid := req.changes()
	if invalid != "" {
		RespondError(c, invalid+" inválido", http.StatusBadRequest)
		return
	}

	db := s.DB
	if len(changes) > 0 {
		if err := db.Model(&models.User{}).Where("id = ?", logged.ID).Updates(changes).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var updated models.User
	if err := db.Where("id = ?", logged.ID).First(&updated).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	profile, err := catalog.NewProfileBuilder(s.Products, s.Ledger).Build(updated)
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	RespondSuccess(c, profile)
}
