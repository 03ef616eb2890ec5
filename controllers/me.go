package controllers

import (
	"net/http"

	"finlife/catalog"

	"github.com/gin-gonic/gin"
)

// Me devolve o perfil com os produtos aderidos e o gráfico de taxas.
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	profile, err := catalog.NewProfileBuilder(s.Products, s.Ledger).Build(user)
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	RespondSuccess(c, profile)
}
