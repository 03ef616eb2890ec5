package controllers

import (
	"net/http"
	"strings"

	"finlife/catalog"
	"finlife/config"
	dbpkg "finlife/db"

	"github.com/gin-gonic/gin"
)

var (
	conf     config.Configuration
	embedder catalog.Embedder
)

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// SetEmbedder define o provedor usado por /products/recommend.
func SetEmbedder(e catalog.Embedder) {
	embedder = e
}

// storesFrom devolve os stores da requisição; responde 500 se não houver DB.
func storesFrom(c *gin.Context) (dbpkg.Stores, bool) {
	s, ok := dbpkg.StoresFrom(c)
	if !ok {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
	}
	return s, ok
}

func ParamCode(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return "", false
	}
	return v, true
}
