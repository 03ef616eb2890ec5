package controllers

import (
	"errors"
	"log"
	"net/http"

	"finlife/catalog"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondCatalogError traduz os erros do catálogo em status HTTP.
func RespondCatalogError(c *gin.Context, err error) {
	var upstream *catalog.UpstreamEmbeddingError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		RespondError(c, "produto não encontrado", http.StatusNotFound)
	case errors.As(err, &upstream):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, "falha ao consultar o provedor de embeddings", http.StatusBadGateway)
	case errors.Is(err, catalog.ErrDimensionMismatch):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, "embeddings inconsistentes no catálogo", http.StatusInternalServerError)
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, "erro interno", http.StatusInternalServerError)
	}
}
