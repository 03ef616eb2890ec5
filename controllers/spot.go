package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ListSpotPrices Route: GET /api/v1/products/spot?item=Gold
func ListSpotPrices(c *gin.Context) {
	s, ok := storesFrom(c)
	if !ok {
		return
	}
	prices, err := s.Spot.List(strings.TrimSpace(c.Query("item")))
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	RespondSuccess(c, prices)
}
