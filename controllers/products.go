package controllers

import (
	"log"
	"net/http"
	"strings"

	"finlife/catalog"
	"finlife/metrics"

	"github.com/gin-gonic/gin"
)

// ListDepositProducts aplica os filtros bank, term, q e a ordenação sort.
// Valores inválidos de term ou sort são ignorados, nunca viram 400.
// Route: GET /api/v1/products/deposit
func ListDepositProducts(c *gin.Context) {
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	filters, errs := catalog.ParseFilters(c.Query("bank"), c.Query("term"), c.Query("q"))
	for _, err := range errs {
		log.Printf("products: %v (ignored)", err)
	}
	sort, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		log.Printf("products: %v (using default)", err)
	}

	views, err := catalog.NewEngine(s.Products).Query(filters, sort)
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	RespondSuccess(c, views)
}

// GetDepositProduct Route: GET /api/v1/products/deposit/:code
func GetDepositProduct(c *gin.Context) {
	code, ok := ParamCode(c, "code")
	if !ok {
		return
	}
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	view, err := catalog.NewEngine(s.Products).Get(code)
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	RespondSuccess(c, view)
}

type membershipResponse struct {
	FinancialProducts string   `json:"financial_products"`
	JoinedCodes       []string `json:"joined_codes"`
}

func newMembershipResponse(codes []string) membershipResponse {
	if codes == nil {
		codes = []string{}
	}
	return membershipResponse{FinancialProducts: strings.Join(codes, ","), JoinedCodes: codes}
}

// JoinDepositProduct Route: POST /api/v1/products/deposit/:code/join
func JoinDepositProduct(c *gin.Context) {
	toggleMembership(c, true)
}

// UnjoinDepositProduct Route: DELETE /api/v1/products/deposit/:code/join
func UnjoinDepositProduct(c *gin.Context) {
	toggleMembership(c, false)
}

func toggleMembership(c *gin.Context, join bool) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	code, ok := ParamCode(c, "code")
	if !ok {
		return
	}
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	ledger := catalog.NewLedger(s.Products, s.Ledger)
	var (
		codes []string
		err   error
		op    = "join"
	)
	if join {
		codes, err = ledger.Join(user.ID, code)
	} else {
		op = "unjoin"
		codes, err = ledger.Unjoin(user.ID, code)
	}
	if err != nil {
		RespondCatalogError(c, err)
		return
	}
	metrics.LedgerChangesTotal.WithLabelValues(op).Inc()
	RespondSuccess(c, newMembershipResponse(codes))
}

type recommendRequest struct {
	Message string `json:"message"`
}

// Recommend ranqueia os produtos pela similaridade com a mensagem.
// Route: POST /api/v1/products/recommend
func Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		RespondError(c, "message é obrigatório", http.StatusBadRequest)
		return
	}
	if embedder == nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		RespondError(c, "provedor de embeddings não configurado", http.StatusServiceUnavailable)
		return
	}
	s, ok := storesFrom(c)
	if !ok {
		return
	}

	recs, err := catalog.NewRecommender(s.Products, embedder).
		WithTopK(conf.RecommendTopK).
		Recommend(c.Request.Context(), message)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		RespondCatalogError(c, err)
		return
	}

	outcome := "ok"
	if len(recs) == 0 {
		outcome = "empty"
		recs = []catalog.Recommendation{}
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()

	if user, ok := GetUserLogged(c); ok {
		log.Printf("recommend: user=%d results=%d", user.ID, len(recs))
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
