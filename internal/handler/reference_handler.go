package handler

import (
	"net/http"
	"strings"

	"worldtax/internal/middleware"
	"worldtax/internal/service"
	"worldtax/pkg/pagination"
	"worldtax/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	referenceService service.ReferenceService
	auth             *middleware.Auth
}

func NewReferenceHandler(referenceService service.ReferenceService, auth *middleware.Auth) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService, auth: auth}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	jurisdictions := router.Group("/api/jurisdictions")
	{
		jurisdictions.GET("", h.ListJurisdictions)
		jurisdictions.GET("/:country", h.GetJurisdiction)
	}

	agreements := router.Group("/api/trade-agreements")
	{
		agreements.GET("", h.ListTradeAgreements)
		agreements.GET("/:id", h.GetTradeAgreement)
	}

	admin := router.Group("/api/admin/reference-data")
	admin.Use(h.auth.RequireRole("admin"))
	{
		admin.POST("/reload", h.Reload)
	}
}

// ListJurisdictions returns country tax profiles ordered by country code
// @Summary      List jurisdictions
// @Tags         reference-data
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/jurisdictions [get]
func (h *ReferenceHandler) ListJurisdictions(c *gin.Context) {
	params := pagination.Parse(c)

	items, total, err := h.referenceService.ListJurisdictions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"jurisdictions": items,
		"total":         total,
		"page":          params.Page,
		"limit":         params.Limit,
	}))
}

// GetJurisdiction returns one country tax profile
// @Summary      Get jurisdiction
// @Tags         reference-data
// @Produce      json
// @Param        country  path      string  true  "ISO 3166-1 alpha-2 country code"
// @Success      200      {object}  response.Response{data=service.JurisdictionResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/jurisdictions/{country} [get]
func (h *ReferenceHandler) GetJurisdiction(c *gin.Context) {
	country := strings.ToUpper(c.Param("country"))

	res, err := h.referenceService.GetJurisdiction(c.Request.Context(), country)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ListTradeAgreements returns every trade agreement ordered by id
// @Summary      List trade agreements
// @Tags         reference-data
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.TradeAgreementResponse}
// @Router       /api/trade-agreements [get]
func (h *ReferenceHandler) ListTradeAgreements(c *gin.Context) {
	res, err := h.referenceService.ListTradeAgreements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetTradeAgreement returns one trade agreement
// @Summary      Get trade agreement
// @Tags         reference-data
// @Produce      json
// @Param        id   path      string  true  "Agreement id, e.g. EU"
// @Success      200  {object}  response.Response{data=service.TradeAgreementResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/trade-agreements/{id} [get]
func (h *ReferenceHandler) GetTradeAgreement(c *gin.Context) {
	res, err := h.referenceService.GetTradeAgreement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Reload rebuilds the reference data from its configured source
// @Summary      Reload reference data
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.ReloadResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/admin/reference-data/reload [post]
func (h *ReferenceHandler) Reload(c *gin.Context) {
	res, err := h.referenceService.Reload(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorWithCode(http.StatusInternalServerError, "reload_failed", "Failed to reload reference data: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
