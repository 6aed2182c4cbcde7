package handler

import (
	"net/http"

	"worldtax/internal/service"
	"worldtax/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	tax := router.Group("/api/tax")
	{
		tax.POST("/calculate", h.CalculateTax)
		tax.POST("/rates", h.GetRates)
	}
}

// CalculateTax classifies a transaction and computes the tax owed
// @Summary      Calculate tax
// @Description  Returns the treatment, the ordered tax components, the tax rounded to cents and the exact unrounded tax
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.CalculateTaxRequest  true  "Transaction"
// @Success      200      {object}  response.Response{data=service.CalculateTaxResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/calculate [post]
func (h *TaxHandler) CalculateTax(c *gin.Context) {
	var req service.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.taxService.CalculateTax(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// GetRates returns the tax components that apply to a transaction
// @Summary      Get applicable tax rates
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        request  body      service.TaxRatesRequest  true  "Transaction"
// @Success      200      {object}  response.Response{data=service.TaxRatesResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tax/rates [post]
func (h *TaxHandler) GetRates(c *gin.Context) {
	var req service.TaxRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.taxService.GetRates(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
