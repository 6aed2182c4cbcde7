package handler

import (
	"net/http"

	"worldtax/internal/model"
	"worldtax/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps an engine or lookup error kind onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case string(model.InvalidCountryCode), string(model.InvalidRegionCode), string(model.UnexpectedRegionCode), "invalid_amount":
		return http.StatusBadRequest
	case string(model.TradeAgreementNotFound), string(model.CountryNotFound), string(model.RegionNotFound):
		return http.StatusNotFound
	case string(model.VatRateNotFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := model.ErrorCode(err)
	status := statusFor(code)
	_ = c.Error(err)
	c.JSON(status, response.ErrorWithCode(status, code, err.Error()))
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "invalid_request", "Invalid request payload: "+err.Error()))
}
