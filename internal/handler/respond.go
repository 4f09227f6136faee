package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/middleware"
)

// respondWithDomainError maps ledger failures onto HTTP statuses: missing
// resources to 404, an uncovered debit to 422, a bad amount to 400.
func respondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, ledger.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Bank account not found")
	case errors.Is(err, ledger.ErrBalanceNotSufficient):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Balance not sufficient")
	case errors.Is(err, ledger.ErrAmountNotPositive):
		middleware.RespondWithError(c, http.StatusBadRequest, "Amount must be greater than zero")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
