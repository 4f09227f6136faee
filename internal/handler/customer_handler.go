package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atlasbank/banking-service/internal/middleware"
	"github.com/atlasbank/banking-service/internal/models"
)

// CustomerCommander defines the write-side operations used by CustomerHandler.
type CustomerCommander interface {
	CreateCustomer(ctx context.Context, name, email string) (*models.Customer, error)
}

// CustomerQuerier defines the read-side operations used by CustomerHandler.
type CustomerQuerier interface {
	GetCustomer(ctx context.Context, customerID int64) (*models.CustomerView, error)
	ListCustomers(ctx context.Context) ([]models.CustomerView, error)
	ListCustomerAccounts(ctx context.Context, customerID int64) ([]models.AccountView, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	commands CustomerCommander
	queries  CustomerQuerier
}

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type ListCustomersResponse struct {
	Customers []models.CustomerView `json:"customers"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewCustomerHandler(commands CustomerCommander, queries CustomerQuerier) *CustomerHandler {
	return &CustomerHandler{commands: commands, queries: queries}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	customer, err := h.commands.CreateCustomer(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.queries.ListCustomers(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	if customers == nil {
		customers = []models.CustomerView{}
	}
	c.JSON(http.StatusOK, ListCustomersResponse{Customers: customers})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CustomerHandler) ListCustomerAccounts(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}

	accounts, err := h.queries.ListCustomerAccounts(c.Request.Context(), customerID)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.AccountView{}
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func customerIDParam(c *gin.Context) (int64, bool) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer id")
		return 0, false
	}
	return customerID, true
}
