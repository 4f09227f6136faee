package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/atlasbank/banking-service/internal/middleware"
	"github.com/atlasbank/banking-service/internal/models"
)

const (
	defaultHistorySize = 20
	maxHistorySize     = 100
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateCurrentAccount(ctx context.Context, initialBalance, overdraftLimit decimal.Decimal, customerID int64) (*models.BankAccount, error)
	CreateSavingAccount(ctx context.Context, initialBalance decimal.Decimal, interestRate float64, customerID int64) (*models.BankAccount, error)
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string) error
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, description string) error
	Transfer(ctx context.Context, sourceID, destinationID string, amount decimal.Decimal) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(ctx context.Context, accountID string) (*models.AccountView, error)
	ListAccounts(ctx context.Context) ([]models.AccountView, error)
	AccountHistory(ctx context.Context, accountID string, limit, offset int) ([]models.OperationView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type CreateCurrentAccountRequest struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	CustomerID     int64           `json:"customerId" validate:"required"`
}

type CreateSavingAccountRequest struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	InterestRate   float64         `json:"interestRate" validate:"gte=0"`
	CustomerID     int64           `json:"customerId" validate:"required"`
}

type OperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
}

type TransferRequest struct {
	SourceAccountID      string          `json:"sourceAccountId" validate:"required"`
	DestinationAccountID string          `json:"destinationAccountId" validate:"required"`
	Amount               decimal.Decimal `json:"amount"`
}

type AccountHistoryResponse struct {
	AccountID  string                 `json:"accountId"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
	Operations []models.OperationView `json:"operations"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateCurrentAccount(c *gin.Context) {
	var req CreateCurrentAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateCurrentAccount(c.Request.Context(), req.InitialBalance, req.OverdraftLimit, req.CustomerID)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) CreateSavingAccount(c *gin.Context) {
	var req CreateSavingAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateSavingAccount(c.Request.Context(), req.InitialBalance, req.InterestRate, req.CustomerID)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context())
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.AccountView{}
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	view, err := h.queries.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) AccountHistory(c *gin.Context) {
	accountID := c.Param("id")
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", defaultHistorySize)
	if size < 1 || size > maxHistorySize {
		size = defaultHistorySize
	}
	if page < 0 {
		page = 0
	}

	operations, err := h.queries.AccountHistory(c.Request.Context(), accountID, size, page*size)
	if err != nil {
		respondWithDomainError(c, err)
		return
	}
	if operations == nil {
		operations = []models.OperationView{}
	}
	c.JSON(http.StatusOK, AccountHistoryResponse{
		AccountID:  accountID,
		Page:       page,
		Size:       size,
		Operations: operations,
	})
}

func (h *AccountHandler) Debit(c *gin.Context) {
	req, ok := bindOperationRequest(c)
	if !ok {
		return
	}
	if err := h.commands.Debit(c.Request.Context(), c.Param("id"), req.Amount, req.Description); err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) Credit(c *gin.Context) {
	req, ok := bindOperationRequest(c)
	if !ok {
		return
	}
	if err := h.commands.Credit(c.Request.Context(), c.Param("id"), req.Amount, req.Description); err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	if err := h.commands.Transfer(c.Request.Context(), req.SourceAccountID, req.DestinationAccountID, req.Amount); err != nil {
		respondWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindOperationRequest(c *gin.Context) (OperationRequest, bool) {
	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return req, false
	}
	return req, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
