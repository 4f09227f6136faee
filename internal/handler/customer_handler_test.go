package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
)

// ---- mock implementations ----

type mockCustomerCommander struct {
	createFn func(name, email string) (*models.Customer, error)
}

func (m *mockCustomerCommander) CreateCustomer(ctx context.Context, name, email string) (*models.Customer, error) {
	if m.createFn != nil {
		return m.createFn(name, email)
	}
	return nil, fmt.Errorf("not configured")
}

type mockCustomerQuerier struct {
	getFn          func(customerID int64) (*models.CustomerView, error)
	listFn         func() ([]models.CustomerView, error)
	listAccountsFn func(customerID int64) ([]models.AccountView, error)
}

func (m *mockCustomerQuerier) GetCustomer(ctx context.Context, customerID int64) (*models.CustomerView, error) {
	if m.getFn != nil {
		return m.getFn(customerID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCustomerQuerier) ListCustomers(ctx context.Context) ([]models.CustomerView, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCustomerQuerier) ListCustomerAccounts(ctx context.Context, customerID int64) ([]models.AccountView, error) {
	if m.listAccountsFn != nil {
		return m.listAccountsFn(customerID)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newCustomerTestRouter(cmds CustomerCommander, qrys CustomerQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCustomerHandler(cmds, qrys)
	v1 := r.Group("/v1/customers")
	v1.GET("", h.ListCustomers)
	v1.POST("", h.CreateCustomer)
	v1.GET("/:id", h.GetCustomer)
	v1.GET("/:id/accounts", h.ListCustomerAccounts)
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var testCustomer = &models.Customer{ID: 1, Name: "Ali", Email: "ali@x.com"}
var testCustomerView = &models.CustomerView{ID: 1, Name: "Ali", Email: "ali@x.com"}

func testAccountView() models.AccountView {
	overdraft := decimal.NewFromInt(500)
	return models.AccountView{
		ID:             "acc-001",
		AccountType:    models.CurrentAccount,
		Balance:        decimal.NewFromInt(1000),
		CustomerID:     1,
		OverdraftLimit: &overdraft,
	}
}

// ---- tests ----

func TestCreateCustomer_Handler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(name, email string) (*models.Customer, error)
		expectedStatus int
	}{
		{
			name: "success - create customer",
			body: map[string]interface{}{"name": "Ali", "email": "ali@x.com"},
			createFn: func(name, email string) (*models.Customer, error) {
				return testCustomer, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - missing name",
			body:           map[string]interface{}{"email": "ali@x.com"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email",
			body:           map[string]interface{}{"name": "Ali", "email": "not-an-email"},
			createFn:       nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal error - store failure",
			body: map[string]interface{}{"name": "Ali", "email": "ali@x.com"},
			createFn: func(name, email string) (*models.Customer, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCustomerTestRouter(&mockCustomerCommander{createFn: tt.createFn}, &mockCustomerQuerier{})
			w := doRequest(router, http.MethodPost, "/v1/customers", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestGetCustomer_Handler(t *testing.T) {
	tests := []struct {
		name           string
		customerID     string
		getFn          func(customerID int64) (*models.CustomerView, error)
		expectedStatus int
	}{
		{
			name:       "success - existing customer",
			customerID: "1",
			getFn: func(customerID int64) (*models.CustomerView, error) {
				return testCustomerView, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "not found - unknown customer",
			customerID: "99",
			getFn: func(customerID int64) (*models.CustomerView, error) {
				return nil, ledger.ErrCustomerNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - non-numeric id",
			customerID:     "abc",
			getFn:          nil,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCustomerTestRouter(&mockCustomerCommander{}, &mockCustomerQuerier{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, "/v1/customers/"+tt.customerID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListCustomers_Handler(t *testing.T) {
	router := newCustomerTestRouter(&mockCustomerCommander{}, &mockCustomerQuerier{
		listFn: func() ([]models.CustomerView, error) {
			return []models.CustomerView{*testCustomerView}, nil
		},
	})

	w := doRequest(router, http.MethodGet, "/v1/customers", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	var resp ListCustomersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Customers) != 1 || resp.Customers[0].Name != "Ali" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestListCustomerAccounts_Handler(t *testing.T) {
	tests := []struct {
		name           string
		customerID     string
		listAccountsFn func(customerID int64) ([]models.AccountView, error)
		expectedStatus int
	}{
		{
			name:       "success - customer with accounts",
			customerID: "1",
			listAccountsFn: func(customerID int64) ([]models.AccountView, error) {
				return []models.AccountView{testAccountView()}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "not found - unknown customer",
			customerID: "99",
			listAccountsFn: func(customerID int64) ([]models.AccountView, error) {
				return nil, ledger.ErrCustomerNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCustomerTestRouter(&mockCustomerCommander{}, &mockCustomerQuerier{listAccountsFn: tt.listAccountsFn})
			w := doRequest(router, http.MethodGet, "/v1/customers/"+tt.customerID+"/accounts", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
