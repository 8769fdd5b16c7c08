package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/service"
)

const dateLayout = "2006-01-02"

type CustomerHandler struct {
	customerService *service.CustomerService
	accountService  *service.AccountService
}

func NewCustomerHandler(customerService *service.CustomerService, accountService *service.AccountService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		accountService:  accountService,
	}
}

type CreateCustomerRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
}

type CustomerResponse struct {
	CustomerID  string    `json:"customer_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     string    `json:"address,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		DateOfBirth: c.DateOfBirth.Format(dateLayout),
		Address:     c.Address,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "date_of_birth must be YYYY-MM-DD").WithDetails(err.Error()))
		return
	}

	customer, err := h.customerService.CreateCustomer(&service.CreateCustomerRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
		Address:     req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.GetCustomer(mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomerHandler) GetCustomerAccounts(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]
	if !h.customerService.ExistsByID(customerID) {
		writeError(w, errors.ErrCustomerNotFound.WithDetails("customer ID: "+customerID))
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponses(h.accountService.GetCustomerAccounts(customerID)))
}

func (h *CustomerHandler) ActivateCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.ActivateCustomer(mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomerHandler) DeactivateCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.DeactivateCustomer(mux.Vars(r)["customer_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}
