package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexabank/crm-insights/internal/analytics"
	"github.com/nexabank/crm-insights/internal/store"
	"github.com/nexabank/crm-insights/pkg/errors"
	"github.com/nexabank/crm-insights/pkg/logger"
	"github.com/nexabank/crm-insights/pkg/middleware"
)

type createCustomerRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone"`
	AccountType string  `json:"account_type" binding:"required"`
	Balance     float64 `json:"balance"`
	RiskScore   float64 `json:"risk_score"`
}

type updateCustomerRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	AccountType *string  `json:"account_type"`
	Balance     *float64 `json:"balance"`
	RiskScore   *float64 `json:"risk_score"`
}

// customerResponse decorates a customer record with its risk bucket so the
// list badges and the analytics view share one thresholding.
type customerResponse struct {
	store.Customer
	RiskLevel analytics.RiskLevel `json:"risk_level"`
}

func toCustomerResponse(customer store.Customer) customerResponse {
	return customerResponse{
		Customer:  customer,
		RiskLevel: analytics.RiskBucket(customer.RiskScore),
	}
}

// ListCustomers handles GET /api/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.repo.ListCustomers(c.Request.Context())
	if err != nil {
		// The list view must always render; degrade to an empty list.
		h.logger.Error("customer list fetch failed", zap.Error(err))
		c.JSON(http.StatusOK, []customerResponse{})
		return
	}

	response := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		response = append(response, toCustomerResponse(customer))
	}
	c.JSON(http.StatusOK, response)
}

// GetCustomer handles GET /api/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	id := c.GetInt64("id_int")

	customer, err := h.repo.GetCustomer(c.Request.Context(), id)
	if err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return
	}
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// CreateCustomer handles POST /api/customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if !validAccountType(req.AccountType) {
		errors.BadRequest(c, "account_type must be one of: Standard, Premium, VIP, Business, Checking, Savings")
		return
	}
	if req.Balance < 0 {
		errors.BadRequest(c, "balance must not be negative")
		return
	}
	if req.RiskScore == 0 {
		req.RiskScore = 3
	}
	if req.RiskScore < 1 || req.RiskScore > 5 {
		errors.BadRequest(c, "risk_score must be between 1 and 5")
		return
	}

	customer := &store.Customer{
		Name:        middleware.SanitizeString(req.Name),
		Email:       middleware.SanitizeString(req.Email),
		Phone:       middleware.SanitizeString(req.Phone),
		AccountType: req.AccountType,
		Balance:     req.Balance,
		RiskScore:   req.RiskScore,
	}

	err := h.repo.CreateCustomer(c.Request.Context(), customer)
	if err == store.ErrDuplicateEmail {
		errors.Conflict(c, "a customer with this email already exists")
		return
	}
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	h.logger.Info("customer created",
		zap.Int64("customer_id", customer.ID),
		logger.MaskEmail("email", customer.Email),
		logger.MaskPhone("phone", customer.Phone),
		zap.String("account_type", customer.AccountType),
	)
	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

// UpdateCustomer handles PUT /api/customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id := c.GetInt64("id_int")

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = middleware.SanitizeString(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = middleware.SanitizeString(*req.Email)
	}
	if req.Phone != nil {
		updates["phone"] = middleware.SanitizeString(*req.Phone)
	}
	if req.AccountType != nil {
		if !validAccountType(*req.AccountType) {
			errors.BadRequest(c, "unrecognized account_type")
			return
		}
		updates["account_type"] = *req.AccountType
	}
	if req.Balance != nil {
		if *req.Balance < 0 {
			errors.BadRequest(c, "balance must not be negative")
			return
		}
		updates["balance"] = *req.Balance
	}
	if req.RiskScore != nil {
		if *req.RiskScore < 1 || *req.RiskScore > 5 {
			errors.BadRequest(c, "risk_score must be between 1 and 5")
			return
		}
		updates["risk_score"] = *req.RiskScore
	}
	if len(updates) == 0 {
		errors.BadRequest(c, "no fields to update")
		return
	}

	err := h.repo.UpdateCustomer(c.Request.Context(), id, updates)
	if err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return
	}
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	customer, err := h.repo.GetCustomer(c.Request.Context(), id)
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// DeleteCustomer handles DELETE /api/customers/:id
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id := c.GetInt64("id_int")

	err := h.repo.DeleteCustomer(c.Request.Context(), id)
	if err == store.ErrNotFound {
		errors.NotFound(c, "customer not found")
		return
	}
	if err != nil {
		errors.InternalError(c, err, h.logger)
		return
	}

	h.logger.Info("customer deleted", zap.Int64("customer_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func validAccountType(accountType string) bool {
	for _, t := range store.AccountTypes {
		if t == accountType {
			return true
		}
	}
	return false
}
