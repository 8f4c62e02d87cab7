package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type CustomerController struct {
	customerService service.CustomerService
}

func NewCustomerController(customerService service.CustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}

type PatchCustomerRequest struct {
	Name    *string `json:"name" binding:"omitnil,min=1"`
	Surname *string `json:"surname" binding:"omitnil,min=1"`
	Email   *string `json:"email" binding:"omitnil,email"`
}

// ListCustomers returns customers in id order
// GET /customers
func (ctrl *CustomerController) ListCustomers(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}

	customers, err := ctrl.customerService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondServiceError(c, err, "list customers")
		return
	}

	c.JSON(http.StatusOK, newCustomerResponses(customers))
}

// GetCustomer returns a customer by ID
// GET /customers/:id
func (ctrl *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := ctrl.customerService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get customer")
		return
	}

	c.JSON(http.StatusOK, newCustomerResponse(customer))
}

// CreateCustomer registers a customer; the email must be unused
// POST /customers
func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := ctrl.customerService.Create(c.Request.Context(), service.CustomerInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	})
	if err != nil {
		respondServiceError(c, err, "create customer")
		return
	}

	log.Info("Customer created successfully", map[string]interface{}{
		"customer_id": customer.ID,
	})
	c.JSON(http.StatusOK, newCustomerResponse(customer))
}

// UpdateCustomer replaces every field of a customer
// PUT /customers/:id
func (ctrl *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var req CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctrl.applyUpdate(c, id, service.CustomerUpdate{
		Name:    &req.Name,
		Surname: &req.Surname,
		Email:   &req.Email,
	})
}

// PatchCustomer changes only the supplied fields
// PATCH /customers/:id
func (ctrl *CustomerController) PatchCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var req PatchCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctrl.applyUpdate(c, id, service.CustomerUpdate{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	})
}

func (ctrl *CustomerController) applyUpdate(c *gin.Context, id uint, update service.CustomerUpdate) {
	customer, err := ctrl.customerService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondServiceError(c, err, "update customer")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Customer updated successfully", map[string]interface{}{
		"customer_id": customer.ID,
	})
	c.JSON(http.StatusOK, newCustomerResponse(customer))
}

// DeleteCustomer removes a customer without orders and returns it
// DELETE /customers/:id
func (ctrl *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := ctrl.customerService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "delete customer")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Customer deleted successfully", map[string]interface{}{
		"customer_id": id,
	})
	c.JSON(http.StatusOK, newCustomerResponse(customer))
}
