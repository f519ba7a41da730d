package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcustomer "github.com/stackfood/customers/internal/application/customer"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	BaseHandler
	service *appcustomer.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *appcustomer.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.ListActive)
		customers.POST("/auth", h.Authenticate)
		customers.GET("/cpf/:cpf", h.GetByCPF)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Deactivate)
		customers.POST("/:id/activate", h.Activate)
	}
}

type createCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	CPF   string `json:"cpf" binding:"required"`
}

type updateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type authenticateRequest struct {
	CPF string `json:"cpf"`
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), appcustomer.CreateCustomerRequest{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns a customer by its id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp == nil {
		h.NotFound(c, "customer not found")
		return
	}

	h.Success(c, resp)
}

// GetByCPF returns a customer by its CPF
func (h *CustomerHandler) GetByCPF(c *gin.Context) {
	resp, err := h.service.GetByCPF(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp == nil {
		h.NotFound(c, "customer not found")
		return
	}

	h.Success(c, resp)
}

// ListActive returns all active customers
func (h *CustomerHandler) ListActive(c *gin.Context) {
	resp, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a customer's name and email
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, appcustomer.UpdateCustomerRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Authenticate authenticates a customer by CPF, or as a guest when the
// CPF is empty.
func (h *CustomerHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Authenticate(c.Request.Context(), appcustomer.AuthenticateRequest{
		CPF: req.CPF,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate soft-deletes a customer
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	resp, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate reactivates a previously deactivated customer
func (h *CustomerHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid customer id")
		return
	}

	resp, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
