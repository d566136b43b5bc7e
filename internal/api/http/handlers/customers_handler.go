package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/api/dto"
	"github.com/spec-kit/repairshop-service/internal/service"
)

// CustomersHandler manages customer directory endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// ListCustomers GET /customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	customers, fromCache, err := h.service.ListCustomers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerSummary, 0, len(customers))
	for _, customer := range customers {
		items = append(items, dto.CustomerSummary{
			ID:       customer.ID,
			Name:     customer.Name,
			Email:    customer.Email,
			Phone:    customer.Phone,
			BranchID: customer.BranchID,
		})
	}
	return c.JSON(fiber.Map{"data": items, "from_cache": fromCache})
}
