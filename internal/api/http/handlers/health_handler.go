package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	syncpkg "github.com/spec-kit/repairshop-service/internal/sync"
)

// Pinger probes the local persistence medium.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness probes and reports connectivity.
type HealthHandler struct {
	serviceName string
	version     string
	monitor     *syncpkg.Monitor
	pinger      Pinger
}

// NewHealthHandler returns a new handler instance. pinger checks the
// local persistence medium and may be nil when the medium has no probe.
func NewHealthHandler(serviceName, version string, monitor *syncpkg.Monitor, pinger Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, monitor: monitor, pinger: pinger}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. The backend being away does not fail
// readiness: running offline is this service's whole point. It is
// reported so operators can see which mode the app is in.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{"backend_online": h.monitor.Online()}
	ready := true

	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			depStatus["store"] = err.Error()
			ready = false
		} else {
			depStatus["store"] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "local store unavailable",
			"details": depStatus,
		},
	})
}
