package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/api/dto"
	"github.com/spec-kit/repairshop-service/internal/offline"
	syncpkg "github.com/spec-kit/repairshop-service/internal/sync"
)

// SyncHandler exposes the offline queue to the ops surface: inspect
// pending actions, trigger a drain, discard a stuck action.
type SyncHandler struct {
	queue   *offline.Queue
	flusher *syncpkg.Flusher
}

// NewSyncHandler constructs handler.
func NewSyncHandler(queue *offline.Queue, flusher *syncpkg.Flusher) *SyncHandler {
	return &SyncHandler{queue: queue, flusher: flusher}
}

// QueueStatus GET /sync/queue.
func (h *SyncHandler) QueueStatus(c *fiber.Ctx) error {
	pending := h.queue.GetAll(c.Context())
	actions := make([]dto.QueuedActionResponse, 0, len(pending))
	for _, action := range pending {
		actions = append(actions, dto.QueuedActionFromDomain(action))
	}
	return c.JSON(fiber.Map{"data": dto.QueueStatusResponse{Depth: len(pending), Actions: actions}})
}

// Flush POST /sync/flush.
func (h *SyncHandler) Flush(c *fiber.Ctx) error {
	stats := h.flusher.Flush(c.Context())
	return c.JSON(fiber.Map{"data": dto.FlushResponse{
		Attempted: stats.Attempted,
		Flushed:   stats.Flushed,
		Retried:   stats.Retried,
	}})
}

// DiscardAction DELETE /sync/queue/:id. Discarding an already-gone
// action succeeds quietly; a racing flush may have beaten us to it.
func (h *SyncHandler) DiscardAction(c *fiber.Ctx) error {
	h.queue.Remove(c.Context(), c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}
