package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyxlicense/backend/internal/models"
	"github.com/nyxlicense/backend/internal/store"
)

type TrialHandler struct {
	store        store.Store
	trialSeconds int
}

func NewTrialHandler(st store.Store, trialSeconds int) *TrialHandler {
	if trialSeconds <= 0 {
		trialSeconds = 300
	}
	return &TrialHandler{store: st, trialSeconds: trialSeconds}
}

type trialStartRequest struct {
	Hwid string `json:"hwid"`
}

// Start grants a one-time trial window for a device. The lookup before
// the insert is a fast path; the unique index on hwid is what actually
// prevents two racing requests from both getting a grant.
func (h *TrialHandler) Start(c *fiber.Ctx) error {
	var req trialStartRequest
	if err := c.BodyParser(&req); err != nil || req.Hwid == "" {
		return errorResponse(c, fiber.StatusBadRequest, CodeTrialUnavailable, "Missing hwid")
	}

	_, err := h.store.FindTrialByHwid(req.Hwid)
	if err == nil {
		return errorResponse(c, fiber.StatusTooManyRequests, CodeTrialUnavailable, "Trial not available for this device")
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("trial: grant lookup failed: %v", err)
		return upstreamFailure(c)
	}

	expiresAt := time.Now().UTC().Add(time.Duration(h.trialSeconds) * time.Second)
	grant := models.TrialGrant{
		Hwid:      req.Hwid,
		ExpiresAt: expiresAt,
	}

	if err := h.store.InsertTrial(&grant); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to a concurrent request for the same hwid.
			return errorResponse(c, fiber.StatusTooManyRequests, CodeTrialUnavailable, "Trial not available for this device")
		}
		log.Printf("trial: grant insert failed: %v", err)
		return upstreamFailure(c)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"trial_seconds": h.trialSeconds,
		"expires_at":    expiresAt.Format(time.RFC3339),
	})
}
