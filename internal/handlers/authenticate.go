package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyxlicense/backend/internal/store"
)

type AuthenticateHandler struct {
	store store.Store
}

func NewAuthenticateHandler(st store.Store) *AuthenticateHandler {
	return &AuthenticateHandler{store: st}
}

// AuthenticateRequest is sent by the desktop client as an urlencoded form;
// JSON is accepted too.
type AuthenticateRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Authenticate is the end-user login/expiry gate. Three terminal
// outcomes: success, INVALID_CREDENTIALS (unknown username and wrong
// password share one shape), EXPIRED. No session token is minted for end
// users; the client re-authenticates on every launch.
func (h *AuthenticateHandler) Authenticate(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeInvalidCredentials, "Username and password are required")
	}

	if req.Username == "" || req.Password == "" {
		return errorResponse(c, fiber.StatusBadRequest, CodeInvalidCredentials, "Username and password are required")
	}

	account, err := h.store.FindAccountByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials or expired subscription")
		}
		log.Printf("authenticate: account lookup failed: %v", err)
		return upstreamFailure(c)
	}

	if account.Password != req.Password {
		return errorResponse(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials or expired subscription")
	}

	if account.IsExpired(time.Now().UTC()) {
		return errorResponse(c, fiber.StatusUnauthorized, CodeExpired, "Invalid credentials or expired subscription")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"username":   account.Username,
		"expires_at": account.ExpiryString(),
	})
}
