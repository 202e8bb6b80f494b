package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyxlicense/backend/internal/config"
	"github.com/nyxlicense/backend/internal/models"
	"github.com/nyxlicense/backend/internal/store"
	"github.com/nyxlicense/backend/internal/subscription"
	"github.com/nyxlicense/backend/internal/tokens"
)

type AdminHandler struct {
	cfg    *config.Config
	tokens tokens.Store
	store  store.Store
}

func NewAdminHandler(cfg *config.Config, tokenStore tokens.Store, st store.Store) *AdminHandler {
	return &AdminHandler{cfg: cfg, tokens: tokenStore, store: st}
}

// AdminLoginRequest represents admin login request body
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the configured admin credentials and mints a bearer token
// for the panel. There is a single admin identity; no roles.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	if h.cfg.AdminUser == "" || h.cfg.AdminPass == "" {
		log.Println("admin login rejected: ADMIN_USER/ADMIN_PASS not configured")
		return errorResponse(c, fiber.StatusInternalServerError, CodeUpstreamFailure, "Admin credentials are not configured on the server")
	}

	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid request body")
	}

	if req.Username != h.cfg.AdminUser || req.Password != h.cfg.AdminPass {
		return errorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid admin credentials")
	}

	token, err := h.tokens.Issue()
	if err != nil {
		log.Printf("admin login: token issue failed: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, CodeUpstreamFailure, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// ListAccounts returns all accounts for the panel table, ordered by
// username. Expiry renders as "N/A" when unset.
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.store.ListAccounts()
	if err != nil {
		log.Printf("admin: account list failed: %v", err)
		return upstreamFailure(c)
	}

	list := make([]fiber.Map, 0, len(accounts))
	for i := range accounts {
		list = append(list, fiber.Map{
			"username":   accounts[i].Username,
			"password":   accounts[i].Password,
			"expires_at": accounts[i].ExpiryString(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"accounts": list,
	})
}

// CreateAccountRequest carries an absolute expiry date; extensions go
// through the PUT route instead.
type CreateAccountRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	ExpiresAt string `json:"expires_at"`
}

func (h *AdminHandler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" || req.ExpiresAt == "" {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Username, password, and expiry are required")
	}

	expiry, err := parseExpiryDate(req.ExpiresAt)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid expiry date")
	}

	account := models.Account{
		Username:  req.Username,
		Password:  req.Password,
		ExpiresAt: &expiry,
	}

	if err := h.store.InsertAccount(&account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errorResponse(c, fiber.StatusConflict, CodeConflict, fmt.Sprintf("User '%s' already exists", req.Username))
		}
		log.Printf("admin: account create failed: %v", err)
		return upstreamFailure(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
	})
}

// ExtendAccountRequest renews a subscription relative to its current
// state rather than setting an absolute date.
type ExtendAccountRequest struct {
	Username  string `json:"username"`
	Extension struct {
		Type  string `json:"type"`
		Value int    `json:"value"`
	} `json:"extension"`
}

func (h *AdminHandler) ExtendAccount(c *fiber.Ctx) error {
	var req ExtendAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Invalid request body")
	}

	if req.Username == "" || req.Extension.Type == "" {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Username and extension details are required")
	}

	unit, err := subscription.ParseUnit(req.Extension.Type)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Extension unit must be days, weeks or months")
	}

	account, err := h.store.FindAccountByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, CodeNotFound, "User not found")
		}
		log.Printf("admin: account lookup failed: %v", err)
		return upstreamFailure(c)
	}

	newExpiry, err := subscription.ExtendExpiry(account.ExpiresAt, unit, req.Extension.Value, time.Now().UTC())
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Extension value must be a positive integer")
	}

	// Account expiry is persisted at day granularity.
	newExpiry = truncateToDate(newExpiry)

	if err := h.store.UpdateAccountExpiry(req.Username, newExpiry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, CodeNotFound, "User not found")
		}
		log.Printf("admin: expiry update failed: %v", err)
		return upstreamFailure(c)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"expires_at": newExpiry.Format(models.DateFormat),
	})
}

type deleteAccountRequest struct {
	Username string `json:"username"`
}

func (h *AdminHandler) DeleteAccount(c *fiber.Ctx) error {
	var req deleteAccountRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return errorResponse(c, fiber.StatusBadRequest, CodeValidation, "Username required")
	}

	if err := h.store.DeleteAccount(req.Username); err != nil {
		log.Printf("admin: account delete failed: %v", err)
		return upstreamFailure(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// ListTrials returns all trial grants, newest window first.
func (h *AdminHandler) ListTrials(c *fiber.Ctx) error {
	grants, err := h.store.ListTrials()
	if err != nil {
		log.Printf("admin: trial list failed: %v", err)
		return upstreamFailure(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"trials":  grants,
	})
}

// parseExpiryDate accepts the panel's date-picker format and full
// timestamps, truncating either to the stored day granularity.
func parseExpiryDate(s string) (time.Time, error) {
	if t, err := time.Parse(models.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDate(t), nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
