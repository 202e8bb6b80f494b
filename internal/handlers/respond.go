package handlers

import "github.com/gofiber/fiber/v2"

// Machine-readable outcome codes clients branch on.
const (
	CodeValidation         = "VALIDATION"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUpstreamFailure    = "UPSTREAM_FAILURE"
	CodeExpired            = "EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTrialUnavailable   = "TRIAL_UNAVAILABLE"
)

func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// upstreamFailure hides store error detail behind a generic message; the
// specifics only go to the log.
func upstreamFailure(c *fiber.Ctx) error {
	return errorResponse(c, fiber.StatusInternalServerError, CodeUpstreamFailure, "Server error")
}
