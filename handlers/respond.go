package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/wealth-sync/middleware"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/utils"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, models.Envelope{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string, fields utils.FieldErrors) {
	c.AbortWithStatusJSON(status, models.Envelope{Success: false, Message: message, Errors: fields})
}

func invalid(c *gin.Context, fields utils.FieldErrors) {
	fail(c, http.StatusBadRequest, "Validation failed", fields)
}

// storeError maps a table error onto a response.
func storeError(c *gin.Context, err error, what string) {
	if errors.Is(err, services.ErrNotFound) {
		fail(c, http.StatusNotFound, what+" not found", nil)
		return
	}
	utils.SafeError("[API] %s: %v", what, err)
	fail(c, http.StatusInternalServerError, "Database error", nil)
}

// ownerFromQuery returns the user_id query parameter once it is known to be
// the caller's own id.
func ownerFromQuery(c *gin.Context) (string, bool) {
	owner := strings.TrimSpace(c.Query("user_id"))
	if owner == "" {
		invalid(c, utils.Required("user_id", owner))
		return "", false
	}
	if owner != middleware.GetUserID(c) {
		fail(c, http.StatusForbidden, "Forbidden", nil)
		return "", false
	}
	return owner, true
}
