package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/utils"
)

type ProfileHandler struct {
	Profiles services.Table[models.UserProfile]
	WS       *WSHandler
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	owner, ok := ownerFromQuery(c)
	if !ok {
		return
	}

	row, err := h.Profiles.Get(c.Request.Context(), owner)
	if err != nil {
		storeError(c, err, "Profile")
		return
	}
	respond(c, http.StatusOK, "OK", row.Data)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	owner, ok := ownerFromQuery(c)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	if fe := utils.Validate(patch); fe != nil {
		invalid(c, fe)
		return
	}

	row, err := h.Profiles.Get(c.Request.Context(), owner)
	if err != nil {
		storeError(c, err, "Profile")
		return
	}
	updated := patch.Apply(row.Data)
	if err := h.Profiles.Update(c.Request.Context(), owner, updated); err != nil {
		storeError(c, err, "Profile")
		return
	}

	if h.WS != nil {
		h.WS.Broadcast(owner, models.ChangeEvent{Resource: "profile", Action: models.ActionUpdated, ID: owner})
	}
	respond(c, http.StatusOK, "Profile updated", updated)
}
