package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LovationAdmin/wealth-sync/middleware"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/services"
	"github.com/LovationAdmin/wealth-sync/utils"
)

type builder[T any] interface {
	Build(id, ownerID string, now time.Time) T
}

type patcher[T any] interface {
	Apply(T) T
}

// ResourceHandler is pass-through CRUD for one owner-scoped resource.
type ResourceHandler[T any, In builder[T], P patcher[T]] struct {
	Name  string
	Label string
	Table services.Table[T]
	WS    *WSHandler
}

func NewResourceHandler[T any, In builder[T], P patcher[T]](name, label string, table services.Table[T], ws *WSHandler) *ResourceHandler[T, In, P] {
	return &ResourceHandler[T, In, P]{Name: name, Label: label, Table: table, WS: ws}
}

func (h *ResourceHandler[T, In, P]) List(c *gin.Context) {
	owner, ok := ownerFromQuery(c)
	if !ok {
		return
	}

	rows, err := h.Table.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		storeError(c, err, h.Label)
		return
	}
	respond(c, http.StatusOK, "OK", services.Data(rows))
}

func (h *ResourceHandler[T, In, P]) Create(c *gin.Context) {
	owner, ok := ownerFromQuery(c)
	if !ok {
		return
	}

	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	in, fe := utils.ValidateInput(in)
	if fe != nil {
		invalid(c, fe)
		return
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	record := in.Build(id, owner, now)
	if err := h.Table.Insert(c.Request.Context(), services.Row[T]{ID: id, OwnerID: owner, Data: record, CreatedAt: now}); err != nil {
		storeError(c, err, h.Label)
		return
	}

	h.broadcast(owner, models.ActionCreated, id)
	respond(c, http.StatusCreated, h.Label+" created", record)
}

func (h *ResourceHandler[T, In, P]) Update(c *gin.Context) {
	row, ok := h.owned(c)
	if !ok {
		return
	}

	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalid(c, utils.FieldErrors{"_": {"must be a valid JSON object"}})
		return
	}
	if fe := utils.Validate(patch); fe != nil {
		invalid(c, fe)
		return
	}

	updated := patch.Apply(row.Data)
	if err := h.Table.Update(c.Request.Context(), row.ID, updated); err != nil {
		storeError(c, err, h.Label)
		return
	}

	h.broadcast(row.OwnerID, models.ActionUpdated, row.ID)
	respond(c, http.StatusOK, h.Label+" updated", updated)
}

func (h *ResourceHandler[T, In, P]) Delete(c *gin.Context) {
	row, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.Table.Delete(c.Request.Context(), row.ID); err != nil {
		storeError(c, err, h.Label)
		return
	}

	h.broadcast(row.OwnerID, models.ActionDeleted, row.ID)
	respond(c, http.StatusOK, h.Label+" deleted", nil)
}

// owned loads the :id row. Rows owned by someone else are reported as
// missing.
func (h *ResourceHandler[T, In, P]) owned(c *gin.Context) (services.Row[T], bool) {
	row, err := h.Table.Get(c.Request.Context(), c.Param("id"))
	if err == nil && row.OwnerID != middleware.GetUserID(c) {
		err = services.ErrNotFound
	}
	if err != nil {
		storeError(c, err, h.Label)
		return row, false
	}
	return row, true
}

func (h *ResourceHandler[T, In, P]) broadcast(owner, action, id string) {
	if h.WS == nil {
		return
	}
	h.WS.Broadcast(owner, models.ChangeEvent{Resource: h.Name, Action: action, ID: id})
}
