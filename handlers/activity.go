package handlers

import (
	"errors"
	"net/http"

	"osmeet/middleware"
	"osmeet/models"
	"osmeet/services/activity"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	Service activity.ActivityService
}

func NewActivityHandler(service activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// CreateDraft handles POST /api/activities.
func (h *ActivityHandler) CreateDraft(c *gin.Context) {
	var in models.Activity
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" || in.Date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid activity payload")
		return
	}
	actor, _ := middleware.GetActor(c)
	in.SponsorID = actor.UserID
	created, err := h.Service.CreateDraft(c.Request.Context(), &in)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Publish handles PUT /api/activities/:id/publish.
func (h *ActivityHandler) Publish(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	if err := h.Service.Publish(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "published"})
}

// Cancel handles DELETE /api/activities/:id.
func (h *ActivityHandler) Cancel(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Get handles GET /api/activities/:id.
func (h *ActivityHandler) Get(c *gin.Context) {
	a, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// List handles GET /api/activities?community=...
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.Service.ListPublished(c.Request.Context(), c.Query("community"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// ListDrafts handles GET /api/activities/drafts.
func (h *ActivityHandler) ListDrafts(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	drafts, err := h.Service.ListDrafts(c.Request.Context(), c.Query("community"), actor)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": drafts})
}

func (h *ActivityHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, activity.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, activity.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "activity not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "activity operation failed")
	}
}
