package handlers

import (
	"net/http"
	"time"

	collectRepo "osmeet/database/repository/collect"
	"osmeet/middleware"
	"osmeet/models"
	"osmeet/services/activity"
	"osmeet/services/booking"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectHandler manages user favorites on meetings and activities.
type CollectHandler struct {
	Collects   collectRepo.CollectRepository
	Meetings   *booking.MeetingQueryService
	Activities activity.ActivityService
	Logger     *zap.Logger
}

func NewCollectHandler(collects collectRepo.CollectRepository, meetings *booking.MeetingQueryService, activities activity.ActivityService, logger *zap.Logger) *CollectHandler {
	return &CollectHandler{Collects: collects, Meetings: meetings, Activities: activities, Logger: logger}
}

// Collect handles POST /api/collections.
func (h *CollectHandler) Collect(c *gin.Context) {
	var in struct {
		TargetType string `json:"targetType"`
		TargetID   string `json:"targetId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid collect payload")
		return
	}
	if !h.targetExists(c, in.TargetType, in.TargetID) {
		utils.JSONError(c, http.StatusNotFound, "notFound", "collect target not found")
		return
	}

	actor, _ := middleware.GetActor(c)
	collect := &models.Collect{
		ID:         uuid.New().String(),
		UserID:     actor.UserID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		CreatedAt:  time.Now(),
	}
	if err := h.Collects.Add(c.Request.Context(), collect); err != nil {
		h.Logger.Warn("failed to add collect", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "failed to collect")
		return
	}
	c.JSON(http.StatusCreated, collect)
}

// Uncollect handles DELETE /api/collections?targetType=...&targetId=...
func (h *CollectHandler) Uncollect(c *gin.Context) {
	targetType := c.Query("targetType")
	targetID := c.Query("targetId")
	if targetType == "" || targetID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "targetType and targetId are required")
		return
	}
	actor, _ := middleware.GetActor(c)
	if err := h.Collects.Remove(c.Request.Context(), actor.UserID, targetType, targetID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "notFound", "collect not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListMine handles GET /api/collections.
func (h *CollectHandler) ListMine(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	collects, err := h.Collects.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "failed to list collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collects})
}

func (h *CollectHandler) targetExists(c *gin.Context, targetType, targetID string) bool {
	switch targetType {
	case models.CollectMeeting:
		_, err := h.Meetings.GetMeeting(c.Request.Context(), targetID)
		return err == nil
	case models.CollectActivity:
		_, err := h.Activities.Get(c.Request.Context(), targetID)
		return err == nil
	default:
		return false
	}
}
