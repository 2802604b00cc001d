package handlers

import (
	"net/http"
	"strconv"

	"osmeet/middleware"
	"osmeet/services/booking"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MeetingHandler exposes the booking engine over HTTP.
type MeetingHandler struct {
	Engine booking.SchedulingEngine
	Query  *booking.MeetingQueryService
	Logger *zap.Logger
}

func NewMeetingHandler(engine booking.SchedulingEngine, query *booking.MeetingQueryService, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{Engine: engine, Query: query, Logger: logger}
}

// BookMeeting handles POST /api/meetings.
func (h *MeetingHandler) BookMeeting(c *gin.Context) {
	var req booking.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid booking payload")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	req.SponsorID = actor.UserID

	m, err := h.Engine.Book(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// CancelMeeting handles DELETE /api/meetings/:id.
func (h *MeetingHandler) CancelMeeting(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	if err := h.Engine.Cancel(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetMeeting handles GET /api/meetings/:id.
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	m, err := h.Query.GetMeeting(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// SetReplay handles PUT /api/meetings/:id/replay.
func (h *MeetingHandler) SetReplay(c *gin.Context) {
	var in struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.URL == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "url is required")
		return
	}
	actor, _ := middleware.GetActor(c)
	if err := h.Engine.SetReplayURL(c.Request.Context(), c.Param("id"), in.URL, actor); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListMeetings handles GET /api/meetings?community=...&days=N, returning
// active meetings grouped by date.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			utils.JSONError(c, http.StatusBadRequest, "invalidInput", "days must be between 1 and 60")
			return
		}
		days = n
	}
	grouped, err := h.Query.ListUpcoming(c.Request.Context(), c.Query("community"), days)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": grouped})
}
