package handlers

import (
	"errors"
	"net/http"

	sigRepo "osmeet/database/repository/sig"
	"osmeet/middleware"
	"osmeet/models"
	"osmeet/services/sig"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
)

type SIGHandler struct {
	Service sig.SIGService
}

func NewSIGHandler(service sig.SIGService) *SIGHandler {
	return &SIGHandler{Service: service}
}

func (h *SIGHandler) Create(c *gin.Context) {
	var in models.SIG
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid sig payload")
		return
	}
	actor, _ := middleware.GetActor(c)
	created, err := h.Service.Create(c.Request.Context(), &in, actor)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SIGHandler) Get(c *gin.Context) {
	s, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SIGHandler) List(c *gin.Context) {
	sigs, err := h.Service.ListByCommunity(c.Request.Context(), c.Query("community"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sigs": sigs})
}

func (h *SIGHandler) Update(c *gin.Context) {
	var in models.SIG
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid sig payload")
		return
	}
	in.ID = c.Param("id")
	actor, _ := middleware.GetActor(c)
	if err := h.Service.Update(c.Request.Context(), &in, actor); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SIGHandler) Delete(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SIGHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sig.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, sigRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", "sig not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "sig operation failed")
	}
}
