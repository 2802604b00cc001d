package handlers

import (
	"errors"
	"net/http"

	"osmeet/middleware"
	"osmeet/services/user"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var in user.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid registration payload")
		return
	}
	u, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "emailTaken", "email already registered")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", err.Error())
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "invalid login payload")
		return
	}
	token, u, err := h.Service.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalidCredentials", "invalid email or password")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	u, err := h.Service.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "notFound", "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMToken handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var in struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", "token is required")
		return
	}
	actor, _ := middleware.GetActor(c)
	if err := h.Service.UpdateFCMToken(c.Request.Context(), actor.UserID, in.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "failed to update token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Logout handles DELETE /api/users/session, revoking the current token.
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	if err := h.Service.RevokeToken(c.Request.Context(), token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internalError", "failed to revoke session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
