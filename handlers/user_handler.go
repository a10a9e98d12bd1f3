package handlers

import (
	"net/http"

	"grandstay/middleware"
	"grandstay/models"
	userSvc "grandstay/services/user"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// UserHandler serves profile and account-management endpoints.
type UserHandler struct {
	Users userSvc.UserService
}

func NewUserHandler(users userSvc.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Profile", u)
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in struct {
		Username  *string `json:"username"`
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	updates := bson.M{}
	if in.Username != nil {
		updates["username"] = *in.Username
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Profile updated", u)
}

// SetEmailNotifications handles PUT /users/me/notifications.
func (h *UserHandler) SetEmailNotifications(c *gin.Context) {
	var in struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Users.SetEmailNotifications(c.Request.Context(), middleware.CurrentUserID(c), *in.Enabled); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Notification preference updated", gin.H{"enabled": *in.Enabled})
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Users", users)
}

// SetBlocked handles PUT /admin/users/:id/blocked.
func (h *UserHandler) SetBlocked(c *gin.Context) {
	var in struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	u, err := h.Users.SetBlocked(c.Request.Context(), c.Param("id"), *in.Blocked)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User block state updated", u)
}

// SetRole handles PUT /admin/users/:id/role (superadmin only).
func (h *UserHandler) SetRole(c *gin.Context) {
	var in struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	u, err := h.Users.SetRole(c.Request.Context(), c.Param("id"), in.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User role updated", u)
}
