package handlers

import (
	"errors"
	"net/http"

	"grandstay/config"
	"grandstay/middleware"
	userSvc "grandstay/services/user"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, verification and session endpoints.
type AuthHandler struct {
	Users userSvc.UserService
}

func NewAuthHandler(users userSvc.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var in userSvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	u, err := h.Users.Signup(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, userSvc.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated,
		"Account created. Check your email for the verification code.",
		gin.H{"id": u.ID, "email": u.Email})
}

// VerifyEmail handles POST /auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Users.VerifyEmail(c.Request.Context(), in.Email, in.Code); err != nil {
		if errors.Is(err, utils.ErrCodeNotFound) || errors.Is(err, utils.ErrCodeMismatch) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid code", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Email verified", nil)
}

// Signin handles POST /auth/signin. The token is returned in the body and
// also set as an httpOnly cookie for browser clients.
func (h *AuthHandler) Signin(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := h.Users.Signin(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, userSvc.ErrInvalidCredentials):
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		case errors.Is(err, userSvc.ErrAccountBlocked),
			errors.Is(err, userSvc.ErrEmailNotVerified):
			utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
		default:
			respondServiceError(c, err)
		}
		return
	}

	c.SetCookie("auth_token", result.Token, int(72*60*60), "/", "",
		config.IsProduction(), true)
	utils.JSONSuccess(c, http.StatusOK, "Signed in", result)
}

// Signout handles POST /auth/signout.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := h.Users.Signout(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.SetCookie("auth_token", "", -1, "/", "", config.IsProduction(), true)
	utils.JSONSuccess(c, http.StatusOK, "Signed out", nil)
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Users.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	// Same response regardless of whether the email exists.
	utils.JSONSuccess(c, http.StatusOK, "If the email is registered, a reset code has been sent.", nil)
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in struct {
		Email       string `json:"email" binding:"required,email"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Users.ResetPassword(c.Request.Context(), in.Email, in.Code, in.NewPassword); err != nil {
		if errors.Is(err, utils.ErrCodeNotFound) || errors.Is(err, utils.ErrCodeMismatch) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid code", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Password updated", nil)
}
